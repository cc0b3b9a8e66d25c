package service

import (
	"sort"
	"strings"

	"pgfeaturediff-server/internal/domain"
)

// filterEntries applies the category and text filters to the union of
// introduced and deprecated features, tagging each entry with its role.
// An empty category selection means "all categories", not "none"; an
// empty search is a no-op.
func filterEntries(diff *domain.DiffResult, categories []string, search string) []domain.DiffEntry {
	selected := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c != "" {
			selected[c] = true
		}
	}
	needle := strings.ToLower(strings.TrimSpace(search))

	matches := func(f *domain.Feature) bool {
		if len(selected) > 0 && !selected[f.Category] {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(f.Name), needle) ||
			strings.Contains(strings.ToLower(f.Category), needle)
	}

	entries := []domain.DiffEntry{}
	for _, f := range diff.Introduced {
		if matches(&f) {
			entries = append(entries, domain.DiffEntry{Feature: f, Change: domain.ChangeIntroduced})
		}
	}
	for _, f := range diff.Deprecated {
		if matches(&f) {
			entries = append(entries, domain.DiffEntry{Feature: f, Change: domain.ChangeDeprecated})
		}
	}

	return entries
}

// groupByCategory partitions entries by category for the feature list
// display. Groups are sorted alphabetically; within a group entries are
// sorted by feature name, with the introduced entry first when the same
// feature appears in both roles.
func groupByCategory(entries []domain.DiffEntry) []domain.CategoryGroup {
	byCategory := make(map[string][]domain.DiffEntry)
	for _, e := range entries {
		byCategory[e.Feature.Category] = append(byCategory[e.Feature.Category], e)
	}

	groups := make([]domain.CategoryGroup, 0, len(byCategory))
	for category, members := range byCategory {
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].Feature.Name != members[j].Feature.Name {
				return members[i].Feature.Name < members[j].Feature.Name
			}
			return members[i].Change == domain.ChangeIntroduced && members[j].Change == domain.ChangeDeprecated
		})
		groups = append(groups, domain.CategoryGroup{Category: category, Entries: members})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})

	return groups
}

// summarize counts introduced and deprecated entries per category over
// the unfiltered diff. Sorted by total descending for the summary
// display, alphabetically on ties.
func summarize(diff *domain.DiffResult) []domain.CategorySummary {
	counts := make(map[string]*domain.CategorySummary)

	tally := func(category string, introduced bool) {
		s, ok := counts[category]
		if !ok {
			s = &domain.CategorySummary{Category: category}
			counts[category] = s
		}
		if introduced {
			s.Introduced++
		} else {
			s.Deprecated++
		}
		s.Total++
	}

	for _, f := range diff.Introduced {
		tally(f.Category, true)
	}
	for _, f := range diff.Deprecated {
		tally(f.Category, false)
	}

	summaries := make([]domain.CategorySummary, 0, len(counts))
	for _, s := range counts {
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Total != summaries[j].Total {
			return summaries[i].Total > summaries[j].Total
		}
		return summaries[i].Category < summaries[j].Category
	})

	return summaries
}
