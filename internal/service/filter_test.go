package service

import (
	"reflect"
	"testing"

	"pgfeaturediff-server/internal/domain"
)

func testDiff() *domain.DiffResult {
	return &domain.DiffResult{
		Introduced: []domain.Feature{
			{ID: "merge", Name: "MERGE statement", Category: "SQL", IntroducedIn: "15"},
			{ID: "multirange", Name: "Multirange types", Category: "Data Types", IntroducedIn: "14"},
			{ID: "json_table", Name: "JSON_TABLE", Category: "SQL", IntroducedIn: "17"},
		},
		Deprecated: []domain.Feature{
			{ID: "exclusive_backup", Name: "Exclusive backup mode", Category: "Backup", IntroducedIn: "9.6", DeprecatedIn: strPtr("15")},
		},
	}
}

func TestFilterEntries(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		search     string
		wantIDs    []string
	}{
		{
			name:    "no filters keeps everything",
			wantIDs: []string{"merge", "multirange", "json_table", "exclusive_backup"},
		},
		{
			name:       "category filter",
			categories: []string{"SQL"},
			wantIDs:    []string{"merge", "json_table"},
		},
		{
			name:       "multiple categories",
			categories: []string{"SQL", "Backup"},
			wantIDs:    []string{"merge", "json_table", "exclusive_backup"},
		},
		{
			name:    "search is case-insensitive against name",
			search:  "MERGE",
			wantIDs: []string{"merge"},
		},
		{
			name:    "search matches category too",
			search:  "data ty",
			wantIDs: []string{"multirange"},
		},
		{
			name:       "search and category combine",
			categories: []string{"SQL"},
			search:     "json",
			wantIDs:    []string{"json_table"},
		},
		{
			name:    "whitespace-only search is a no-op",
			search:  "   ",
			wantIDs: []string{"merge", "multirange", "json_table", "exclusive_backup"},
		},
		{
			name:    "no match yields empty",
			search:  "replication",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := filterEntries(testDiff(), tt.categories, tt.search)

			gotIDs := make([]string, len(entries))
			for i, e := range entries {
				gotIDs[i] = e.Feature.ID
			}

			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("filterEntries() = %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}
}

func TestFilterEntries_ProvenanceTags(t *testing.T) {
	depIn := "11"
	diff := &domain.DiffResult{
		Introduced: []domain.Feature{
			{ID: "short_lived", Name: "Short lived", Category: "Misc", IntroducedIn: "10", DeprecatedIn: &depIn},
		},
		Deprecated: []domain.Feature{
			{ID: "short_lived", Name: "Short lived", Category: "Misc", IntroducedIn: "10", DeprecatedIn: &depIn},
		},
	}

	entries := filterEntries(diff, nil, "")

	if len(entries) != 2 {
		t.Fatalf("expected the feature once per role, got %d entries", len(entries))
	}
	if entries[0].Change != domain.ChangeIntroduced || entries[1].Change != domain.ChangeDeprecated {
		t.Errorf("expected introduced then deprecated tags, got %s, %s",
			entries[0].Change, entries[1].Change)
	}
}

func TestGroupByCategory(t *testing.T) {
	entries := filterEntries(testDiff(), nil, "")
	groups := groupByCategory(entries)

	gotCategories := make([]string, len(groups))
	for i, g := range groups {
		gotCategories[i] = g.Category
	}

	// Alphabetical for the grouped list display.
	want := []string{"Backup", "Data Types", "SQL"}
	if !reflect.DeepEqual(gotCategories, want) {
		t.Fatalf("group order = %v, want %v", gotCategories, want)
	}

	sql := groups[2]
	if sql.Entries[0].Feature.ID != "json_table" || sql.Entries[1].Feature.ID != "merge" {
		t.Errorf("expected entries sorted by name within group, got %s, %s",
			sql.Entries[0].Feature.ID, sql.Entries[1].Feature.ID)
	}
}

func TestSummarize(t *testing.T) {
	diff := &domain.DiffResult{
		Introduced: []domain.Feature{
			{ID: "a", Name: "A", Category: "SQL", IntroducedIn: "15"},
			{ID: "b", Name: "B", Category: "SQL", IntroducedIn: "15"},
			{ID: "c", Name: "C", Category: "Backup", IntroducedIn: "15"},
		},
		Deprecated: []domain.Feature{
			{ID: "d", Name: "D", Category: "Admin", IntroducedIn: "9.6", DeprecatedIn: strPtr("15")},
		},
	}

	got := summarize(diff)

	// Total descending, alphabetical on ties.
	want := []domain.CategorySummary{
		{Category: "SQL", Introduced: 2, Deprecated: 0, Total: 2},
		{Category: "Admin", Introduced: 0, Deprecated: 1, Total: 1},
		{Category: "Backup", Introduced: 1, Deprecated: 0, Total: 1},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarize_EmptyDiff(t *testing.T) {
	got := summarize(&domain.DiffResult{})
	if len(got) != 0 {
		t.Errorf("expected no summaries for empty diff, got %+v", got)
	}
}
