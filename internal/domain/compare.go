package domain

// ChangeKind tags a diff entry with the role a feature plays in the
// selected range. A feature introduced and later deprecated inside the
// same window appears once per role.
type ChangeKind string

const (
	ChangeIntroduced ChangeKind = "introduced"
	ChangeDeprecated ChangeKind = "deprecated"
)

// CompareRequest selects a version range plus the display filters
// applied on top of it. From and To that are unknown or empty fall back
// to the default range instead of failing.
type CompareRequest struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Search     string   `json:"search"`
	Categories []string `json:"categories" validate:"max=64,dive,required"`
}

// DiffResult is the raw range diff before any filtering. Both slices
// preserve document order.
type DiffResult struct {
	Introduced []Feature `json:"introduced"`
	Deprecated []Feature `json:"deprecated"`
}

// Empty reports whether the diff contains no changes.
func (d *DiffResult) Empty() bool {
	return len(d.Introduced) == 0 && len(d.Deprecated) == 0
}

// DiffEntry is one displayed change: a feature together with the role
// it plays in the range.
type DiffEntry struct {
	Feature Feature    `json:"feature"`
	Change  ChangeKind `json:"change"`
}

// CategoryGroup is the filtered view of one category, sorted for display.
type CategoryGroup struct {
	Category string      `json:"category"`
	Entries  []DiffEntry `json:"entries"`
}

// CategorySummary counts changes per category over the unfiltered diff.
// The counts never depend on search text or category selection.
type CategorySummary struct {
	Category   string `json:"category"`
	Introduced int    `json:"introduced"`
	Deprecated int    `json:"deprecated"`
	Total      int    `json:"total"`
}

// CompareResponse is the full comparison view for a resolved range.
type CompareResponse struct {
	From            string            `json:"from"`
	To              string            `json:"to"`
	LastUpdated     string            `json:"last_updated"`
	IntroducedCount int               `json:"introduced_count"`
	DeprecatedCount int               `json:"deprecated_count"`
	Groups          []CategoryGroup   `json:"groups"`
	Summary         []CategorySummary `json:"summary"`
	Message         string            `json:"message,omitempty"`
}

// VersionsResponse describes the selectable versions and the range used
// when a client supplies none.
type VersionsResponse struct {
	Versions    []string `json:"versions"`
	DefaultFrom string   `json:"default_from"`
	DefaultTo   string   `json:"default_to"`
	LastUpdated string   `json:"last_updated"`
}
