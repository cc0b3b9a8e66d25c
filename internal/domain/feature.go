package domain

// Feature is one row of the scraped PostgreSQL feature matrix. Version
// labels are opaque strings ("9.6", "10", ...) ordered only by their
// position in the document's version list.
type Feature struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	IntroducedIn string   `json:"introduced_in" validate:"required"`
	DeprecatedIn *string  `json:"deprecated_in"`
	PresentIn    []string `json:"present_in"`
	DocsURL      *string  `json:"docs_url"`
}

// FeatureDocument is the root entity produced by the scraper. It is
// loaded once at startup and never mutated afterwards.
type FeatureDocument struct {
	LastUpdated string    `json:"last_updated" validate:"required,datetime=2006-01-02"`
	Versions    []string  `json:"versions" validate:"required,min=1"`
	Features    []Feature `json:"features" validate:"required,min=1,dive"`
}

// Deprecated reports whether the feature carries a deprecation version.
func (f *Feature) Deprecated() bool {
	return f.DeprecatedIn != nil && *f.DeprecatedIn != ""
}
