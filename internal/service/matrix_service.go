package service

import (
	"errors"
	"fmt"

	"pgfeaturediff-server/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidDocument = errors.New("invalid feature document")
)

// MatrixService answers all comparison queries over the feature
// document loaded at startup. The document and its version index are
// built once and never mutated, so the service is safe for concurrent
// readers.
type MatrixService struct {
	doc   *domain.FeatureDocument
	index *domain.VersionIndex

	defaultFrom string
	defaultTo   string
}

// NewMatrixService validates the document and builds the version index.
// Beyond struct-level checks, every version label referenced by a
// feature must exist in the version list, and a deprecation must not
// precede its introduction.
func NewMatrixService(doc *domain.FeatureDocument) (*MatrixService, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	index := domain.NewVersionIndex(doc.Versions)
	if index.Len() != len(doc.Versions) {
		return nil, fmt.Errorf("%w: duplicate version labels", ErrInvalidDocument)
	}

	for i := range doc.Features {
		f := &doc.Features[i]

		introIdx, ok := index.IndexOf(f.IntroducedIn)
		if !ok {
			return nil, fmt.Errorf("%w: feature %q introduced in unknown version %q",
				ErrInvalidDocument, f.ID, f.IntroducedIn)
		}

		if f.Deprecated() {
			depIdx, ok := index.IndexOf(*f.DeprecatedIn)
			if !ok {
				return nil, fmt.Errorf("%w: feature %q deprecated in unknown version %q",
					ErrInvalidDocument, f.ID, *f.DeprecatedIn)
			}
			if depIdx < introIdx {
				return nil, fmt.Errorf("%w: feature %q deprecated in %q before introduction in %q",
					ErrInvalidDocument, f.ID, *f.DeprecatedIn, f.IntroducedIn)
			}
		}
	}

	return &MatrixService{doc: doc, index: index}, nil
}

// Document returns the loaded document.
func (s *MatrixService) Document() *domain.FeatureDocument {
	return s.doc
}

// Versions returns the canonical ordered version list.
func (s *MatrixService) Versions() []string {
	return s.doc.Versions
}

// LastUpdated returns the scrape date of the document.
func (s *MatrixService) LastUpdated() string {
	return s.doc.LastUpdated
}

// SetDefaultRange overrides the default comparison range. Labels not
// present in the document are ignored, so a stale configuration
// degrades to the built-in defaults.
func (s *MatrixService) SetDefaultRange(from, to string) {
	if s.index.Contains(from) {
		s.defaultFrom = from
	}
	if s.index.Contains(to) {
		s.defaultTo = to
	}
}

// DefaultRange is the range used when a client supplies no versions:
// second-newest to newest unless overridden. A single-version document
// yields a degenerate range and therefore an empty diff.
func (s *MatrixService) DefaultRange() (from, to string) {
	versions := s.doc.Versions
	to = versions[len(versions)-1]
	from = to
	if len(versions) > 1 {
		from = versions[len(versions)-2]
	}
	if s.defaultFrom != "" {
		from = s.defaultFrom
	}
	if s.defaultTo != "" {
		to = s.defaultTo
	}
	return from, to
}

// ResolveRange replaces unknown or empty labels with the defaults.
// Stale URL parameters degrade silently rather than erroring.
func (s *MatrixService) ResolveRange(from, to string) (string, string) {
	defaultFrom, defaultTo := s.DefaultRange()
	if !s.index.Contains(from) {
		from = defaultFrom
	}
	if !s.index.Contains(to) {
		to = defaultTo
	}
	return from, to
}

// Diff computes the features introduced or deprecated in the window
// (fromIdx, toIdx]: strictly after from, at or before to. An unknown
// label or a non-increasing range yields an empty result, which is a
// normal outcome rather than an error. A feature introduced and
// deprecated inside the same window appears in both lists.
func (s *MatrixService) Diff(from, to string) domain.DiffResult {
	result := domain.DiffResult{
		Introduced: []domain.Feature{},
		Deprecated: []domain.Feature{},
	}

	lowerIdx, ok := s.index.IndexOf(from)
	if !ok {
		return result
	}
	upperIdx, ok := s.index.IndexOf(to)
	if !ok {
		return result
	}
	if lowerIdx >= upperIdx {
		return result
	}

	for _, f := range s.doc.Features {
		if idx, ok := s.index.IndexOf(f.IntroducedIn); ok && idx > lowerIdx && idx <= upperIdx {
			result.Introduced = append(result.Introduced, f)
		}
		if f.Deprecated() {
			if idx, ok := s.index.IndexOf(*f.DeprecatedIn); ok && idx > lowerIdx && idx <= upperIdx {
				result.Deprecated = append(result.Deprecated, f)
			}
		}
	}

	return result
}

// Summary returns the per-category counts for a range without the
// grouped feature list.
func (s *MatrixService) Summary(from, to string) []domain.CategorySummary {
	from, to = s.ResolveRange(from, to)
	diff := s.Diff(from, to)
	return summarize(&diff)
}

// Compare resolves the requested range, diffs it, and applies the
// display filters. The category summary is always computed from the
// unfiltered diff, so it reflects the range alone.
func (s *MatrixService) Compare(req *domain.CompareRequest) *domain.CompareResponse {
	from, to := s.ResolveRange(req.From, req.To)
	diff := s.Diff(from, to)

	resp := &domain.CompareResponse{
		From:            from,
		To:              to,
		LastUpdated:     s.doc.LastUpdated,
		IntroducedCount: len(diff.Introduced),
		DeprecatedCount: len(diff.Deprecated),
		Groups:          groupByCategory(filterEntries(&diff, req.Categories, req.Search)),
		Summary:         summarize(&diff),
	}

	if lowerIdx, ok := s.index.IndexOf(from); ok {
		if upperIdx, ok := s.index.IndexOf(to); ok && lowerIdx >= upperIdx {
			resp.Message = "select a 'from' version older than the 'to' version to see changes"
		}
	}

	return resp
}
