package domain

// VersionIndex maps a version label to its ordinal position in the
// canonical version list. All range comparisons go through it; labels
// themselves are never parsed numerically, since the matrix mixes
// formats like "9.6" and "10".
type VersionIndex struct {
	positions map[string]int
}

func NewVersionIndex(versions []string) *VersionIndex {
	positions := make(map[string]int, len(versions))
	for i, v := range versions {
		positions[v] = i
	}
	return &VersionIndex{positions: positions}
}

// IndexOf returns the position of label in the version list. Callers
// must treat a missing label as an invalid range, not a fault.
func (idx *VersionIndex) IndexOf(label string) (int, bool) {
	pos, ok := idx.positions[label]
	return pos, ok
}

// Contains reports whether label is a known version.
func (idx *VersionIndex) Contains(label string) bool {
	_, ok := idx.positions[label]
	return ok
}

// Len returns the number of indexed versions.
func (idx *VersionIndex) Len() int {
	return len(idx.positions)
}
