package unoscan

import "sort"

// ResultSet is a set of selector strings.
type ResultSet map[string]struct{}

// NewResultSet returns a set holding the given selectors.
func NewResultSet(selectors ...string) ResultSet {
	s := make(ResultSet, len(selectors))
	for _, sel := range selectors {
		s.Add(sel)
	}
	return s
}

// Add inserts sel. Adding an existing selector is a no-op.
func (s ResultSet) Add(sel string) {
	s[sel] = struct{}{}
}

// Has reports whether sel is in the set.
func (s ResultSet) Has(sel string) bool {
	_, ok := s[sel]
	return ok
}

// Len returns the number of selectors.
func (s ResultSet) Len() int {
	return len(s)
}

// Union adds every selector of other to s.
func (s ResultSet) Union(other ResultSet) {
	for sel := range other {
		s[sel] = struct{}{}
	}
}

// Equal reports whether both sets hold the same selectors.
func (s ResultSet) Equal(other ResultSet) bool {
	if len(s) != len(other) {
		return false
	}
	for sel := range s {
		if !other.Has(sel) {
			return false
		}
	}
	return true
}

// Sorted returns the selectors in lexical order.
func (s ResultSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for sel := range s {
		out = append(out, sel)
	}
	sort.Strings(out)
	return out
}
