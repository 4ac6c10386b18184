package util

import (
	"slices"
	"strings"
)

// A SortedSet represents a set of strings sorted in lexicographical order.
// The zero value represents an empty set.
type SortedSet struct {
	elems  []string // invariant: sorted
	maxLen int
}

// NewSortedSet returns a SortedSet that contains all of elems
// but no other elements.
func NewSortedSet(elems ...string) SortedSet {
	var set SortedSet
	for _, e := range elems {
		set.Add(e)
	}
	return set
}

// Add adds e to set.
func (set *SortedSet) Add(e string) {
	i, found := slices.BinarySearch(set.elems, e)
	if found {
		return
	}
	set.elems = slices.Insert(set.elems, i, e)
	set.maxLen = max(set.maxLen, len(e))
}

// Size returns the cardinality of set.
func (set SortedSet) Size() int {
	return len(set.elems)
}

// Contains reports whether e is an element of set.
func (set SortedSet) Contains(e string) bool {
	if set.maxLen < len(e) {
		return false
	}
	_, found := slices.BinarySearch(set.elems, e)
	return found
}

// All calls yield on each element of set, in lexicographical order,
// until yield returns false.
func (set SortedSet) All(yield func(string) bool) {
	for _, e := range set.elems {
		if !yield(e) {
			return
		}
	}
}

// Join concatenates the elements of set (in lexicographical order),
// separated by sep.
func (set SortedSet) Join(sep string) string {
	return strings.Join(set.elems, sep)
}

// ToSlice returns a slice of set's elements sorted in lexicographical order.
func (set SortedSet) ToSlice() []string {
	// Defensive copying is required here because clients can mutate the
	// result; see (*cors.Policy).SupportedHeaders.
	return slices.Clone(set.elems)
}
