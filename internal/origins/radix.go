// Package origins provides an index of allowed origins
// for suffix-based origin matching.
package origins

import (
	"slices"
)

// A Tree is radix tree whose edges are each labeled by a byte,
// and whose nodes each contain a set of schemes.
// It indexes origins by the "host[:port]" part of their serialization
// (their suffix) and answers whether some indexed suffix is a suffix
// of a given one.
// The zero value of a Tree is an empty tree.
//
// The implementation draws heavy inspiration from
// https://github.com/armon/go-radix.
type Tree struct {
	root node
}

// Insert inserts the origin of scheme scheme and suffix suf in the tree.
func (t *Tree) Insert(scheme, suf string) {
	n := &t.root
	// The key is processed from right to left.
	s := suf
	for {
		labelToChild, ok := lastByte(s)
		if !ok { // s is empty
			n.add(scheme)
			return
		}
		child := n.edges[labelToChild]
		if child == nil { // No matching edge found; create one.
			child = &node{suf: s}
			child.add(scheme)
			n.upsertEdge(labelToChild, child)
			return
		}

		prefixOfS, prefixOfChildSuf, common := splitAtCommonSuffix(s, child.suf)
		labelToGrandChild1, ok := lastByte(prefixOfChildSuf)
		if !ok { // child.suf is a suffix of s
			s = prefixOfS
			n = child
			continue
		}
		// child.suf is NOT a suffix of s; we need to split child.
		//
		// Before splitting: child
		//
		// After splitting:  child' -- grandChild1
		//
		// ... or perhaps    child' -- grandChild1
		//                      \
		//                       grandChild2

		// Create a first grandchild on the basis of the current child.
		grandChild1 := child
		grandChild1.suf = prefixOfChildSuf

		// Replace child in n.
		child = &node{suf: common}
		n.upsertEdge(labelToChild, child)

		// Add a first grandchild in child.
		child.upsertEdge(labelToGrandChild1, grandChild1)
		labelToGrandChild2, ok := lastByte(prefixOfS)
		if !ok {
			child.add(scheme)
			return
		}

		// Add a second grandchild in child.
		grandChild2 := &node{suf: prefixOfS}
		grandChild2.add(scheme)
		child.upsertEdge(labelToGrandChild2, grandChild2)
	}
}

// Match reports whether t contains some origin of scheme scheme
// whose suffix is a suffix of suf (suf itself included).
// Suffixes are compared byte by byte; label boundaries play no part.
func (t *Tree) Match(scheme, suf string) bool {
	n := &t.root
	for {
		if n.contains(scheme) {
			return true
		}
		label, ok := lastByte(suf)
		if !ok {
			return false
		}
		n = n.edges[label]
		if n == nil {
			return false
		}
		prefixOfSuf, _, common := splitAtCommonSuffix(suf, n.suf)
		if len(common) != len(n.suf) { // n.suf is NOT a suffix of suf
			return false
		}
		suf = prefixOfSuf
	}
}

func lastByte(str string) (byte, bool) {
	if len(str) == 0 {
		return 0, false
	}
	return str[len(str)-1], true
}

// splitAtCommonSuffix finds the longest suffix common to a and b and returns
// a and b both trimmed of that suffix along with the suffix itself.
func splitAtCommonSuffix(a, b string) (string, string, string) {
	s, l := a, b // s for short, l for long
	if len(l) < len(s) {
		s, l = l, s
	}
	l = l[len(l)-len(s):]
	_ = l[:len(s)] // hoist bounds checks on l out of the loop
	i := len(s) - 1
	for ; 0 <= i && s[i] == l[i]; i-- {
		// deliberately empty body
	}
	i++
	return a[:len(a)-len(s)+i], b[:len(b)-len(s)+i], s[i:]
}

// Elems returns a slice containing textual representations
// ("scheme://suffix") of t's elements.
func (t *Tree) Elems() []string {
	var res []string
	t.root.elems(&res, "")
	slices.Sort(res)
	return res
}

// A node represents a node of a Tree.
type node struct {
	// suf of this node (not restricted to ASCII or even valid UTF-8)
	suf string
	// edges to children of this node
	edges edges
	// schemes of the origins whose suffix ends at this node;
	// few distinct schemes are ever allowed, hence a slice
	schemes []string
}

func (n *node) add(scheme string) {
	if !n.contains(scheme) {
		n.schemes = append(n.schemes, scheme)
	}
}

func (n *node) contains(scheme string) bool {
	return slices.Contains(n.schemes, scheme)
}

func (n *node) upsertEdge(label byte, child *node) {
	if n.edges == nil {
		n.edges = edges{label: child}
		return
	}
	n.edges[label] = child
}

type edges = map[byte]*node

// elems adds textual representations of n's elements to dst,
// using suf as a base suffix.
func (n *node) elems(dst *[]string, suf string) {
	suf = n.suf + suf
	for _, scheme := range n.schemes {
		*dst = append(*dst, scheme+"://"+suf)
	}
	for _, child := range n.edges {
		child.elems(dst, suf)
	}
}
