package outline

import (
	"slices"

	"github.com/rivo/uniseg"
)

// TokenSet is an unordered set of leaf tokens.
type TokenSet map[string]struct{}

// Add inserts token into the set.
func (s TokenSet) Add(token string) {
	s[token] = struct{}{}
}

// Contains reports whether token is in the set.
func (s TokenSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Len returns the number of tokens.
func (s TokenSet) Len() int {
	return len(s)
}

// Sorted returns the tokens in ascending order.
func (s TokenSet) Sorted() []string {
	tokens := make([]string, 0, len(s))
	for t := range s {
		tokens = append(tokens, t)
	}
	slices.Sort(tokens)
	return tokens
}

// IsUnit reports whether s is exactly one user-perceived character.
func IsUnit(s string) bool {
	return s != "" && uniseg.GraphemeClusterCount(s) == 1
}

// LeafTokens collects the names of all single-unit nodes, at any depth.
func LeafTokens(t *Tree) TokenSet {
	tokens := make(TokenSet)
	t.Walk(func(id NodeID, _ int) bool {
		if name := t.Node(id).Name; IsUnit(name) {
			tokens.Add(name)
		}
		return true
	})
	return tokens
}
