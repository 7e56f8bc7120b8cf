package outline

import (
	"encoding/binary"
	"encoding/json"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// NodeID addresses a node within its Tree.
type NodeID int

// RootID is the ID of every tree's root node.
const RootID NodeID = 0

// Node is a single entry of an outline.
type Node struct {
	Name string

	// Decomposition describes the parts the unit is built from.
	// Empty when the entry had no parenthesized annotation.
	Decomposition string

	// Children in document order. Callers must not modify the slice.
	Children []NodeID
}

// Tree is an ordered tree stored as an arena of nodes. Nodes are appended
// once and never re-parented, so a child's ID is always greater than its
// parent's.
type Tree struct {
	nodes []Node
}

// NewTree returns a tree holding only a root node.
func NewTree(root string) *Tree {
	return &Tree{nodes: []Node{{Name: root}}}
}

// Append adds a node as the last child of parent and returns its ID.
func (t *Tree) Append(parent NodeID, name, decomposition string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Name: name, Decomposition: decomposition})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.nodes[RootID]
}

// Node returns the node with the given ID.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Walk visits nodes depth-first in document order, root first at depth 0.
// Returning false from fn skips the children of that node.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	type item struct {
		id    NodeID
		depth int
	}
	stack := []item{{RootID, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.id, it.depth) {
			continue
		}
		children := t.nodes[it.id].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{children[i], it.depth + 1})
		}
	}
}

// Tokens returns the leaf token set of the tree.
func (t *Tree) Tokens() TokenSet {
	return LeafTokens(t)
}

// Fingerprint hashes the tree's shape, names and decompositions.
// Structurally equal trees have equal fingerprints.
func (t *Tree) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [binary.MaxVarintLen64]byte
	t.Walk(func(id NodeID, depth int) bool {
		n := t.nodes[id]
		d.Write(buf[:binary.PutUvarint(buf[:], uint64(depth))])
		d.Write(buf[:binary.PutUvarint(buf[:], uint64(len(n.Children)))])
		d.WriteString(n.Name)
		d.Write([]byte{0})
		d.WriteString(n.Decomposition)
		d.Write([]byte{0})
		return true
	})
	return d.Sum64()
}

// Equal reports whether a and b have the same shape, names and decompositions.
func Equal(a, b *Tree) bool {
	if a.Len() != b.Len() {
		return false
	}
	type pair struct{ x, y NodeID }
	stack := []pair{{RootID, RootID}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := a.nodes[p.x], b.nodes[p.y]
		if x.Name != y.Name || x.Decomposition != y.Decomposition || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			stack = append(stack, pair{x.Children[i], y.Children[i]})
		}
	}
	return true
}

// NestedNode is a pointer-linked view of a tree for encoding.
type NestedNode struct {
	Name          string        `json:"name" yaml:"name"`
	Decomposition string        `json:"decomposition,omitempty" yaml:"decomposition,omitempty"`
	Children      []*NestedNode `json:"children" yaml:"children,omitempty"`
}

// Nested returns the tree as linked NestedNodes rooted at the root node.
func (t *Tree) Nested() *NestedNode {
	views := make([]*NestedNode, len(t.nodes))
	for i, n := range t.nodes {
		views[i] = &NestedNode{
			Name:          n.Name,
			Decomposition: n.Decomposition,
			Children:      make([]*NestedNode, 0, len(n.Children)),
		}
	}
	for i, n := range t.nodes {
		for _, c := range n.Children {
			views[i].Children = append(views[i].Children, views[c])
		}
	}
	return views[RootID]
}

// MarshalJSON encodes the tree as nested {name, decomposition, children} objects.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Nested())
}

type frame struct {
	level int
	id    NodeID
}

// BuildTree links entry lines into a tree below root using levels from scheme.
// Each entry attaches to the nearest preceding entry with a lower level,
// falling back to the root. Entries without a name are skipped.
func BuildTree(root string, lines []ClassifiedLine, scheme IndentationScheme) *Tree {
	t := NewTree(root)
	stack := []frame{{0, RootID}}

	for _, line := range lines {
		if line.Kind != LineEntry {
			continue
		}
		name, decomposition := ParseEntry(line.Text)
		if name == "" {
			continue
		}
		level := scheme.Level(line.Indent)

		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			stack = append(stack, frame{0, RootID})
		}

		id := t.Append(stack[len(stack)-1].id, name, decomposition)
		stack = append(stack, frame{level, id})
	}
	return t
}

const (
	fullWidthOpen  = "（"
	halfWidthOpen  = "("
	fullWidthClose = '）'
	halfWidthClose = ')'
)

// ParseEntry splits an entry line into its name and decomposition.
// The split happens at the first full-width parenthesis, or at the first
// half-width one when the line has none.
func ParseEntry(text string) (name, decomposition string) {
	text = strings.TrimSpace(text)

	head, rest, found := strings.Cut(text, fullWidthOpen)
	if !found {
		head, rest, found = strings.Cut(text, halfWidthOpen)
	}

	name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(head), entryMarker))
	if found {
		decomposition = enclosed(rest)
	}
	return name, decomposition
}

// enclosed returns s up to the parenthesis closing an already opened one.
// Unclosed text runs to the end of s.
func enclosed(s string) string {
	depth := 1
	for i, r := range s {
		switch r {
		case '（', '(':
			depth++
		case fullWidthClose, halfWidthClose:
			depth--
			if depth == 0 {
				return s[:i]
			}
		}
	}
	return s
}
