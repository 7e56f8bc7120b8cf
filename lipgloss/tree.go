// Package lipgloss draws outline trees for the terminal.
package lipgloss

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/zinets/zinets/outline"
)

var (
	rootStyle          = lipgloss.NewStyle().Bold(true)
	enumeratorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1)
	decompositionStyle = lipgloss.NewStyle().Faint(true)
)

// emptyRoot labels a root line that had no name.
const emptyRoot = "(unnamed)"

// Renderer draws an outline.Tree with box-drawing branches.
type Renderer struct {
	// Rounded draws the last branch of each level with a rounded corner.
	Rounded bool
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the drawing of t. An empty tree renders as "".
func (r *Renderer) Render(t *outline.Tree) string {
	root := t.Root()
	if root.Name == "" && len(root.Children) == 0 {
		return ""
	}

	// Child IDs are always greater than their parent's, so every branch
	// exists before its own children are attached.
	branches := make(map[outline.NodeID]*tree.Tree)
	branches[outline.RootID] = r.newBranch(rootLabel(root))
	for id := range outline.NodeID(t.Len()) {
		branch, ok := branches[id]
		if !ok {
			continue
		}
		for _, c := range t.Node(id).Children {
			child := t.Node(c)
			if len(child.Children) == 0 {
				branch.Child(label(child))
				continue
			}
			sub := r.newBranch(label(child))
			branches[c] = sub
			branch.Child(sub)
		}
	}

	branches[outline.RootID].RootStyle(rootStyle)
	return branches[outline.RootID].String()
}

func (r *Renderer) newBranch(root string) *tree.Tree {
	enumerator := tree.DefaultEnumerator
	if r.Rounded {
		enumerator = tree.RoundedEnumerator
	}
	return tree.Root(root).
		Enumerator(enumerator).
		EnumeratorStyle(enumeratorStyle)
}

func rootLabel(n outline.Node) string {
	if n.Name == "" {
		return emptyRoot
	}
	return label(n)
}

func label(n outline.Node) string {
	if n.Decomposition == "" {
		return n.Name
	}
	return n.Name + " " + decompositionStyle.Render("("+n.Decomposition+")")
}
