package outline

import "strings"

// IndentStyle selects the indentation Format writes.
type IndentStyle struct {
	unit string
}

// TabStyle indents one tab per level.
var TabStyle = IndentStyle{unit: "\t"}

// IndentSpaces indents n spaces per level. n is clamped to at least 1.
func IndentSpaces(n int) IndentStyle {
	return IndentStyle{unit: strings.Repeat(" ", max(n, 1))}
}

// Format writes t back out as an outline that parses to an equal tree.
// Decompositions are written in full-width parentheses.
func Format(t *Tree, style IndentStyle) string {
	if style.unit == "" {
		style = TabStyle
	}

	var sb strings.Builder
	root := t.Root()
	switch {
	case root.Name != "":
		sb.WriteString(root.Name)
	case len(root.Children) > 0:
		// A bare comment keeps an unnamed root on the first line.
		sb.WriteString(commentMarker)
	}

	t.Walk(func(id NodeID, depth int) bool {
		if id == RootID {
			return true
		}
		n := t.Node(id)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(style.unit, depth))
		sb.WriteString(entryMarker)
		sb.WriteByte(' ')
		sb.WriteString(n.Name)
		if n.Decomposition != "" {
			sb.WriteString(fullWidthOpen)
			sb.WriteString(n.Decomposition)
			// An unclosed decomposition ran to the end of its line.
			if !unclosed(n.Decomposition) {
				sb.WriteRune(fullWidthClose)
			}
		}
		return true
	})
	return sb.String()
}

// unclosed reports whether d leaves an inner parenthesis open, so that a
// closing parenthesis written after it would not end the decomposition.
func unclosed(d string) bool {
	depth := 0
	for _, r := range d {
		switch r {
		case '（', '(':
			depth++
		case fullWidthClose, halfWidthClose:
			depth--
		}
	}
	return depth > 0
}
