package outline

import "strings"

// LineKind classifies a line that follows the root line.
type LineKind int

const (
	// LineBlank is empty once its comment is removed.
	LineBlank LineKind = iota
	// LineNote is free text without a leading dash. Notes are ignored.
	LineNote
	// LineEntry starts with a dash and becomes a node.
	LineEntry
)

// IndentKind identifies the character a line's indentation starts with.
type IndentKind int

const (
	IndentSpace IndentKind = iota
	IndentTab
)

func (k IndentKind) String() string {
	if k == IndentTab {
		return "tab"
	}
	return "space"
}

// IndentDescriptor records the raw leading whitespace of an entry line.
type IndentDescriptor struct {
	Kind IndentKind

	// Width is the length of the leading run of Kind characters.
	Width int

	// Trailing counts the spaces directly after a leading tab run.
	// Always zero for IndentSpace.
	Trailing int
}

// ClassifiedLine is a comment-stripped line following the root line.
type ClassifiedLine struct {
	Number int // 1-based position in the input
	Text   string
	Kind   LineKind
	Indent IndentDescriptor // set for LineEntry only
}

const (
	commentMarker = "#"
	entryMarker   = "-"
	byteOrderMark = "\ufeff"
)

// ClassifyLines returns the root name and the classified lines after it.
// The root line is the first non-blank line; anything after its first '#'
// is dropped.
func ClassifyLines(text string) (string, []ClassifiedLine) {
	lines := splitLines(text)

	start := firstNonBlank(lines)
	if start < 0 {
		return "", nil
	}

	root := strings.TrimSpace(stripComment(lines[start]))
	classified := make([]ClassifiedLine, 0, len(lines)-start-1)
	for i := start + 1; i < len(lines); i++ {
		classified = append(classified, classifyLine(i+1, lines[i]))
	}
	return root, classified
}

// EntryIndents returns the indentation of every entry line, in order.
func EntryIndents(lines []ClassifiedLine) []IndentDescriptor {
	var indents []IndentDescriptor
	for _, line := range lines {
		if line.Kind == LineEntry {
			indents = append(indents, line.Indent)
		}
	}
	return indents
}

func splitLines(text string) []string {
	lines := strings.Split(strings.TrimPrefix(text, byteOrderMark), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func firstNonBlank(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}

// stripComment truncates s at its first comment marker. This happens before
// indentation is measured so a trailing comment can never affect it.
func stripComment(s string) string {
	if i := strings.Index(s, commentMarker); i >= 0 {
		return s[:i]
	}
	return s
}

func classifyLine(number int, raw string) ClassifiedLine {
	text := stripComment(raw)
	line := ClassifiedLine{Number: number, Text: text}

	switch {
	case strings.TrimSpace(text) == "":
		line.Kind = LineBlank
	case !strings.HasPrefix(strings.TrimLeft(text, " \t"), entryMarker):
		line.Kind = LineNote
	default:
		line.Kind = LineEntry
		line.Indent = measureIndent(text)
	}
	return line
}

func measureIndent(s string) IndentDescriptor {
	if !strings.HasPrefix(s, "\t") {
		return IndentDescriptor{Kind: IndentSpace, Width: leadingRun(s, " ")}
	}
	tabs := leadingRun(s, "\t")
	return IndentDescriptor{
		Kind:     IndentTab,
		Width:    tabs,
		Trailing: leadingRun(s[tabs:], " "),
	}
}

func leadingRun(s, cutset string) int {
	return len(s) - len(strings.TrimLeft(s, cutset))
}
