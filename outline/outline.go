// Package outline parses hand-written character outlines into trees.
//
// An outline starts with a root line. Every following line that begins
// with a dash (after any leading whitespace) is an entry; its nesting is
// recovered from indentation that may mix tabs and spaces of varying
// widths. Text after '#' is a comment and lines without a dash are notes.
//
//	日            # root
//		- 白（丿 + 日）
//			- 伯（亻 + 白）
//		- 晶(日 + 日 + 日)
//
// Parsing never fails: irregular indentation attaches an entry to the
// nearest ancestor whose level is lower than its own.
package outline

// Parse builds the tree described by an outline.
// Empty or whitespace-only input yields a root with an empty name and no children.
func Parse(text string) *Tree {
	root, lines := ClassifyLines(text)
	scheme := ProfileIndentation(EntryIndents(lines))
	return BuildTree(root, lines, scheme)
}
