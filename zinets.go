// Package zinets builds character networks from hand-written outlines.
// An outline names a root character followed by indented, dash-prefixed
// child characters, each optionally annotated with a decomposition. The
// outline subpackage turns that text into an ordered tree; the rest of the
// module enriches the tree's single-character tokens with dictionary data
// from a language model and caches the results locally.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, bloom/).
package zinets
