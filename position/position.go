// Package position tracks locations within GLang source text for
// diagnostics: a file path, a rune index, and a zero-based line/column
// pair, together with a shared handle to the full source text so an
// error can re-render the offending line without re-threading the text
// through every token and AST node.
package position

// Source is the text a Position indexes into, shared by pointer across
// every Position sliced from it.
type Source struct {
	Path string
	Text string
}

// Position is a 4-tuple (file path via Source, rune index, line,
// column) plus a shared handle to the source text. Positions are
// immutable once attached to a token, node, or value; Advance returns a
// new Position rather than mutating the receiver.
type Position struct {
	Src    *Source
	Index  int
	Line   int
	Column int
}

// New returns the starting position of src: index -1 so the first call
// to Advance lands on index 0.
func New(src *Source) Position {
	return Position{Src: src, Index: -1, Line: 0, Column: 0}
}

// Advance consumes cur (the character at the current index) and
// returns the position of the next character. Line increments and
// column resets to 0 on '\n'; otherwise column increments.
func (p Position) Advance(cur rune) Position {
	p.Index++
	p.Column++

	if cur == '\n' {
		p.Line++
		p.Column = 0
	}

	return p
}

// Path returns the file path of the underlying source, or "" if none.
func (p Position) Path() string {
	if p.Src == nil {
		return ""
	}
	return p.Src.Path
}

// Text returns the full source text of the underlying source.
func (p Position) Text() string {
	if p.Src == nil {
		return ""
	}
	return p.Src.Text
}
