// Package diag implements GLang's single diagnostic Error type and its
// rendering, grounded on the Rust source's
// glang-attributes/src/standard_error.rs: a message, a start/end
// position span, an optional help note, and a propagate flag used by
// uhoh-raised errors to print at their originating call site.
package diag

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/george-lang/glang/position"
)

// Kind tags an Error with the taxonomy from spec.md §7. It never
// changes the rendered message.
type Kind string

const (
	Lexical    Kind = "lexical"
	Syntactic  Kind = "syntactic"
	Resolution Kind = "resolution"
	Type       Kind = "type"
	Arithmetic Kind = "arithmetic"
	Arity      Kind = "arity"
	IO         Kind = "io"
	UserRaised Kind = "user"
)

// Error is GLang's only diagnostic value. Errors are first-class:
// evaluator visitors return them alongside a value and bubble them
// unchanged until a TryExcept catches them or they reach the top.
type Error struct {
	Message   string
	Start     position.Position
	End       position.Position
	Help      string
	Kind      Kind
	Propagate bool
}

// New builds an Error with no help note and Kind left as the zero value
// (callers that care about Kind set it explicitly via WithKind).
func New(msg string, start, end position.Position) *Error {
	return &Error{Message: msg, Start: start, End: end}
}

// WithHelp attaches a help note and returns the receiver for chaining.
func (e *Error) WithHelp(help string) *Error {
	e.Help = help
	return e
}

// WithKind tags the error with a taxonomy Kind and returns the receiver.
func (e *Error) WithKind(k Kind) *Error {
	e.Kind = k
	return e
}

// AtCallSite rewrites the error's position to point at a call site,
// preserving the caret under the expression the user actually wrote
// when an error raised deep inside a function propagates back out.
// This is the position-rewriting behavior spec.md §9 calls out as
// intentional and required to preserve.
func (e *Error) AtCallSite(start, end position.Position) *Error {
	e.Start = start
	e.End = end
	return e
}

// Render formats the error per spec.md §6's diagnostic format:
//
//	error: <message>
//	    --> <file>:<line>:<col>
//	     |
//	 <ln> | <source line>
//	     | <spaces>^^^ help: <hint>
func (e *Error) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "error: %s\n", e.Message)
	fmt.Fprintf(&b, "    --> %s:%d:%d\n", e.Start.Path(), e.Start.Line+1, e.Start.Column+1)
	b.WriteString("     |\n")
	b.WriteString(e.renderSpan())

	return b.String()
}

func (e *Error) renderSpan() string {
	var b strings.Builder
	lines := strings.Split(e.Start.Text(), "\n")

	for ln := e.Start.Line; ln <= e.End.Line; ln++ {
		if ln < 0 || ln >= len(lines) {
			continue
		}
		line := lines[ln]
		fmt.Fprintf(&b, " %3d | %s\n", ln+1, line)

		colStart := clamp(e.Start.Column, 0, len(line))
		colEnd := clamp(e.End.Column, 0, len(line))
		arrowLen := colEnd - colStart
		if arrowLen < 1 {
			arrowLen = 1
		}

		arrow := strings.Repeat(" ", colStart) + strings.Repeat("^", arrowLen)
		if e.Help != "" {
			arrow += " help: " + wordwrap.WrapString(e.Help, 76)
		}
		fmt.Fprintf(&b, "     | %s", arrow)
		if ln != e.End.Line {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (e *Error) Error() string { return e.Render() }
