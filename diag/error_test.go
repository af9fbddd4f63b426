package diag

import (
	"strings"
	"testing"

	"github.com/george-lang/glang/position"
)

func TestRenderFormat(t *testing.T) {
	src := &position.Source{Path: "a.glang", Text: "const y = 5;\ny = 6;\n"}
	start := position.Position{Src: src, Index: 13, Line: 1, Column: 0}
	end := position.Position{Src: src, Index: 14, Line: 1, Column: 1}

	err := New("cannot reassign the value of a constant", start, end).WithHelp("y was declared const")

	out := err.Render()
	if !strings.Contains(out, "error: cannot reassign the value of a constant") {
		t.Fatalf("missing message: %s", out)
	}
	if !strings.Contains(out, "--> a.glang:2:1") {
		t.Fatalf("missing position header: %s", out)
	}
	if !strings.Contains(out, "^ help: y was declared const") {
		t.Fatalf("missing caret/help: %s", out)
	}
}

func TestRenderMinimumCaretWidth(t *testing.T) {
	src := &position.Source{Path: "a.glang", Text: "x\n"}
	pos := position.Position{Src: src, Index: 0, Line: 0, Column: 0}

	err := New("oops", pos, pos)
	out := err.Render()
	if !strings.Contains(out, "| ^") {
		t.Fatalf("expected a minimum-width caret: %s", out)
	}
}

func TestAtCallSiteRewritesPosition(t *testing.T) {
	src := &position.Source{Path: "a.glang", Text: "x\ny\n"}
	orig := position.Position{Src: src, Index: 2, Line: 1, Column: 0}
	callSite := position.Position{Src: src, Index: 0, Line: 0, Column: 0}

	err := New("boom", orig, orig)
	err.AtCallSite(callSite, callSite)

	if err.Start.Line != 0 {
		t.Fatalf("expected position rewritten to call site, got line %d", err.Start.Line)
	}
}
