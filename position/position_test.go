package position

import "testing"

func TestAdvanceIncrementsColumn(t *testing.T) {
	src := &Source{Path: "a.glang", Text: "ab"}
	p := New(src)
	p = p.Advance(' ') // priming advance, mirrors the lexer's constructor
	p = p.Advance('a')

	if p.Index != 1 || p.Line != 0 || p.Column != 2 {
		t.Fatalf("got index=%d line=%d column=%d", p.Index, p.Line, p.Column)
	}
}

func TestAdvanceNewlineResetsColumn(t *testing.T) {
	src := &Source{Path: "a.glang", Text: "a\nb"}
	p := New(src)
	p = p.Advance('a')
	p = p.Advance('\n')

	if p.Line != 1 || p.Column != 0 {
		t.Fatalf("got line=%d column=%d, want line=1 column=0", p.Line, p.Column)
	}
}

func TestPositionsAreImmutable(t *testing.T) {
	src := &Source{Path: "a.glang", Text: "ab"}
	p0 := New(src)
	p1 := p0.Advance('a')

	if p0.Index == p1.Index {
		t.Fatal("Advance must return a new position, not mutate the receiver")
	}
}
