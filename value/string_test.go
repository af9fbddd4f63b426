package value

import (
	"testing"

	"github.com/george-lang/glang/token"
)

func TestStringConcatAndReplace(t *testing.T) {
	a := &Str{Value: "foo"}
	b := &Str{Value: "bar"}

	concat, err := a.BinaryOp(tok(token.PLUS), b)
	if err != nil || concat.(*Str).Value != "foobar" {
		t.Fatalf("expected foobar, got %v, err %v", concat, err)
	}

	replaced, err := a.BinaryOp(tok(token.MINUS), b)
	if err != nil || replaced.(*Str).Value != "bar" {
		t.Fatalf("expected replace to yield bar, got %v, err %v", replaced, err)
	}
	if a.Value != "foo" {
		t.Fatalf("expected original string untouched, got %v", a.Value)
	}
}

func TestStringRepeat(t *testing.T) {
	a := &Str{Value: "ab"}
	got, err := a.BinaryOp(tok(token.MUL), &Number{Value: 3})
	if err != nil || got.(*Str).Value != "ababab" {
		t.Fatalf("expected ababab, got %v, err %v", got, err)
	}
}

func TestStringRepeatNegativeFails(t *testing.T) {
	a := &Str{Value: "ab"}
	_, err := a.BinaryOp(tok(token.MUL), &Number{Value: -1})
	if err == nil || err.Message != "cannot multiply string by a negative value" {
		t.Fatalf("expected negative-multiply error, got %v", err)
	}
}

func TestStringIndexing(t *testing.T) {
	a := &Str{Value: "hello"}

	first, err := a.BinaryOp(tok(token.POW), &Number{Value: 0})
	if err != nil || first.(*Str).Value != "h" {
		t.Fatalf("expected 'h', got %v, err %v", first, err)
	}

	reversed, err := a.BinaryOp(tok(token.POW), &Number{Value: -1})
	if err != nil || reversed.(*Str).Value != "olleh" {
		t.Fatalf("expected reversed string, got %v, err %v", reversed, err)
	}
}

func TestStringIndexOutOfBounds(t *testing.T) {
	a := &Str{Value: "hi"}
	_, err := a.BinaryOp(tok(token.POW), &Number{Value: 5})
	if err == nil || err.Message != "index is out of bounds" {
		t.Fatalf("expected out of bounds error, got %v", err)
	}
}

func TestStringNegativeIndexBelowReverseFails(t *testing.T) {
	a := &Str{Value: "hi"}
	_, err := a.BinaryOp(tok(token.POW), &Number{Value: -2})
	if err == nil || err.Message != "cannot access a negative index" {
		t.Fatalf("expected negative index error, got %v", err)
	}
}

func TestStringLexicographicComparison(t *testing.T) {
	a, b := &Str{Value: "a"}, &Str{Value: "b"}
	got, err := a.BinaryOp(tok(token.LT), b)
	if err != nil || got.(*Number).Value != 1 {
		t.Fatalf("expected 'a' < 'b' to be true, got %v, err %v", got, err)
	}
}
