package value

import (
	"testing"

	"github.com/george-lang/glang/token"
)

func tok(k token.Kind) token.Token { return token.Token{Kind: k} }

func TestNumberArithmetic(t *testing.T) {
	left := &Number{Value: 7}
	right := &Number{Value: 2}

	cases := []struct {
		op   token.Token
		want float64
	}{
		{tok(token.PLUS), 9},
		{tok(token.MINUS), 5},
		{tok(token.MUL), 14},
		{tok(token.DIV), 3.5},
		{tok(token.MOD), 1},
		{tok(token.POW), 49},
	}

	for _, c := range cases {
		got, err := left.BinaryOp(c.op, right)
		if err != nil {
			t.Fatalf("op %v: unexpected error %v", c.op, err)
		}
		if got.(*Number).Value != c.want {
			t.Fatalf("op %v: got %v, want %v", c.op, got.(*Number).Value, c.want)
		}
	}
}

func TestNumberDivisionByZero(t *testing.T) {
	left := &Number{Value: 1}
	right := &Number{Value: 0}

	_, err := left.BinaryOp(tok(token.DIV), right)
	if err == nil || err.Message != "division by zero" {
		t.Fatalf("expected division by zero error, got %v", err)
	}
}

func TestNumberComparisons(t *testing.T) {
	left, right := &Number{Value: 3}, &Number{Value: 5}

	got, err := left.BinaryOp(tok(token.LT), right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(*Number).Value != 1 {
		t.Fatalf("expected true(1.0), got %v", got.(*Number).Value)
	}
}

func TestNumberUnaryMinusAndNot(t *testing.T) {
	n := &Number{Value: 5}

	neg, err := n.UnaryOp(tok(token.MINUS))
	if err != nil || neg.(*Number).Value != -5 {
		t.Fatalf("expected -5, got %v, err %v", neg, err)
	}

	notTok := token.Token{Kind: token.KEYWORD, Lexeme: "not"}
	notVal, err := n.UnaryOp(notTok)
	if err != nil || notVal.(*Number).Value != 0 {
		t.Fatalf("expected not(5) == 0, got %v, err %v", notVal, err)
	}

	zero := &Number{Value: 0}
	notZero, err := zero.UnaryOp(notTok)
	if err != nil || notZero.(*Number).Value != 1 {
		t.Fatalf("expected not(0) == 1, got %v, err %v", notZero, err)
	}
}

func TestNumberCloneIsIndependentAndNonConst(t *testing.T) {
	n := &Number{Value: 5}
	n.SetConst(true)

	clone := n.Clone()
	if clone.IsConst() {
		t.Fatal("expected clone to be non-const")
	}
	clone.(*Number).Value = 99
	if n.Value != 5 {
		t.Fatalf("expected original untouched, got %v", n.Value)
	}
}

func TestNumberIllegalOperationAgainstString(t *testing.T) {
	n := &Number{Value: 1}
	_, err := n.BinaryOp(tok(token.PLUS), &Str{Value: "x"})
	if err == nil {
		t.Fatal("expected illegal operation error")
	}
}
