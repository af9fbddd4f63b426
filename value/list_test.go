package value

import (
	"testing"

	"github.com/george-lang/glang/token"
)

func TestListAppendMutatesInPlace(t *testing.T) {
	a := &List{Elements: []Value{&Number{Value: 1}}}
	b := &List{Elements: []Value{&Number{Value: 2}}}

	result, err := a.BinaryOp(tok(token.PLUS), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Truthy() {
		t.Fatalf("expected + to return null, got %v", result)
	}
	if len(a.Elements) != 2 {
		t.Fatalf("expected in-place append, got %d elements", len(a.Elements))
	}
}

func TestListPushSingleElement(t *testing.T) {
	a := &List{Elements: []Value{&Number{Value: 1}}}
	_, err := a.BinaryOp(tok(token.MUL), &Str{Value: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Elements) != 2 {
		t.Fatalf("expected push to add exactly one element, got %d", len(a.Elements))
	}
}

func TestListConstCannotMutate(t *testing.T) {
	a := &List{Elements: []Value{&Number{Value: 1}}}
	a.SetConst(true)

	_, err := a.BinaryOp(tok(token.PLUS), &List{Elements: []Value{&Number{Value: 2}}})
	if err == nil || err.Message != "cannot change a constant value" {
		t.Fatalf("expected const mutation error, got %v", err)
	}
}

func TestListIndexAndReverse(t *testing.T) {
	a := &List{Elements: []Value{&Number{Value: 1}, &Number{Value: 2}, &Number{Value: 3}}}

	elem, err := a.BinaryOp(tok(token.POW), &Number{Value: 1})
	if err != nil || elem.(*Number).Value != 2 {
		t.Fatalf("expected index 1 == 2, got %v, err %v", elem, err)
	}

	_, err = a.BinaryOp(tok(token.POW), &Number{Value: -1})
	if err != nil {
		t.Fatalf("unexpected error reversing: %v", err)
	}
	if a.Elements[0].(*Number).Value != 3 {
		t.Fatalf("expected reversed list to start with 3, got %v", a.Elements[0])
	}
}

func TestListRemoveAt(t *testing.T) {
	a := &List{Elements: []Value{&Number{Value: 1}, &Number{Value: 2}, &Number{Value: 3}}}
	_, err := a.BinaryOp(tok(token.MINUS), &Number{Value: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Elements) != 2 || a.Elements[1].(*Number).Value != 3 {
		t.Fatalf("expected [1, 3] after removing index 1, got %v", a.Elements)
	}
}

func TestListElementwiseEquality(t *testing.T) {
	a := &List{Elements: []Value{&Number{Value: 1}, &Number{Value: 2}}}
	b := &List{Elements: []Value{&Number{Value: 1}, &Number{Value: 2}}}
	c := &List{Elements: []Value{&Number{Value: 1}, &Number{Value: 3}}}

	eqAB, err := a.BinaryOp(tok(token.EE), b)
	if err != nil || !eqAB.Truthy() {
		t.Fatalf("expected a == b, got %v, err %v", eqAB, err)
	}

	eqAC, err := a.BinaryOp(tok(token.EE), c)
	if err != nil || eqAC.Truthy() {
		t.Fatalf("expected a != c by value, got %v, err %v", eqAC, err)
	}
}

func TestListLengthComparison(t *testing.T) {
	a := &List{Elements: []Value{&Number{Value: 1}}}
	b := &List{Elements: []Value{&Number{Value: 1}, &Number{Value: 2}}}

	got, err := a.BinaryOp(tok(token.LT), b)
	if err != nil || !got.Truthy() {
		t.Fatalf("expected shorter list < longer list, got %v, err %v", got, err)
	}
}

func TestListCloneIsDeepAndIndependent(t *testing.T) {
	a := &List{Elements: []Value{&Number{Value: 1}}}
	clone := a.Clone().(*List)

	clone.Elements[0].(*Number).Value = 42
	if a.Elements[0].(*Number).Value != 1 {
		t.Fatalf("expected original list's element untouched, got %v", a.Elements[0])
	}
}
