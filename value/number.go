package value

import (
	"fmt"
	"math"

	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/token"
)

// Number is GLang's only numeric type; it also stands in for booleans
// (nonzero is true) and null (0.0), per spec.md §3/§4.D.
type Number struct {
	Base
	Value float64
}

func (n *Number) Kind() Kind    { return NumberKind }
func (n *Number) Truthy() bool  { return n.Value != 0 }
func (n *Number) String() string {
	if n.Value == math.Trunc(n.Value) && !math.IsInf(n.Value, 0) {
		return fmt.Sprintf("%d", int64(n.Value))
	}
	return fmt.Sprintf("%g", n.Value)
}

func (n *Number) Clone() Value {
	cp := *n
	cp.constFlag = false
	return &cp
}

// BinaryOp implements the number operator table from spec.md §4.D:
// `+ - * /` standard f64 (division by zero fails), `^` is pow, `%` is
// remainder taking the sign of the left operand, comparisons and
// and/or return 1.0/0.0.
func (n *Number) BinaryOp(op token.Token, other Value) (Value, *diag.Error) {
	right, ok := other.(*Number)
	if !ok {
		return nil, illegalOperation(n, other, "type")
	}

	l, r := n.Value, right.Value

	switch opSymbol(op) {
	case "+":
		return &Number{Value: l + r}, nil
	case "-":
		return &Number{Value: l - r}, nil
	case "*":
		return &Number{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, diag.New("division by zero", right.Start(), right.End()).WithKind(diag.Arithmetic)
		}
		return &Number{Value: l / r}, nil
	case "%":
		if r == 0 {
			return nil, diag.New("division by zero", right.Start(), right.End()).WithKind(diag.Arithmetic)
		}
		return &Number{Value: math.Mod(l, r)}, nil
	case "^":
		return &Number{Value: math.Pow(l, r)}, nil
	case "==":
		return Bool(l == r), nil
	case "!=":
		return Bool(l != r), nil
	case "<":
		return Bool(l < r), nil
	case ">":
		return Bool(l > r), nil
	case "<=":
		return Bool(l <= r), nil
	case ">=":
		return Bool(l >= r), nil
	case "and":
		return Bool(n.Truthy() && right.Truthy()), nil
	case "or":
		return Bool(n.Truthy() || right.Truthy()), nil
	default:
		return nil, illegalOperation(n, other, "type")
	}
}

// UnaryOp implements unary `-` (multiply by −1) and `not` (logical
// negation via truthiness) by delegating to BinaryOp, mirroring
// original_source's interpreter which rewrites both unary forms as
// binary operations against a literal.
func (n *Number) UnaryOp(op token.Token) (Value, *diag.Error) {
	switch {
	case op.Is(token.MINUS):
		return n.BinaryOp(token.Token{Kind: token.MUL}, &Number{Value: -1})
	case op.Matches(token.KEYWORD, "not"):
		return Bool(!n.Truthy()), nil
	default:
		return nil, diag.New("unsupported unary operation", n.Start(), n.End()).WithKind(diag.Type)
	}
}
