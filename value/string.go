package value

import (
	"strings"

	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/token"
)

// Str is GLang's string value. Operators never mutate in place; each
// produces a fresh copy, per original_source's Str::perform_operation
// (every arm clones self before editing).
type Str struct {
	Base
	Value string
}

func (s *Str) Kind() Kind     { return StrKind }
func (s *Str) Truthy() bool   { return s.Value != "" }
func (s *Str) String() string { return s.Value }

func (s *Str) Clone() Value {
	cp := *s
	cp.constFlag = false
	return &cp
}

// BinaryOp implements the string operator table from spec.md §4.D.
func (s *Str) BinaryOp(op token.Token, other Value) (Value, *diag.Error) {
	sym := opSymbol(op)

	if right, ok := other.(*Str); ok {
		switch sym {
		case "+":
			return &Str{Value: s.Value + right.Value}, nil
		case "-":
			return &Str{Value: right.Value}, nil
		case "==":
			return Bool(s.Value == right.Value), nil
		case "!=":
			return Bool(s.Value != right.Value), nil
		case "<":
			return Bool(s.Value < right.Value), nil
		case ">":
			return Bool(s.Value > right.Value), nil
		case "<=":
			return Bool(s.Value <= right.Value), nil
		case ">=":
			return Bool(s.Value >= right.Value), nil
		case "and":
			return Bool(s.Truthy() && right.Truthy()), nil
		case "or":
			return Bool(s.Truthy() || right.Truthy()), nil
		default:
			return nil, illegalOperation(s, other, "the string type")
		}
	}

	if right, ok := other.(*Number); ok {
		switch sym {
		case "*":
			if right.Value < 0 {
				return nil, diag.New("cannot multiply string by a negative value", right.Start(), right.End()).
					WithKind(diag.Arithmetic)
			}
			return &Str{Value: strings.Repeat(s.Value, int(right.Value))}, nil
		case "^":
			return s.index(right)
		default:
			return nil, illegalOperation(s, other, "the string type")
		}
	}

	return nil, illegalOperation(s, other, "the string type")
}

func (s *Str) index(idx *Number) (Value, *diag.Error) {
	runes := []rune(s.Value)

	if idx.Value < -1 {
		return nil, diag.New("cannot access a negative index", idx.Start(), idx.End()).
			WithHelp("use an index greater than or equal to 0 or use -1 to reverse the string").
			WithKind(diag.Arithmetic)
	}
	if idx.Value == -1 {
		rev := make([]rune, len(runes))
		for i, r := range runes {
			rev[len(runes)-1-i] = r
		}
		return &Str{Value: string(rev)}, nil
	}
	n := int(idx.Value)
	if n >= len(runes) {
		return nil, diag.New("index is out of bounds", idx.Start(), idx.End()).WithKind(diag.Arithmetic)
	}
	return &Str{Value: string(runes[n])}, nil
}

// UnaryOp: strings only support `not` (truthiness negation); unary
// minus has no string meaning.
func (s *Str) UnaryOp(op token.Token) (Value, *diag.Error) {
	if op.Matches(token.KEYWORD, "not") {
		return Bool(!s.Truthy()), nil
	}
	return nil, diag.New("unsupported unary operation", s.Start(), s.End()).WithKind(diag.Type)
}
