package value

import (
	"strings"

	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/token"
	"github.com/mitchellh/copystructure"
)

// List is GLang's single sequence type. Its `+`, `*`, `-`, and `^ -1`
// operators mutate the receiver's backing slice in place, matching
// original_source's List::push/append/remove/reverse (each consumes
// and returns `self`, leaving the caller holding the same storage).
type List struct {
	Base
	Elements []Value
}

func (l *List) Kind() Kind    { return ListKind }
func (l *List) Truthy() bool  { return len(l.Elements) > 0 }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Clone deep-copies the element slice via copystructure so that
// mutating a clone (or the clone's elements) never reaches back into
// the original — the same "break aliasing" guarantee spec.md §3
// requires of const reads and the `copy` built-in.
func (l *List) Clone() Value {
	copied, err := copystructure.Copy(l.Elements)
	elements := l.Elements
	if err == nil {
		if cp, ok := copied.([]Value); ok {
			elements = cp
		}
	}
	return &List{Elements: elements}
}

func (l *List) checkMutable() *diag.Error {
	if l.IsConst() {
		return constMutationError(l)
	}
	return nil
}

// BinaryOp implements the list operator table from spec.md §4.D.
func (l *List) BinaryOp(op token.Token, other Value) (Value, *diag.Error) {
	sym := opSymbol(op)

	if sym == "*" {
		if err := l.checkMutable(); err != nil {
			return nil, err
		}
		l.Elements = append(l.Elements, other)
		return Null(), nil
	}

	if right, ok := other.(*List); ok {
		switch sym {
		case "+":
			if err := l.checkMutable(); err != nil {
				return nil, err
			}
			l.Elements = append(l.Elements, right.Elements...)
			return Null(), nil
		case "==":
			eq, err := l.elementwiseEqual(right)
			if err != nil {
				return nil, err
			}
			return Bool(eq), nil
		case "!=":
			eq, err := l.elementwiseEqual(right)
			if err != nil {
				return nil, err
			}
			return Bool(!eq), nil
		case "<":
			return Bool(len(l.Elements) < len(right.Elements)), nil
		case ">":
			return Bool(len(l.Elements) > len(right.Elements)), nil
		case "<=":
			return Bool(len(l.Elements) <= len(right.Elements)), nil
		case ">=":
			return Bool(len(l.Elements) >= len(right.Elements)), nil
		case "and":
			return Bool(l.Truthy() && right.Truthy()), nil
		case "or":
			return Bool(l.Truthy() || right.Truthy()), nil
		default:
			return nil, illegalOperation(l, other, "type")
		}
	}

	if right, ok := other.(*Number); ok {
		switch sym {
		case "-":
			return l.removeAt(right)
		case "^":
			return l.index(right)
		default:
			return nil, illegalOperation(l, other, "type")
		}
	}

	return nil, illegalOperation(l, other, "type")
}

func (l *List) elementwiseEqual(right *List) (bool, *diag.Error) {
	if len(l.Elements) != len(right.Elements) {
		return false, nil
	}
	for i := range l.Elements {
		result, err := l.Elements[i].BinaryOp(token.Token{Kind: token.EE}, right.Elements[i])
		if err != nil {
			return false, err
		}
		if !result.Truthy() {
			return false, nil
		}
	}
	return true, nil
}

func (l *List) removeAt(idx *Number) (Value, *diag.Error) {
	if err := l.checkMutable(); err != nil {
		return nil, err
	}
	if idx.Value < 0 {
		return nil, diag.New("cannot access a negative index", idx.Start(), idx.End()).
			WithHelp("use an index greater than or equal to 0").WithKind(diag.Arithmetic)
	}
	n := int(idx.Value)
	if n >= len(l.Elements) {
		return nil, diag.New("index is out of bounds", idx.Start(), idx.End()).WithKind(diag.Arithmetic)
	}
	l.Elements = append(l.Elements[:n], l.Elements[n+1:]...)
	return l, nil
}

func (l *List) index(idx *Number) (Value, *diag.Error) {
	if idx.Value < -1 {
		return nil, diag.New("cannot access a negative index", idx.Start(), idx.End()).
			WithHelp("use an index greater than or equal to 0 or use -1 to reverse the list").
			WithKind(diag.Arithmetic)
	}
	if idx.Value == -1 {
		if err := l.checkMutable(); err != nil {
			return nil, err
		}
		for i, j := 0, len(l.Elements)-1; i < j; i, j = i+1, j-1 {
			l.Elements[i], l.Elements[j] = l.Elements[j], l.Elements[i]
		}
		return l, nil
	}
	n := int(idx.Value)
	if n >= len(l.Elements) {
		return nil, diag.New("index is out of bounds", idx.Start(), idx.End()).WithKind(diag.Arithmetic)
	}
	return l.Elements[n], nil
}

// UnaryOp: lists only support `not` (truthiness negation).
func (l *List) UnaryOp(op token.Token) (Value, *diag.Error) {
	if op.Matches(token.KEYWORD, "not") {
		return Bool(!l.Truthy()), nil
	}
	return nil, diag.New("unsupported unary operation", l.Start(), l.End()).WithKind(diag.Type)
}
