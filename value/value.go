// Package value defines GLang's runtime value system and the lexical
// Environment it is read from and written to, per spec.md §3/§4.D.
// Function lives in this package too (function.go) rather than a
// separate package, since a Function's captured environment and an
// Environment's stored values are mutually referential — the same
// co-location the interpreter examples in the retrieval pack use for
// Go-hosted interpreters.
package value

import (
	"fmt"

	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/position"
	"github.com/george-lang/glang/token"
)

// Kind names the closed set of runtime value variants.
type Kind int

const (
	NumberKind Kind = iota
	StrKind
	ListKind
	FunctionKind
	BuiltInKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case StrKind:
		return "string"
	case ListKind:
		return "list"
	case FunctionKind:
		return "function"
	case BuiltInKind:
		return "built-in-function"
	default:
		return "unknown"
	}
}

// Value is implemented by every runtime value variant.
type Value interface {
	Kind() Kind
	IsConst() bool
	SetConst(bool)
	Start() position.Position
	End() position.Position
	SetPositions(start, end position.Position)
	Truthy() bool
	String() string
	Clone() Value
	BinaryOp(op token.Token, other Value) (Value, *diag.Error)
	UnaryOp(op token.Token) (Value, *diag.Error)
}

// Base holds the fields every concrete value carries: the const flag
// and source positions attached at the point of last access.
type Base struct {
	constFlag bool
	start     position.Position
	end       position.Position
}

func (b *Base) IsConst() bool  { return b.constFlag }
func (b *Base) SetConst(c bool) { b.constFlag = c }

func (b *Base) Start() position.Position { return b.start }
func (b *Base) End() position.Position   { return b.end }

func (b *Base) SetPositions(start, end position.Position) {
	b.start = start
	b.end = end
}

// Null returns the canonical null value: a non-const Number zero, per
// spec.md §3's "Number(f64) ... also serves as ... null (constant 0.0)".
func Null() Value { return &Number{Value: 0} }

// Bool converts a Go bool into GLang's 1.0/0.0 number encoding.
func Bool(b bool) Value {
	if b {
		return &Number{Value: 1}
	}
	return &Number{Value: 0}
}

// opSymbol maps an operator token to the canonical symbol used to key
// operator dispatch tables, mirroring original_source's string-tagged
// `perform_operation(operator: &str, ...)` calls.
func opSymbol(op token.Token) string {
	switch op.Kind {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.MUL:
		return "*"
	case token.DIV:
		return "/"
	case token.POW:
		return "^"
	case token.MOD:
		return "%"
	case token.EE:
		return "=="
	case token.NE:
		return "!="
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LTE:
		return "<="
	case token.GTE:
		return ">="
	case token.KEYWORD:
		return op.Lexeme // "and" / "or" / "not"
	default:
		return op.Lexeme
	}
}

func illegalOperation(self Value, other Value, kindName string) *diag.Error {
	end := self.End()
	if other != nil {
		end = other.End()
	}
	return diag.New("operation not supported by "+kindName, self.Start(), end).WithKind(diag.Type)
}

func constMutationError(v Value) *diag.Error {
	return diag.New("cannot change a constant value", v.Start(), v.End()).WithKind(diag.Type)
}

// ArityError reports a call whose argument count doesn't match a
// function's (or built-in's) declared parameter count, per spec.md
// §4.D's "Function call" rule. Exported so the interp package's
// call-site dispatch can raise it for both user functions and
// built-ins.
func ArityError(start, end position.Position, name string, want, got int) *diag.Error {
	return diag.New("invalid function call", start, end).
		WithHelp(fmt.Sprintf("%s takes %d positional argument(s) but the program gave %d", name, want, got)).
		WithKind(diag.Arity)
}
