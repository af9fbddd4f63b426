// Package ast defines GLang's AST node sum type, per spec.md §3. Every
// node carries Start/End positions and is immutable once parsed.
package ast

import (
	"github.com/george-lang/glang/position"
	"github.com/george-lang/glang/token"
)

// Node is implemented by every AST node variant.
type Node interface {
	Start() position.Position
	End() position.Position
}

// Span is the embeddable start/end pair every concrete node carries.
type Span struct {
	start, end position.Position
}

func (s Span) Start() position.Position { return s.start }
func (s Span) End() position.Position   { return s.end }

// NewSpan builds the embeddable span every concrete node carries.
func NewSpan(start, end position.Position) Span { return Span{start, end} }

// Number is a numeric literal.
type Number struct {
	Span
	Value float64
}

// Str is a string literal.
type Str struct {
	Span
	Value string
}

// List is either a literal list expression `[a, b, c]` (IsBlock false)
// or a brace-delimited statement sequence `{ ... }` reused as a block
// body (IsBlock true) — the parser's block() is the sole producer of
// the latter, so the evaluator uses IsBlock to tell a list literal
// apart from a loop/try/function body without re-deriving it from
// context.
type List struct {
	Span
	Elements []Node
	IsBlock  bool
}

// VarDecl introduces a mutable binding: `obj name = value`.
type VarDecl struct {
	Span
	Name  string
	Value Node
}

// VarReassign requires a prior binding: `name = value`.
type VarReassign struct {
	Span
	Name  string
	Value Node
}

// ConstDecl introduces an immutable binding: `const name = value`.
type ConstDecl struct {
	Span
	Name  string
	Value Node
}

// VarAccess reads a bound name.
type VarAccess struct {
	Span
	Name string
}

// IfCase is one `if`/`alsoif` branch.
type IfCase struct {
	Cond          Node
	Body          Node
	DiscardResult bool
}

// ElseCase is the optional `otherwise` branch.
type ElseCase struct {
	Body          Node
	DiscardResult bool
}

// If is a cascade of if/alsoif cases with an optional otherwise case.
type If struct {
	Span
	Cases []IfCase
	Else  *ElseCase
}

// For is the counted `walk var through start to end (step s)? { body }` loop.
type For struct {
	Span
	Var   string
	Start Node
	End   Node
	Step  Node // nil means default step of 1
	Body  Node
}

// While is a `while cond { body }` loop.
type While struct {
	Span
	Cond Node
	Body Node
}

// TryExcept is `try { ... } except as name { ... }`.
type TryExcept struct {
	Span
	TryBody         Node
	ExceptBody      Node
	ErrorBindingVar string
}

// FuncDef defines a function; Name is "" for an anonymous function
// literal. AutoReturn is set by the `->` arrow form.
type FuncDef struct {
	Span
	Name       string
	Params     []string
	Body       Node
	AutoReturn bool
}

// Call applies Callee to Args.
type Call struct {
	Span
	Callee Node
	Args   []Node
}

// BinOp is a binary operator application.
type BinOp struct {
	Span
	Left  Node
	Op    token.Token
	Right Node
}

// UnaryOp is a unary operator application (`-x`, `not x`).
type UnaryOp struct {
	Span
	Op      token.Token
	Operand Node
}

// Return is `give expr?`; Value is nil for a bare `give`.
type Return struct {
	Span
	Value Node
}

// Continue is `next`.
type Continue struct{ Span }

// Break is `leave`.
type Break struct{ Span }

// Import is `fetch expr`; Path is evaluated to a string at runtime.
type Import struct {
	Span
	Path Node
}

// Program wraps the top-level statement list.
type Program struct {
	Span
	Statements []Node
}

// Walk traverses n in depth-first order — useful for tooling
// (pretty-printers, the round-trip test harness) without burdening
// every visitor with traversal logic.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)

	switch v := n.(type) {
	case *List:
		for _, e := range v.Elements {
			Walk(e, fn)
		}
	case *VarDecl:
		Walk(v.Value, fn)
	case *VarReassign:
		Walk(v.Value, fn)
	case *ConstDecl:
		Walk(v.Value, fn)
	case *If:
		for _, c := range v.Cases {
			Walk(c.Cond, fn)
			Walk(c.Body, fn)
		}
		if v.Else != nil {
			Walk(v.Else.Body, fn)
		}
	case *For:
		Walk(v.Start, fn)
		Walk(v.End, fn)
		Walk(v.Step, fn)
		Walk(v.Body, fn)
	case *While:
		Walk(v.Cond, fn)
		Walk(v.Body, fn)
	case *TryExcept:
		Walk(v.TryBody, fn)
		Walk(v.ExceptBody, fn)
	case *FuncDef:
		Walk(v.Body, fn)
	case *Call:
		Walk(v.Callee, fn)
		for _, a := range v.Args {
			Walk(a, fn)
		}
	case *BinOp:
		Walk(v.Left, fn)
		Walk(v.Right, fn)
	case *UnaryOp:
		Walk(v.Operand, fn)
	case *Return:
		Walk(v.Value, fn)
	case *Import:
		Walk(v.Path, fn)
	case *Program:
		for _, s := range v.Statements {
			Walk(s, fn)
		}
	}
}
