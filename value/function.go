package value

import (
	"github.com/george-lang/glang/ast"
	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/token"
)

// Function is a user-defined closure: a name (empty for anonymous
// literals), parameter names, a body, the auto_return flag set by the
// `->` arrow form, and the environment captured at definition time.
type Function struct {
	Base
	Name       string
	Params     []string
	Body       ast.Node
	AutoReturn bool
	Env        *Environment
}

func (f *Function) Kind() Kind   { return FunctionKind }
func (f *Function) Truthy() bool { return true }

func (f *Function) String() string {
	if f.Name == "" {
		return "<function: anonymous>"
	}
	return "<function: " + f.Name + ">"
}

// Clone copies the function wrapper but keeps the same captured
// Environment pointer — closures must keep sharing their defining
// scope even after a const-read or `copy()` clone.
func (f *Function) Clone() Value {
	cp := *f
	cp.constFlag = false
	return &cp
}

// Copy implements copystructure.Copier so that copystructure.Copy
// (used by List.Clone to deep-copy nested values) shallow-copies a
// Function instead of recursing into its captured Environment — a
// captured closure's scope must stay shared, never deep-cloned.
func (f *Function) Copy() (interface{}, error) { return f.Clone(), nil }

func (f *Function) BinaryOp(op token.Token, other Value) (Value, *diag.Error) {
	return nil, illegalOperation(f, other, "type")
}

func (f *Function) UnaryOp(op token.Token) (Value, *diag.Error) {
	if op.Matches(token.KEYWORD, "not") {
		return Bool(false), nil
	}
	return nil, diag.New("unsupported unary operation", f.Start(), f.End()).WithKind(diag.Type)
}

// BuiltIn is a native function dispatched by name; its implementation
// lives in the interp package's builtin table.
type BuiltIn struct {
	Base
	Name string
}

func (b *BuiltIn) Kind() Kind   { return BuiltInKind }
func (b *BuiltIn) Truthy() bool { return true }
func (b *BuiltIn) String() string {
	return "<built-in-function: " + b.Name + ">"
}

func (b *BuiltIn) Clone() Value {
	cp := *b
	cp.constFlag = false
	return &cp
}

// Copy implements copystructure.Copier; a BuiltIn carries no mutable
// state, so a shallow copy is always correct.
func (b *BuiltIn) Copy() (interface{}, error) { return b.Clone(), nil }

func (b *BuiltIn) BinaryOp(op token.Token, other Value) (Value, *diag.Error) {
	return nil, illegalOperation(b, other, "type")
}

func (b *BuiltIn) UnaryOp(op token.Token) (Value, *diag.Error) {
	if op.Matches(token.KEYWORD, "not") {
		return Bool(false), nil
	}
	return nil, diag.New("unsupported unary operation", b.Start(), b.End()).WithKind(diag.Type)
}

// Environment is GLang's lexical symbol table: an ordered mapping from
// name to Value, plus a parent pointer. Lookups walk parents; writes
// mutate the nearest frame that declares the name (reassignment) or
// the current frame (declaration), per spec.md §3.
type Environment struct {
	vars   map[string]Value
	order  []string
	parent *Environment
}

// NewEnvironment constructs an empty frame with the given parent (nil
// for a root frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]Value), parent: parent}
}

// Child constructs a new frame whose parent is e — used for function
// calls, loop bodies and if/while/try blocks.
func (e *Environment) Child() *Environment { return NewEnvironment(e) }

// Declare binds name in the current frame unconditionally (obj/const
// declaration), shadowing any outer binding of the same name.
func (e *Environment) Declare(name string, v Value) {
	if _, exists := e.vars[name]; !exists {
		e.order = append(e.order, name)
	}
	e.vars[name] = v
}

func (e *Environment) frameOf(name string) *Environment {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			return env
		}
	}
	return nil
}

// Reassign writes to the nearest frame that already declares name,
// reporting false if no ancestor frame declares it.
func (e *Environment) Reassign(name string, v Value) bool {
	frame := e.frameOf(name)
	if frame == nil {
		return false
	}
	frame.vars[name] = v
	return true
}

// Get looks up name, walking parent frames.
func (e *Environment) Get(name string) (Value, bool) {
	frame := e.frameOf(name)
	if frame == nil {
		return nil, false
	}
	return frame.vars[name], true
}

// IsDeclaredConst reports whether name, wherever it is bound in an
// ancestor frame, is currently bound to a const value.
func (e *Environment) IsDeclaredConst(name string) bool {
	frame := e.frameOf(name)
	if frame == nil {
		return false
	}
	return frame.vars[name].IsConst()
}

// Root walks to the outermost frame — the shared root that holds
// built-ins and standard-library bindings.
func (e *Environment) Root() *Environment {
	env := e
	for env.parent != nil {
		env = env.parent
	}
	return env
}

// Bindings returns the names declared directly in this frame, in
// declaration order — used by `fetch` to flood an importer's scope
// with a module's top-level bindings.
func (e *Environment) Bindings() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}
