package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/george-lang/glang/ast"
	"github.com/george-lang/glang/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lerr := lexer.Tokenize("a.glang", src)
	if lerr != nil {
		t.Fatalf("lex error: %v", lerr)
	}
	prog, perr := Parse(toks)
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	return prog
}

func TestParsesArithmeticPrecedence(t *testing.T) {
	prog := parse(t, "1 + 2 * 3")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	bin, ok := prog.Statements[0].(*ast.BinOp)
	if !ok {
		t.Fatalf("expected top-level BinOp, got %T", prog.Statements[0])
	}
	if _, ok := bin.Left.(*ast.Number); !ok {
		t.Fatalf("expected left operand to be the literal 1, got %T", bin.Left)
	}
	if _, ok := bin.Right.(*ast.BinOp); !ok {
		t.Fatalf("expected right side to be the nested 2*3, got %T", bin.Right)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	prog := parse(t, "2 ^ 3 ^ 2")
	bin := prog.Statements[0].(*ast.BinOp)
	if _, ok := bin.Right.(*ast.BinOp); !ok {
		t.Fatalf("expected right-associative power, got left-nested: %+v", bin)
	}
}

func TestObjDeclareVsReassign(t *testing.T) {
	prog := parse(t, "obj x = 1\nx = 2")
	if _, ok := prog.Statements[0].(*ast.VarDecl); !ok {
		t.Fatalf("expected VarDecl, got %T", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.VarReassign); !ok {
		t.Fatalf("expected VarReassign, got %T", prog.Statements[1])
	}
}

func TestConstDecl(t *testing.T) {
	prog := parse(t, "const y = 5")
	decl, ok := prog.Statements[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("expected ConstDecl, got %T", prog.Statements[0])
	}
	if decl.Name != "y" {
		t.Fatalf("expected name y, got %q", decl.Name)
	}
}

func TestIfAlsoIfOtherwise(t *testing.T) {
	prog := parse(t, "if 1 { give 1 } alsoif 2 { give 2 } otherwise { give 3 }")
	ifNode, ok := prog.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", prog.Statements[0])
	}
	if len(ifNode.Cases) != 2 {
		t.Fatalf("expected 2 cases (if + alsoif), got %d", len(ifNode.Cases))
	}
	if ifNode.Else == nil {
		t.Fatal("expected an otherwise case")
	}
}

func TestIfArrowForm(t *testing.T) {
	prog := parse(t, "if 1 -> 2")
	ifNode := prog.Statements[0].(*ast.If)
	if ifNode.Cases[0].DiscardResult {
		t.Fatal("arrow form should not discard its result")
	}
}

func TestWalkLoop(t *testing.T) {
	prog := parse(t, "walk i through 0 to 10 step 2 { bark(i) }")
	forNode, ok := prog.Statements[0].(*ast.For)
	if !ok {
		t.Fatalf("expected For, got %T", prog.Statements[0])
	}
	if forNode.Var != "i" || forNode.Step == nil {
		t.Fatalf("unexpected For node: %+v", forNode)
	}
}

func TestWhileLoop(t *testing.T) {
	prog := parse(t, "while 1 { leave }")
	w, ok := prog.Statements[0].(*ast.While)
	if !ok {
		t.Fatalf("expected While, got %T", prog.Statements[0])
	}
	body := w.Body.(*ast.List)
	if _, ok := body.Elements[0].(*ast.Break); !ok {
		t.Fatalf("expected Break inside body, got %T", body.Elements[0])
	}
}

func TestTryExceptBindsErrorName(t *testing.T) {
	prog := parse(t, "try { uhoh } except as e { bark(e) }")
	te, ok := prog.Statements[0].(*ast.TryExcept)
	if !ok {
		t.Fatalf("expected TryExcept, got %T", prog.Statements[0])
	}
	if te.ErrorBindingVar != "e" {
		t.Fatalf("expected error binding 'e', got %q", te.ErrorBindingVar)
	}
}

func TestFuncDefArrowSetsAutoReturn(t *testing.T) {
	prog := parse(t, "func add(a, b) -> a + b")
	fn, ok := prog.Statements[0].(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected FuncDef, got %T", prog.Statements[0])
	}
	if !fn.AutoReturn {
		t.Fatal("expected AutoReturn for arrow-form function")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestCallChaining(t *testing.T) {
	prog := parse(t, "f(1)(2)")
	call, ok := prog.Statements[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", prog.Statements[0])
	}
	if _, ok := call.Callee.(*ast.Call); !ok {
		t.Fatalf("expected chained Call as callee, got %T", call.Callee)
	}
}

func TestListLiteral(t *testing.T) {
	prog := parse(t, "[1, 2, 3]")
	list, ok := prog.Statements[0].(*ast.List)
	if !ok {
		t.Fatalf("expected List, got %T", prog.Statements[0])
	}
	if len(list.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(list.Elements))
	}
}

func TestFetchStatement(t *testing.T) {
	prog := parse(t, `fetch "math"`)
	imp, ok := prog.Statements[0].(*ast.Import)
	if !ok {
		t.Fatalf("expected Import, got %T", prog.Statements[0])
	}
	if _, ok := imp.Path.(*ast.Str); !ok {
		t.Fatalf("expected Str path, got %T", imp.Path)
	}
}

func TestBareGiveReturnsNil(t *testing.T) {
	prog := parse(t, "func f() { give }")
	fn := prog.Statements[0].(*ast.FuncDef)
	body := fn.Body.(*ast.List)
	ret, ok := body.Elements[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected Return, got %T", body.Elements[0])
	}
	if ret.Value != nil {
		t.Fatalf("expected nil value for bare give, got %+v", ret.Value)
	}
}

func TestUnexpectedTokenReportsHelp(t *testing.T) {
	toks, lerr := lexer.Tokenize("a.glang", "1 2")
	if lerr != nil {
		t.Fatalf("lex error: %v", lerr)
	}
	_, err := Parse(toks)
	if err == nil {
		t.Fatal("expected a parse error for adjacent literals")
	}
	if err.Help == "" {
		t.Fatal("expected a help hint on the parse error")
	}
}

// TestParseReparseIsIdempotent covers SPEC_FULL.md §8's round-trip
// property: lexing and parsing the same source twice must yield
// structurally identical ASTs. go-cmp.AllowUnexported is needed since
// ast.Span keeps its start/end fields unexported behind Start()/End().
func TestParseReparseIsIdempotent(t *testing.T) {
	src := "obj x = 1 + 2 * 3\n" +
		"func add(a, b) { give a + b; }\n" +
		"walk i through 0 to 3 step 1 { bark(add(i, x)); }\n" +
		"const xs = [1, 2, 3]\n" +
		"try { uhoh(\"oops\"); } except as e { bark(e); }"

	first := parse(t, src)
	second := parse(t, src)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(ast.Span{})); diff != "" {
		t.Fatalf("reparsing identical source produced a different AST (-first +second):\n%s", diff)
	}
}
