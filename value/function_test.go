package value

import "testing"

func TestFunctionCloneSharesCapturedEnvironment(t *testing.T) {
	env := NewEnvironment(nil)
	fn := &Function{Name: "f", Params: []string{"x"}, Env: env}

	clone := fn.Clone().(*Function)
	if clone.Env != env {
		t.Fatal("expected clone to share the captured environment")
	}
	if clone.IsConst() {
		t.Fatal("expected clone to be non-const")
	}
}

func TestFunctionIsAlwaysTruthy(t *testing.T) {
	fn := &Function{Name: "f"}
	if !fn.Truthy() {
		t.Fatal("expected functions to always be truthy")
	}
}

func TestListCloneOfNestedFunctionKeepsSharedEnv(t *testing.T) {
	env := NewEnvironment(nil)
	fn := &Function{Name: "f", Env: env}
	list := &List{Elements: []Value{fn}}

	clone := list.Clone().(*List)
	clonedFn, ok := clone.Elements[0].(*Function)
	if !ok {
		t.Fatalf("expected cloned element to remain a *Function, got %T", clone.Elements[0])
	}
	if clonedFn.Env != env {
		t.Fatal("expected nested function clone to keep sharing its captured environment")
	}
}

func TestBuiltInStringForm(t *testing.T) {
	b := &BuiltIn{Name: "bark"}
	if b.String() != "<built-in-function: bark>" {
		t.Fatalf("unexpected string form: %q", b.String())
	}
}
