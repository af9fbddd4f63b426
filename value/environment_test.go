package value

import "testing"

func TestEnvironmentDeclareAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Declare("x", &Number{Value: 1})

	got, ok := env.Get("x")
	if !ok || got.(*Number).Value != 1 {
		t.Fatalf("expected x == 1, got %v, ok %v", got, ok)
	}
}

func TestEnvironmentChildSeesParentBindings(t *testing.T) {
	root := NewEnvironment(nil)
	root.Declare("x", &Number{Value: 1})

	child := root.Child()
	got, ok := child.Get("x")
	if !ok || got.(*Number).Value != 1 {
		t.Fatalf("expected child to see parent's x, got %v, ok %v", got, ok)
	}
}

func TestEnvironmentReassignRequiresExistingBinding(t *testing.T) {
	env := NewEnvironment(nil)
	if env.Reassign("missing", &Number{Value: 1}) {
		t.Fatal("expected reassign of an undeclared name to fail")
	}

	env.Declare("x", &Number{Value: 1})
	if !env.Reassign("x", &Number{Value: 2}) {
		t.Fatal("expected reassign of a declared name to succeed")
	}
	got, _ := env.Get("x")
	if got.(*Number).Value != 2 {
		t.Fatalf("expected x == 2 after reassign, got %v", got)
	}
}

func TestEnvironmentReassignWritesToDeclaringFrame(t *testing.T) {
	root := NewEnvironment(nil)
	root.Declare("x", &Number{Value: 1})
	child := root.Child()

	if !child.Reassign("x", &Number{Value: 9}) {
		t.Fatal("expected reassign to find x in the parent frame")
	}

	rootVal, _ := root.Get("x")
	if rootVal.(*Number).Value != 9 {
		t.Fatalf("expected reassign to mutate the declaring frame, got %v", rootVal)
	}
}

func TestEnvironmentShadowingInChildFrame(t *testing.T) {
	root := NewEnvironment(nil)
	root.Declare("x", &Number{Value: 1})
	child := root.Child()
	child.Declare("x", &Number{Value: 2})

	childVal, _ := child.Get("x")
	rootVal, _ := root.Get("x")
	if childVal.(*Number).Value != 2 || rootVal.(*Number).Value != 1 {
		t.Fatalf("expected shadowing to leave parent untouched: child=%v root=%v", childVal, rootVal)
	}
}

func TestEnvironmentRoot(t *testing.T) {
	root := NewEnvironment(nil)
	mid := root.Child()
	leaf := mid.Child()

	if leaf.Root() != root {
		t.Fatal("expected Root() to walk to the outermost frame")
	}
}

func TestEnvironmentBindingsPreservesDeclarationOrder(t *testing.T) {
	env := NewEnvironment(nil)
	env.Declare("b", &Number{Value: 1})
	env.Declare("a", &Number{Value: 2})

	bindings := env.Bindings()
	if len(bindings) != 2 || bindings[0] != "b" || bindings[1] != "a" {
		t.Fatalf("expected declaration order [b a], got %v", bindings)
	}
}

func TestEnvironmentIsDeclaredConst(t *testing.T) {
	env := NewEnvironment(nil)
	c := &Number{Value: 1}
	c.SetConst(true)
	env.Declare("x", c)

	if !env.IsDeclaredConst("x") {
		t.Fatal("expected x to be reported const")
	}
}
