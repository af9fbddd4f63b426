package interp

import (
	"github.com/george-lang/glang/ast"
	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/position"
	"github.com/george-lang/glang/token"
	"github.com/george-lang/glang/value"
)

// eval is the single recursive visitor over every ast.Node variant,
// grounded on original_source/crates/glang-interpreter/src/
// interpreter.rs's `visit` match and its per-node visit_* methods. It
// returns a value, a control-flow signal, and an error — exactly one
// of {signal, error} is ever non-empty on any given return, mirroring
// the Rust source's RuntimeResult/Result split (a propagating error
// is never also a return/continue/break in the same step).
func (i *Interpreter) eval(n ast.Node, env *value.Environment) (value.Value, signal, *diag.Error) {
	switch node := n.(type) {
	case *ast.Number:
		v := &value.Number{Value: node.Value}
		v.SetPositions(node.Start(), node.End())
		return v, noSignal, nil

	case *ast.Str:
		v := &value.Str{Value: node.Value}
		v.SetPositions(node.Start(), node.End())
		return v, noSignal, nil

	case *ast.List:
		if node.IsBlock {
			return i.evalStatements(node.Elements, env)
		}
		return i.evalListLiteral(node, env)

	case *ast.VarDecl:
		val, sig, err := i.eval(node.Value, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		env.Declare(node.Name, val)
		return val, noSignal, nil

	case *ast.VarReassign:
		val, sig, err := i.eval(node.Value, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		if env.IsDeclaredConst(node.Name) {
			return nil, noSignal, diag.New("cannot reassign the value of a constant", node.Start(), node.End()).
				WithKind(diag.Resolution)
		}
		if !env.Reassign(node.Name, val) {
			return nil, noSignal, diag.New("'"+node.Name+"' is not defined", node.Start(), node.End()).
				WithHelp("declare it first with 'obj "+node.Name+" = ...'").WithKind(diag.Resolution)
		}
		return val, noSignal, nil

	case *ast.ConstDecl:
		val, sig, err := i.eval(node.Value, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		if !val.IsConst() {
			val = val.Clone()
			val.SetConst(true)
		}
		env.Declare(node.Name, val)
		return val, noSignal, nil

	case *ast.VarAccess:
		val, ok := env.Get(node.Name)
		if !ok {
			return nil, noSignal, diag.New("'"+node.Name+"' is not defined", node.Start(), node.End()).
				WithKind(diag.Resolution)
		}
		if val.IsConst() {
			clone := val.Clone()
			clone.SetPositions(node.Start(), node.End())
			return clone, noSignal, nil
		}
		val.SetPositions(node.Start(), node.End())
		return val, noSignal, nil

	case *ast.If:
		return i.evalIf(node, env)

	case *ast.For:
		return i.evalFor(node, env)

	case *ast.While:
		return i.evalWhile(node, env)

	case *ast.TryExcept:
		return i.evalTryExcept(node, env)

	case *ast.FuncDef:
		fn := &value.Function{Name: node.Name, Params: node.Params, Body: node.Body, AutoReturn: node.AutoReturn, Env: env}
		fn.SetPositions(node.Start(), node.End())
		if node.Name != "" {
			env.Declare(node.Name, fn)
		}
		return fn, noSignal, nil

	case *ast.Call:
		return i.evalCall(node, env)

	case *ast.BinOp:
		return i.evalBinOp(node, env)

	case *ast.UnaryOp:
		operand, sig, err := i.eval(node.Operand, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		result, operr := operand.UnaryOp(node.Op)
		if operr != nil {
			return nil, noSignal, operr
		}
		return result, noSignal, nil

	case *ast.Return:
		if node.Value == nil {
			return value.Null(), returnSignal, nil
		}
		val, sig, err := i.eval(node.Value, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		return val, returnSignal, nil

	case *ast.Continue:
		return value.Null(), continueSignal, nil

	case *ast.Break:
		return value.Null(), breakSignal, nil

	case *ast.Import:
		return i.evalImport(node, env)
	}

	return nil, noSignal, diag.New("cannot evaluate this expression", n.Start(), n.End()).WithKind(diag.Syntactic)
}

// evalStatements executes stmts in order against env, stopping at the
// first error or control-flow signal; its result is the last executed
// statement's value — the shape both block bodies and top-level
// Programs share.
func (i *Interpreter) evalStatements(stmts []ast.Node, env *value.Environment) (value.Value, signal, *diag.Error) {
	result := value.Null()
	for _, s := range stmts {
		val, sig, err := i.eval(s, env)
		if err != nil {
			return nil, noSignal, err
		}
		result = val
		if sig.stops() {
			return result, sig, nil
		}
	}
	return result, noSignal, nil
}

// evalBody evaluates a control-flow construct's body: a brace-form
// body (an IsBlock List) runs as a statement sequence in env directly;
// any other node is a single arrow-form (`->`) expression.
func (i *Interpreter) evalBody(n ast.Node, env *value.Environment) (value.Value, signal, *diag.Error) {
	if list, ok := n.(*ast.List); ok && list.IsBlock {
		return i.evalStatements(list.Elements, env)
	}
	return i.eval(n, env)
}

func (i *Interpreter) evalListLiteral(node *ast.List, env *value.Environment) (value.Value, signal, *diag.Error) {
	elems := make([]value.Value, 0, len(node.Elements))
	for _, e := range node.Elements {
		val, sig, err := i.eval(e, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		elems = append(elems, val)
	}
	v := &value.List{Elements: elems}
	v.SetPositions(node.Start(), node.End())
	return v, noSignal, nil
}

func (i *Interpreter) evalIf(node *ast.If, env *value.Environment) (value.Value, signal, *diag.Error) {
	for _, c := range node.Cases {
		condVal, sig, err := i.eval(c.Cond, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		if !condVal.Truthy() {
			continue
		}
		val, sig, err := i.evalBody(c.Body, env.Child())
		if err != nil || sig.stops() {
			return val, sig, err
		}
		if c.DiscardResult {
			return value.Null(), noSignal, nil
		}
		return val, noSignal, nil
	}

	if node.Else != nil {
		val, sig, err := i.evalBody(node.Else.Body, env.Child())
		if err != nil || sig.stops() {
			return val, sig, err
		}
		if node.Else.DiscardResult {
			return value.Null(), noSignal, nil
		}
		return val, noSignal, nil
	}

	return value.Null(), noSignal, nil
}

func (i *Interpreter) evalFor(node *ast.For, env *value.Environment) (value.Value, signal, *diag.Error) {
	startVal, sig, err := i.eval(node.Start, env)
	if err != nil || sig.stops() {
		return nil, sig, err
	}
	startNum, nerr := asNumber(startVal, "walk start bound")
	if nerr != nil {
		return nil, noSignal, nerr
	}

	endVal, sig, err := i.eval(node.End, env)
	if err != nil || sig.stops() {
		return nil, sig, err
	}
	endNum, nerr := asNumber(endVal, "walk end bound")
	if nerr != nil {
		return nil, noSignal, nerr
	}

	step := 1.0
	if node.Step != nil {
		stepVal, sig, err := i.eval(node.Step, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		stepNum, nerr := asNumber(stepVal, "walk step")
		if nerr != nil {
			return nil, noSignal, nerr
		}
		step = stepNum
	}
	if step == 0 {
		return nil, noSignal, diag.New("invalid step", node.Start(), node.End()).
			WithHelp("a 'walk' step cannot be 0").WithKind(diag.Arithmetic)
	}

	loopEnv := env.Child()
	for cur := startNum; (step > 0 && cur < endNum) || (step < 0 && cur > endNum); cur += step {
		loopEnv.Declare(node.Var, &value.Number{Value: cur})
		val, sig, err := i.evalBody(node.Body, loopEnv)
		if err != nil {
			return nil, noSignal, err
		}
		if sig.isReturn {
			return val, sig, nil
		}
		if sig.isBreak {
			break
		}
	}
	return value.Null(), noSignal, nil
}

func (i *Interpreter) evalWhile(node *ast.While, env *value.Environment) (value.Value, signal, *diag.Error) {
	loopEnv := env.Child()
	for {
		condVal, sig, err := i.eval(node.Cond, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		if !condVal.Truthy() {
			break
		}

		val, sig2, err2 := i.evalBody(node.Body, loopEnv)
		sig, err = sig2, err2
		if err != nil {
			return nil, noSignal, err
		}
		if sig.isReturn {
			return val, sig, nil
		}
		if sig.isBreak {
			break
		}
	}
	return value.Null(), noSignal, nil
}

func (i *Interpreter) evalTryExcept(node *ast.TryExcept, env *value.Environment) (value.Value, signal, *diag.Error) {
	val, sig, err := i.evalBody(node.TryBody, env.Child())
	if err == nil {
		return val, sig, nil
	}

	excEnv := env.Child()
	if node.ErrorBindingVar != "" {
		errVal := &value.Str{Value: err.Message}
		errVal.SetConst(true)
		errVal.SetPositions(err.Start, err.End)
		excEnv.Declare(node.ErrorBindingVar, errVal)
	}
	return i.evalBody(node.ExceptBody, excEnv)
}

func (i *Interpreter) evalBinOp(node *ast.BinOp, env *value.Environment) (value.Value, signal, *diag.Error) {
	left, sig, err := i.eval(node.Left, env)
	if err != nil || sig.stops() {
		return nil, sig, err
	}

	if node.Op.Kind == token.KEYWORD && (node.Op.Lexeme == "and" || node.Op.Lexeme == "or") {
		if node.Op.Lexeme == "and" && !left.Truthy() {
			return value.Bool(false), noSignal, nil
		}
		if node.Op.Lexeme == "or" && left.Truthy() {
			return value.Bool(true), noSignal, nil
		}
		right, sig, err := i.eval(node.Right, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		return value.Bool(right.Truthy()), noSignal, nil
	}

	right, sig, err := i.eval(node.Right, env)
	if err != nil || sig.stops() {
		return nil, sig, err
	}

	// Operating on the same identity twice (e.g. `xs + xs`) would let
	// one side's in-place mutation alias the other mid-operation;
	// clone the right side first, the same self-compare-clone pattern
	// the Rust source's visit_binary_operator_node uses.
	if left == right {
		right = right.Clone()
	}

	result, operr := left.BinaryOp(node.Op, right)
	if operr != nil {
		return nil, noSignal, operr
	}
	return result, noSignal, nil
}

func (i *Interpreter) evalCall(node *ast.Call, env *value.Environment) (value.Value, signal, *diag.Error) {
	callee, sig, err := i.eval(node.Callee, env)
	if err != nil || sig.stops() {
		return nil, sig, err
	}

	args := make([]value.Value, 0, len(node.Args))
	for _, a := range node.Args {
		av, sig, err := i.eval(a, env)
		if err != nil || sig.stops() {
			return nil, sig, err
		}
		args = append(args, av)
	}

	result, cerr := i.dispatchCall(callee, args, node.Start(), node.End(), env)
	if cerr != nil {
		return nil, noSignal, cerr.AtCallSite(node.Start(), node.End())
	}
	return result, noSignal, nil
}

func (i *Interpreter) dispatchCall(callee value.Value, args []value.Value, start, end position.Position, callerEnv *value.Environment) (value.Value, *diag.Error) {
	switch fn := callee.(type) {
	case *value.BuiltIn:
		i.logger.Trace("dispatch builtin", "name", fn.Name)
		res, err := i.callBuiltin(fn.Name, args, start, end, callerEnv)
		if err != nil {
			i.metrics.IncBuiltinError()
		}
		return res, err

	case *value.Function:
		return i.callFunction(fn, args, start, end)

	default:
		return nil, diag.New("value is not callable", start, end).
			WithHelp("only functions and built-in functions can be called").WithKind(diag.Type)
	}
}

func (i *Interpreter) callFunction(fn *value.Function, args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if len(args) != len(fn.Params) {
		return nil, value.ArityError(start, end, functionLabel(fn), len(fn.Params), len(args))
	}

	i.logger.Trace("call function", "name", fn.Name)
	callEnv := fn.Env.Child()
	for idx, p := range fn.Params {
		callEnv.Declare(p, args[idx])
	}

	val, sig, err := i.evalBody(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if sig.isContinue {
		return nil, diag.New("'next' used outside of a loop", start, end).WithKind(diag.Syntactic)
	}
	if sig.isBreak {
		return nil, diag.New("'leave' used outside of a loop", start, end).WithKind(diag.Syntactic)
	}
	if sig.isReturn || fn.AutoReturn {
		return val, nil
	}
	return value.Null(), nil
}

func functionLabel(fn *value.Function) string {
	if fn.Name == "" {
		return "this function"
	}
	return "'" + fn.Name + "'"
}

func (i *Interpreter) evalImport(node *ast.Import, env *value.Environment) (value.Value, signal, *diag.Error) {
	pathVal, sig, err := i.eval(node.Path, env)
	if err != nil || sig.stops() {
		return nil, sig, err
	}
	str, ok := pathVal.(*value.Str)
	if !ok {
		return nil, noSignal, diag.New("fetch path must be a string", node.Start(), node.End()).WithKind(diag.Type)
	}

	if ferr := i.fetch(str.Value, node.Start().Path(), env); ferr != nil {
		return nil, noSignal, ferr.AtCallSite(node.Start(), node.End())
	}
	return value.Null(), noSignal, nil
}

func asNumber(v value.Value, what string) (float64, *diag.Error) {
	n, ok := v.(*value.Number)
	if !ok {
		return 0, diag.New(what+" must be a number", v.Start(), v.End()).WithKind(diag.Type)
	}
	return n.Value, nil
}
