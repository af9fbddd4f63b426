package interp

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/lexer"
	"github.com/george-lang/glang/parser"
	"github.com/george-lang/glang/position"
	"github.com/george-lang/glang/value"
)

// callBuiltin dispatches a built-in call by name, grounded on
// original_source/crates/glang-interpreter/src/interpreter.rs's
// Interpreter::new builtin name list — exactly spec.md §4.E's table.
func (i *Interpreter) callBuiltin(name string, args []value.Value, start, end position.Position, env *value.Environment) (value.Value, *diag.Error) {
	switch name {
	case "bark":
		return i.builtinBark(args, start, end)
	case "chew":
		return i.builtinChew(args, start, end)
	case "dig":
		return i.builtinDig(args, start, end)
	case "bury":
		return i.builtinBury(args, start, end)
	case "copy":
		return i.builtinCopy(args, start, end)
	case "tostring":
		return i.builtinToString(args, start, end)
	case "tonumber":
		return i.builtinToNumber(args, start, end)
	case "length":
		return i.builtinLength(args, start, end)
	case "uhoh":
		return i.builtinUhoh(args, start, end)
	case "type":
		return i.builtinType(args, start, end)
	case "run":
		return i.builtinRun(args, start, end, env)
	case "_env":
		return i.builtinEnv(args, start, end)
	default:
		return nil, diag.New("unknown built-in function '"+name+"'", start, end).WithKind(diag.Resolution)
	}
}

func checkArity(args []value.Value, start, end position.Position, name string, want int) *diag.Error {
	if len(args) != want {
		return value.ArityError(start, end, "'"+name+"'", want, len(args))
	}
	return nil
}

func asStrArg(v value.Value, start, end position.Position, context string) (*value.Str, *diag.Error) {
	s, ok := v.(*value.Str)
	if !ok {
		return nil, diag.New(context+" expects a string argument", start, end).WithKind(diag.Type)
	}
	return s, nil
}

func (i *Interpreter) builtinBark(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "bark", 1); err != nil {
		return nil, err
	}
	fmt.Fprintln(i.stdout, args[0].String())
	return value.Null(), nil
}

func (i *Interpreter) builtinChew(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "chew", 1); err != nil {
		return nil, err
	}
	prompt, err := asStrArg(args[0], start, end, "'chew'")
	if err != nil {
		return nil, err
	}

	fmt.Fprint(i.stdout, prompt.Value)
	line, rerr := i.stdinReader.ReadString('\n')
	if rerr != nil && line == "" {
		return &value.Str{Value: ""}, nil
	}
	line = strings.TrimRight(line, "\r\n")
	return &value.Str{Value: line}, nil
}

func (i *Interpreter) builtinDig(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "dig", 1); err != nil {
		return nil, err
	}
	pathArg, err := asStrArg(args[0], start, end, "'dig'")
	if err != nil {
		return nil, err
	}

	path, herr := homedir.Expand(pathArg.Value)
	if herr != nil {
		path = pathArg.Value
	}

	data, rerr := os.ReadFile(path)
	if rerr != nil {
		return nil, diag.New("failed to read file", start, end).
			WithHelp(errors.Wrap(rerr, path).Error()).WithKind(diag.IO)
	}
	return &value.Str{Value: string(data)}, nil
}

func (i *Interpreter) builtinBury(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "bury", 2); err != nil {
		return nil, err
	}
	pathArg, err := asStrArg(args[0], start, end, "'bury's first argument")
	if err != nil {
		return nil, err
	}
	contents, err := asStrArg(args[1], start, end, "'bury's second argument")
	if err != nil {
		return nil, err
	}

	path, herr := homedir.Expand(pathArg.Value)
	if herr != nil {
		path = pathArg.Value
	}

	if werr := os.WriteFile(path, []byte(contents.Value), 0o644); werr != nil {
		return nil, diag.New("failed to write file", start, end).
			WithHelp(errors.Wrap(werr, path).Error()).WithKind(diag.IO)
	}
	return value.Null(), nil
}

func (i *Interpreter) builtinCopy(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "copy", 1); err != nil {
		return nil, err
	}
	cp := args[0].Clone()
	cp.SetConst(false)
	cp.SetPositions(start, end)
	return cp, nil
}

func (i *Interpreter) builtinToString(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "tostring", 1); err != nil {
		return nil, err
	}
	return &value.Str{Value: args[0].String()}, nil
}

func (i *Interpreter) builtinToNumber(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "tonumber", 1); err != nil {
		return nil, err
	}
	s, err := asStrArg(args[0], start, end, "'tonumber'")
	if err != nil {
		return nil, err
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
	if perr != nil {
		return nil, diag.New("cannot convert '"+s.Value+"' to a number", start, end).WithKind(diag.Type)
	}
	return &value.Number{Value: f}, nil
}

func (i *Interpreter) builtinLength(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "length", 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *value.Str:
		return &value.Number{Value: float64(len([]rune(v.Value)))}, nil
	case *value.List:
		return &value.Number{Value: float64(len(v.Elements))}, nil
	default:
		return nil, diag.New("'length' expects a string or list argument", start, end).WithKind(diag.Type)
	}
}

func (i *Interpreter) builtinUhoh(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "uhoh", 1); err != nil {
		return nil, err
	}
	msg, err := asStrArg(args[0], start, end, "'uhoh'")
	if err != nil {
		return nil, err
	}
	raised := diag.New(msg.Value, start, end).WithKind(diag.UserRaised)
	raised.Propagate = true
	return nil, raised
}

func (i *Interpreter) builtinType(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "type", 1); err != nil {
		return nil, err
	}
	return &value.Str{Value: args[0].Kind().String()}, nil
}

func (i *Interpreter) builtinRun(args []value.Value, start, end position.Position, env *value.Environment) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "run", 1); err != nil {
		return nil, err
	}
	src, err := asStrArg(args[0], start, end, "'run'")
	if err != nil {
		return nil, err
	}

	toks, lerr := lexer.Tokenize("<run>", normalizeNewlines(src.Value))
	if lerr != nil {
		return nil, lerr
	}
	prog, perr := parser.Parse(toks)
	if perr != nil {
		return nil, perr
	}

	val, _, eerr := i.evalStatements(prog.Statements, env)
	if eerr != nil {
		return nil, eerr
	}
	return val, nil
}

func (i *Interpreter) builtinEnv(args []value.Value, start, end position.Position) (value.Value, *diag.Error) {
	if err := checkArity(args, start, end, "_env", 1); err != nil {
		return nil, err
	}
	name, err := asStrArg(args[0], start, end, "'_env'")
	if err != nil {
		return nil, err
	}
	return &value.Str{Value: i.envLookup(name.Value)}, nil
}
