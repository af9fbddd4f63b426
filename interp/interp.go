// Package interp implements GLang's tree-walking evaluator: the
// Interpreter type, its Options, the builtin dispatch table, and the
// module/import cache, per spec.md §4.E. stdin/stdout/stderr default
// to os.Std*, Options.Env is parsed into a plain key/value map, and
// the root environment holds the language's fixed builtin table the
// way a Go interpreter's universe scope holds the predeclared
// identifiers.
package interp

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/lexer"
	"github.com/george-lang/glang/metrics"
	"github.com/george-lang/glang/parser"
	"github.com/george-lang/glang/position"
	"github.com/george-lang/glang/value"
)

// DefaultSourceName names the file used by Eval when no real path is
// available.
const DefaultSourceName = "_.glang"

// Options configure a new Interpreter. Every field is optional.
type Options struct {
	// Standard input, output and error streams. Default to os.Stdin,
	// os.Stdout and os.Stderr respectively.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Env entries are in the form "key=value" and are consulted by
	// the _env builtin and by GLANG_STD/GLANG_PKG resolution before
	// falling back to the real process environment.
	Env []string

	// Logger receives Debug/Trace tracing of module cache hits/misses,
	// builtin dispatch, and function calls. Defaults to a null logger.
	Logger hclog.Logger

	// Metrics, when non-nil, is incremented for evaluations, module
	// cache hits/misses, and builtin errors.
	Metrics *metrics.Metrics

	// NoStd skips standard-library preload entirely.
	NoStd bool

	// StdRoot/PkgRoot let an embedder set GLANG_STD/GLANG_PKG
	// programmatically instead of through the process environment.
	StdRoot string
	PkgRoot string
}

// Interpreter holds the resources a GLang program shares across its
// whole run: the shared root environment (builtins + preloaded
// standard library), the module cache, and the configured ambient
// stack (logger, metrics, I/O streams).
type Interpreter struct {
	stdin       io.Reader
	stdinReader *bufio.Reader
	stdout      io.Writer
	stderr      io.Writer

	env     map[string]string
	stdRoot string
	pkgRoot string
	noStd   bool

	logger  hclog.Logger
	metrics *metrics.Metrics

	root *value.Environment

	cacheMu     sync.Mutex
	moduleCache map[string]*value.Environment

	importMu  sync.Mutex
	importing map[string]bool

	sf singleflight.Group
}

var builtinNames = []string{
	"bark", "chew", "dig", "bury", "copy", "tostring",
	"tonumber", "length", "uhoh", "type", "run", "_env",
}

// New builds an Interpreter: it normalizes I/O defaults, parses
// Options.Env, declares the fixed builtin table in a fresh root
// environment, and — unless NoStd is set — preloads the standard
// library into that same root so every subsequent Eval/EvalFile/fetch
// inherits it.
func New(options Options) (*Interpreter, *diag.Error) {
	i := &Interpreter{
		env:         map[string]string{},
		moduleCache: map[string]*value.Environment{},
		importing:   map[string]bool{},
	}

	i.stdin = options.Stdin
	if i.stdin == nil {
		i.stdin = os.Stdin
	}
	i.stdinReader = bufio.NewReader(i.stdin)

	i.stdout = options.Stdout
	if i.stdout == nil {
		i.stdout = os.Stdout
	}

	i.stderr = options.Stderr
	if i.stderr == nil {
		i.stderr = os.Stderr
	}

	for _, kv := range options.Env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			i.env[k] = v
		} else {
			i.env[kv] = ""
		}
	}

	i.logger = options.Logger
	if i.logger == nil {
		i.logger = hclog.NewNullLogger()
	}
	i.metrics = options.Metrics
	i.noStd = options.NoStd
	i.stdRoot = options.StdRoot
	i.pkgRoot = options.PkgRoot

	i.root = value.NewEnvironment(nil)
	for _, name := range builtinNames {
		i.root.Declare(name, &value.BuiltIn{Name: name})
	}

	if err := i.preloadStd(); err != nil {
		return nil, err
	}

	return i, nil
}

// envLookup reads name from Options.Env first, falling back to the
// real process environment.
func (i *Interpreter) envLookup(name string) string {
	if v, ok := i.env[name]; ok {
		return v
	}
	return os.Getenv(name)
}

func (i *Interpreter) stdRootPath() string {
	if i.stdRoot != "" {
		return i.stdRoot
	}
	return i.envLookup("GLANG_STD")
}

func (i *Interpreter) pkgRootPath() string {
	if i.pkgRoot != "" {
		return i.pkgRoot
	}
	return i.envLookup("GLANG_PKG")
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// preloadStd resolves GLANG_STD, evaluates "<root>/fundamental/lib.glang"
// in a child of the builtins-only root, and floods its top-level
// bindings back into the root — per spec.md §4.E's standard-library
// preload step. An unset GLANG_STD is treated the same as NoStd (only
// logged at Debug), since most embeddings and all of this package's
// own tests run with no bundled standard library on disk.
func (i *Interpreter) preloadStd() *diag.Error {
	if i.noStd {
		return nil
	}

	root := i.stdRootPath()
	if root == "" {
		i.logger.Debug("GLANG_STD not set, skipping standard library preload")
		return nil
	}

	libPath := root + "/fundamental/lib.glang"
	src, err := os.ReadFile(libPath)
	if err != nil {
		return diag.New("failed to read standard library", position.Position{}, position.Position{}).
			WithHelp(errors.Wrap(err, "reading GLANG_STD/fundamental/lib.glang").Error()).
			WithKind(diag.IO)
	}

	i.logger.Debug("preloading standard library", "path", libPath)

	toks, lerr := lexer.Tokenize(libPath, normalizeNewlines(string(src)))
	if lerr != nil {
		return lerr
	}
	prog, perr := parser.Parse(toks)
	if perr != nil {
		return perr
	}

	stdEnv := i.root.Child()
	if _, _, eerr := i.evalStatements(prog.Statements, stdEnv); eerr != nil {
		return eerr
	}

	for _, name := range stdEnv.Bindings() {
		v, _ := stdEnv.Get(name)
		i.root.Declare(name, v)
	}
	return nil
}

// Eval lexes, parses, and evaluates src as a fresh top-level program
// in a child of the shared root environment, per spec.md §6's single
// evaluate(filename, source) entry point.
func (i *Interpreter) Eval(src string) (value.Value, *diag.Error) {
	return i.evalNamed(DefaultSourceName, src)
}

// EvalFile reads path and evaluates it the same way Eval does,
// naming the source after path for diagnostics and relative fetch
// resolution.
func (i *Interpreter) EvalFile(path string) (value.Value, *diag.Error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.New("failed to read source file", position.Position{}, position.Position{}).
			WithHelp(errors.Wrap(err, "reading "+path).Error()).WithKind(diag.IO)
	}
	return i.evalNamed(path, string(src))
}

func (i *Interpreter) evalNamed(name, src string) (value.Value, *diag.Error) {
	i.metrics.IncEvaluations()
	i.logger.Trace("evaluating", "file", name, "bytes", len(src))

	toks, lerr := lexer.Tokenize(name, normalizeNewlines(src))
	if lerr != nil {
		return nil, lerr
	}
	prog, perr := parser.Parse(toks)
	if perr != nil {
		return nil, perr
	}

	env := i.root.Child()
	val, sig, eerr := i.evalStatements(prog.Statements, env)
	if eerr != nil {
		return nil, eerr
	}
	if sig.stops() {
		return nil, topLevelSignalError(sig, prog.Start(), prog.End())
	}
	return val, nil
}

func topLevelSignalError(sig signal, start, end position.Position) *diag.Error {
	switch {
	case sig.isReturn:
		return diag.New("'give' used outside of a function", start, end).
			WithHelp("remove the 'give', or move this code inside a 'func'").WithKind(diag.Syntactic)
	case sig.isContinue:
		return diag.New("'next' used outside of a loop", start, end).
			WithHelp("remove the 'next', or move this code inside a 'walk'/'while'").WithKind(diag.Syntactic)
	default:
		return diag.New("'leave' used outside of a loop", start, end).
			WithHelp("remove the 'leave', or move this code inside a 'walk'/'while'").WithKind(diag.Syntactic)
	}
}
