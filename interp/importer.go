package interp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/module"

	"github.com/george-lang/glang/diag"
	"github.com/george-lang/glang/lexer"
	"github.com/george-lang/glang/parser"
	"github.com/george-lang/glang/position"
	"github.com/george-lang/glang/value"
)

// fetch resolves rawPath relative to fromFile's directory (falling
// back to a kennel-style GLANG_PKG lookup), loads the module (from
// cache, or by evaluating it fresh), and floods its top-level
// bindings into importerEnv — per spec.md §4.E's Import visit rule
// and §9's "import flooding" note: no namespacing, bindings land
// directly in the importer's scope.
func (i *Interpreter) fetch(rawPath, fromFile string, importerEnv *value.Environment) *diag.Error {
	fromDir := "."
	if fromFile != "" {
		fromDir = filepath.Dir(fromFile)
	}

	canonical, rerr := i.resolveImportPath(fromDir, rawPath)
	if rerr != nil {
		return rerr
	}

	if fromFile != "" {
		if fromAbs, aerr := filepath.Abs(fromFile); aerr == nil && fromAbs == canonical {
			return diag.New("circular import", position.Position{}, position.Position{}).
				WithHelp("'"+rawPath+"' cannot fetch the file it is fetched from").WithKind(diag.IO)
		}
	}

	modEnv, lerr := i.loadModule(canonical)
	if lerr != nil {
		return lerr
	}

	for _, name := range modEnv.Bindings() {
		v, _ := modEnv.Get(name)
		importerEnv.Declare(name, v)
	}
	return nil
}

// resolveImportPath implements plain relative-to-importer resolution
// first; when the candidate doesn't exist and rawPath isn't itself a
// relative or absolute filesystem path, it falls back to a
// kennel-style lookup under GLANG_PKG — the expansion SPEC_FULL.md §4.E
// adds to recover the Rust source's glang-package-manager/GLANG_PKG
// behavior that spec.md's distillation left unspecified.
func (i *Interpreter) resolveImportPath(fromDir, rawPath string) (string, *diag.Error) {
	if !strings.HasSuffix(rawPath, ".glang") {
		return "", diag.New("import path must end in '.glang'", position.Position{}, position.Position{}).
			WithHelp("fetch paths name a file, e.g. 'fetch \"util.glang\"'").WithKind(diag.IO)
	}

	candidate := rawPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(fromDir, candidate)
	}
	if fileExists(candidate) {
		abs, aerr := filepath.Abs(candidate)
		if aerr != nil {
			return "", diag.New("cannot resolve import path", position.Position{}, position.Position{}).
				WithHelp(aerr.Error()).WithKind(diag.IO)
		}
		return abs, nil
	}

	if strings.HasPrefix(rawPath, ".") || strings.HasPrefix(rawPath, "/") {
		return "", diag.New("file not found", position.Position{}, position.Position{}).
			WithHelp("no such file: " + candidate).WithKind(diag.IO)
	}

	pkgRoot := i.pkgRootPath()
	if pkgRoot == "" {
		return "", diag.New("file not found", position.Position{}, position.Position{}).
			WithHelp("no such file: " + candidate + " (set GLANG_PKG to resolve kennel-style imports)").WithKind(diag.IO)
	}

	segment := strings.TrimSuffix(rawPath, ".glang")
	if merr := module.CheckImportPath(segment); merr != nil {
		return "", diag.New("invalid import path '"+rawPath+"'", position.Position{}, position.Position{}).
			WithHelp(merr.Error()).WithKind(diag.IO)
	}

	kennelCandidate := filepath.Join(pkgRoot, rawPath)
	if !fileExists(kennelCandidate) {
		return "", diag.New("file not found", position.Position{}, position.Position{}).
			WithHelp("no such file: " + kennelCandidate).WithKind(diag.IO)
	}
	abs, aerr := filepath.Abs(kennelCandidate)
	if aerr != nil {
		return "", diag.New("cannot resolve import path", position.Position{}, position.Position{}).
			WithHelp(aerr.Error()).WithKind(diag.IO)
	}
	return abs, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// loadModule returns the cached top-level environment for path if one
// exists; otherwise it evaluates the file exactly once — even under
// concurrent callers sharing this Interpreter — via a
// golang.org/x/sync/singleflight.Group keyed on the canonical path,
// per spec.md invariant 5 ("a path imports itself exactly once").
//
// The importing-cycle check must happen BEFORE calling sf.Do, not
// inside its callback: a cyclic chain (a fetches b fetches a) reaches
// loadModule(b) twice on the same goroutine while the first call is
// still in flight, and singleflight.Do blocks a duplicate key on the
// in-flight call's completion regardless of goroutine — nesting the
// check inside the callback would deadlock that second, same-stack
// call against itself instead of ever observing the cycle.
func (i *Interpreter) loadModule(path string) (*value.Environment, *diag.Error) {
	i.cacheMu.Lock()
	if env, ok := i.moduleCache[path]; ok {
		i.cacheMu.Unlock()
		i.metrics.IncCacheHit()
		i.logger.Debug("module cache hit", "path", path)
		return env, nil
	}
	i.cacheMu.Unlock()

	i.importMu.Lock()
	if i.importing[path] {
		i.importMu.Unlock()
		return nil, diag.New("circular import", position.Position{}, position.Position{}).
			WithHelp("'" + path + "' is already being fetched higher up the import chain").WithKind(diag.IO)
	}
	i.importing[path] = true
	i.importMu.Unlock()
	defer func() {
		i.importMu.Lock()
		delete(i.importing, path)
		i.importMu.Unlock()
	}()

	i.metrics.IncCacheMiss()
	i.logger.Debug("module cache miss", "path", path)

	res, err, _ := i.sf.Do(path, func() (interface{}, error) {
		src, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, diag.New("failed to read import", position.Position{}, position.Position{}).
				WithHelp(errors.Wrap(rerr, path).Error()).WithKind(diag.IO)
		}

		toks, lerr := lexer.Tokenize(path, normalizeNewlines(string(src)))
		if lerr != nil {
			return nil, lerr
		}
		prog, perr := parser.Parse(toks)
		if perr != nil {
			return nil, perr
		}

		modEnv := i.root.Child()
		if _, _, eerr := i.evalStatements(prog.Statements, modEnv); eerr != nil {
			return nil, eerr
		}

		i.cacheMu.Lock()
		i.moduleCache[path] = modEnv
		i.cacheMu.Unlock()
		return modEnv, nil
	})

	if err != nil {
		if de, ok := err.(*diag.Error); ok {
			return nil, de
		}
		return nil, diag.New(err.Error(), position.Position{}, position.Position{}).WithKind(diag.IO)
	}
	return res.(*value.Environment), nil
}
