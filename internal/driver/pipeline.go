package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ember/internal/ast"
	"ember/internal/diag"
	"ember/internal/interp"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

// TokenizeResult is the output of the lex stage.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	// Cached is set when the tokens came from the token cache.
	Cached bool
}

// ParseResult extends TokenizeResult with the statement list.
type ParseResult struct {
	*TokenizeResult
	Stmts []ast.Stmt
}

// RunResult extends ParseResult with the outcome of execution.
type RunResult struct {
	*ParseResult
	Value   interp.Value
	Machine *interp.Machine
}

// Failed reports whether any stage produced an error diagnostic.
func (r *TokenizeResult) Failed() bool { return r.Bag.HasErrors() }

// load reads path into a fresh FileSet.
func load(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, fs.Get(id), nil
}

// Tokenize loads and lexes path. The error covers loading only; lexical
// errors end up in the bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs, file, err := load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(ctx, fs, file, opts), nil
}

// Parse loads, lexes and parses path.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs, file, err := load(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, fs, file, opts), nil
}

// Run loads path and executes it.
func Run(ctx context.Context, path string, opts Options) (*RunResult, error) {
	fs, file, err := load(path)
	if err != nil {
		return nil, err
	}
	return RunFile(ctx, fs, file, opts), nil
}

// RunSource executes in-memory source registered under name.
func RunSource(ctx context.Context, name, src string, opts Options) *RunResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(src)))
	return RunFile(ctx, fs, file, opts)
}

// TokenizeFile lexes file. With opts.Cache set the tokens are looked up
// first and stored after a successful lex; cache failures only cost the
// cache.
func TokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	res := &TokenizeResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}
	stop := opts.track("lex " + file.Path)
	started := time.Now()
	opts.emit(ctx, Event{File: file.Path, Stage: StageLex, Status: StatusWorking})
	ctx, span := trace.Start(ctx, trace.ScopePass, "lex")

	var key Digest
	if opts.Cache != nil {
		key = TokenKey(file.Content, opts.KeepWhitespace)
		toks, ok, err := opts.Cache.Get(key, file.ID)
		if err != nil {
			trace.Point(ctx, trace.ScopePass, "cache", "read failed: "+err.Error())
		}
		if ok {
			res.Tokens, res.Cached = toks, true
			span.WithExtra("cached", "true").WithExtra("tokens", strconv.Itoa(len(toks))).End("")
			stop("cached")
			return res
		}
	}

	toks, err := lexer.Tokenize(file, lexer.Options{KeepWhitespace: opts.KeepWhitespace})
	if err != nil {
		res.Bag.Add(diag.FromError(err))
		span.End(err.Error())
		stop("error")
		opts.emit(ctx, Event{File: file.Path, Stage: StageLex, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return res
	}
	res.Tokens = toks
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toks); err != nil {
			trace.Point(ctx, trace.ScopePass, "cache", "write failed: "+err.Error())
		}
	}
	span.WithExtra("tokens", strconv.Itoa(len(toks))).End("")
	stop(fmt.Sprintf("%d tokens", len(toks)))
	return res
}

// ParseFile lexes and parses file. Parsing is skipped when lexing failed.
func ParseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	lexOpts := opts
	lexOpts.KeepWhitespace = false
	res := &ParseResult{TokenizeResult: TokenizeFile(ctx, fs, file, lexOpts)}
	if res.Failed() {
		return res
	}

	stop := opts.track("parse " + file.Path)
	started := time.Now()
	opts.emit(ctx, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	stmts, err := parser.ParseContext(ctx, res.Tokens)
	if err != nil {
		res.Bag.Add(diag.FromError(err))
		stop("error")
		opts.emit(ctx, Event{File: file.Path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return res
	}
	res.Stmts = stmts
	stop(fmt.Sprintf("%d statements", len(stmts)))
	return res
}

// RunFile parses file and executes it on a fresh machine built by
// NewMachine. Execution stops at the first runtime error.
func RunFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *RunResult {
	started := time.Now()
	res := &RunResult{ParseResult: ParseFile(ctx, fs, file, opts), Value: interp.Null()}
	if res.Failed() {
		return res
	}
	m, err := NewMachine(opts)
	if err != nil {
		res.Bag.Add(diag.NewGlobal(diag.ProjManifestError, err.Error()))
		opts.emit(ctx, Event{File: file.Path, Stage: StageRun, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return res
	}
	res.Machine = m
	res.Value, err = Exec(ctx, res.Stmts, m, opts)
	if err != nil {
		res.Bag.Add(diag.FromError(err))
		opts.emit(ctx, Event{File: file.Path, Stage: StageRun, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return res
	}
	opts.emit(ctx, Event{File: file.Path, Stage: StageRun, Status: StatusDone, Elapsed: time.Since(started)})
	return res
}

// Exec runs stmts on m inside a "run" span. The REPL uses it directly to
// keep one machine across inputs.
func Exec(ctx context.Context, stmts []ast.Stmt, m *interp.Machine, opts Options) (interp.Value, error) {
	stop := opts.track("run")
	ctx, span := trace.Start(ctx, trace.ScopePass, "run")
	v, err := interp.Run(ctx, stmts, m, interp.Options{EagerLogic: opts.EagerLogic})
	if err != nil {
		span.End(err.Error())
		stop("error")
		return v, err
	}
	span.WithExtra("result", v.Repr()).End("")
	stop("")
	return v, nil
}
