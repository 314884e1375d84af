package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/driver"
	"ember/internal/interp"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
)

const (
	replPrompt     = "ember> "
	replContPrompt = "   ... "
	historyFile    = ".ember_history"
)

const replHelp = `Commands:
  :vars    list variables and their values
  :funcs   list host functions
  :reset   forget every variable
  :help    show this help
  :quit    leave the REPL (Ctrl+D works too)
An expression prints its value; statements keep their effects for later inputs.
`

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive ember session",
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}
	cmd.Flags().Bool("eager-logic", false, "evaluate both operands of && and ||")
	return cmd
}

func runRepl(cmd *cobra.Command, _ []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	eager, err := cmd.Flags().GetBool("eager-logic")
	if err != nil {
		return fmt.Errorf("failed to get eager-logic flag: %w", err)
	}
	s, err := newSession(g, driver.Options{MaxDiagnostics: g.maxDiagnostics, EagerLogic: eager}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.completions)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if !g.quiet {
		fmt.Fprintln(s.out, "ember REPL, :help for commands")
	}
	ctx := cmd.Context()
	for {
		src, ok := readInput(ln, s)
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if s.command(trimmed) {
				return nil
			}
			continue
		}
		s.eval(ctx, src)
	}
}

func historyPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, historyFile)
	}
	return filepath.Join(os.TempDir(), historyFile)
}

// readInput collects lines until the session considers the input
// complete. ok is false on Ctrl+D.
func readInput(ln *liner.State, s *session) (string, bool) {
	var b strings.Builder
	for {
		prompt := replPrompt
		if b.Len() > 0 {
			prompt = replContPrompt
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C сбрасывает набранный ввод
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || s.ready(src) {
			return src, true
		}
	}
}

// session is one REPL run: a machine that survives between inputs and a
// file set holding every input as "<repl:N>" so diagnostics can point back
// at earlier lines.
type session struct {
	g      globalOptions
	opts   driver.Options
	fs     *source.FileSet
	m      *interp.Machine
	out    io.Writer
	errOut io.Writer
	inputs int
}

func newSession(g globalOptions, opts driver.Options, out, errOut io.Writer) (*session, error) {
	opts.Out = out
	m, err := driver.NewMachine(opts)
	if err != nil {
		return nil, err
	}
	return &session{g: g, opts: opts, fs: source.NewFileSet(), m: m, out: out, errOut: errOut}, nil
}

// ready reports whether src can be evaluated. Input that fails only
// because it ended too early (an open block, a dangling operator, an
// unclosed string) asks for another line; any other error is ready so it
// gets reported.
func (s *session) ready(src string) bool {
	toks, err := lexer.TokenizeString(src)
	if err != nil {
		var lexErr *lexer.LexError
		return !errors.As(err, &lexErr) || lexErr.Kind != lexer.ErrUnterminatedString
	}
	_, err = parser.ParseExpression(toks)
	if err == nil {
		return true
	}
	if endedEarly(err) {
		return false
	}
	_, err = parser.Parse(toks)
	return !endedEarly(err)
}

func endedEarly(err error) bool {
	var synErr *parser.SyntaxError
	return errors.As(err, &synErr) && synErr.Found.Kind.IsEOF()
}

// eval runs one complete input. An expression prints its value; otherwise
// the input runs as statements and the last assigned value is printed.
func (s *session) eval(ctx context.Context, src string) {
	s.inputs++
	file := s.fs.Get(s.fs.AddVirtual(fmt.Sprintf("<repl:%d>", s.inputs), []byte(src)))
	lexed := driver.TokenizeFile(ctx, s.fs, file, s.opts)
	bag := lexed.Bag
	if lexed.Failed() {
		s.report(bag)
		return
	}

	var (
		v   interp.Value
		err error
	)
	if expr, exprErr := parser.ParseExpression(lexed.Tokens); exprErr == nil {
		v, err = interp.Eval(ctx, expr, s.m, interp.Options{EagerLogic: s.opts.EagerLogic})
	} else {
		stmts, parseErr := parser.ParseContext(ctx, lexed.Tokens)
		if parseErr != nil {
			bag.Add(diag.FromError(parseErr))
			s.report(bag)
			return
		}
		v, err = driver.Exec(ctx, stmts, s.m, s.opts)
	}
	if err != nil {
		bag.Add(diag.FromError(err))
		s.report(bag)
		return
	}
	if !v.IsNull() {
		fmt.Fprintln(s.out, v.Repr())
	}
}

func (s *session) report(bag *diag.Bag) {
	_ = s.g.reportDiagnostics(s.errOut, bag, s.fs)
}

// command runs a ":" command and reports whether the REPL should quit.
func (s *session) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprint(s.out, replHelp)
	case ":vars":
		for _, name := range s.m.Vars.Names() {
			v, _ := s.m.Vars.Get(name)
			fmt.Fprintf(s.out, "%s = %s\n", name, v.Repr())
		}
	case ":funcs":
		fmt.Fprintln(s.out, strings.Join(s.m.Funcs.Names(), " "))
	case ":reset":
		m, err := driver.NewMachine(s.opts)
		if err != nil {
			fmt.Fprintf(s.errOut, "reset failed: %v\n", err)
			return false
		}
		s.m = m
		fmt.Fprintln(s.out, "state cleared")
	default:
		fmt.Fprintf(s.errOut, "unknown command %s, try :help\n", fields[0])
	}
	return false
}

var replCommands = []string{":funcs", ":help", ":quit", ":reset", ":vars"}

// completions completes the word under the cursor against commands,
// variables, functions and the if/else words.
func (s *session) completions(line string) []string {
	if strings.HasPrefix(line, ":") {
		var out []string
		for _, c := range replCommands {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
		return out
	}
	start := len(line)
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	prefix := line[start:]
	if prefix == "" {
		return nil
	}
	candidates := append([]string{"if", "else"}, s.m.Funcs.Names()...)
	candidates = append(candidates, s.m.Vars.Names()...)
	var out []string
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) && !seen[c] {
			seen[c] = true
			out = append(out, line[:start]+c)
		}
	}
	return out
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
