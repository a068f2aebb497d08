// Copyright © 2018 The ELPS authors

// Package repl implements an interactive read-eval-print loop for terms.
package repl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/epilepsy/diagnostic"
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib"
	"github.com/luthersystems/epilepsy/lang/langlib/libhelp"
	"github.com/luthersystems/epilepsy/parser"
)

// sourceName is the file name recorded in the location of terms read by
// the repl.
const sourceName = "stdin"

type config struct {
	stdin       io.ReadCloser
	stderr      io.WriteCloser
	registry    *lang.Registry
	evalConfig  []lang.Config
	color       diagnostic.ColorMode
	historyFile string
}

func newConfig(opts ...Option) *config {
	config := &config{historyFile: historyPath()}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures a repl.
type Option func(*config)

// WithStdin overrides the input to the repl.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr overrides the output of the repl.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithRegistry evaluates input against reg instead of the standard library.
func WithRegistry(reg *lang.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithEvalConfig passes config to the evaluator.
func WithEvalConfig(cfgs ...lang.Config) Option {
	return func(c *config) {
		c.evalConfig = append(c.evalConfig, cfgs...)
	}
}

// WithColor sets the color mode of rendered errors.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithHistoryFile sets the file that input history is saved to.  An empty
// path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// RunRepl runs a repl over the standard library, or the registry given with
// WithRegistry, until its input is exhausted.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	reg := cfg.registry
	if reg == nil {
		var err error
		reg, err = langlib.NewRegistry()
		if err != nil {
			return fmt.Errorf("standard library initialization failure: %w", err)
		}
	}
	ev, err := lang.NewEvaluator(reg, cfg.evalConfig...)
	if err != nil {
		return err
	}
	return RunEvaluator(ev, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunEvaluator runs a repl which evaluates input with ev.  The cont prompt
// is shown while an expression spans multiple lines.
func RunEvaluator(ev *lang.Evaluator, prompt, cont string, opts ...Option) error {
	cfg := newConfig(opts...)
	var out io.Writer = os.Stderr
	if cfg.stderr != nil {
		out = cfg.stderr
	}

	ensureHistoryFilePermissions(cfg.historyFile)
	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       cfg.historyFile,
		HistorySearchFold: true,
		AutoComplete:      &operatorCompleter{reg: ev.Registry},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	s := &session{
		ev:       ev,
		out:      out,
		renderer: &diagnostic.Renderer{Color: cfg.color},
	}
	var buf bytes.Buffer
	for {
		if buf.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			buf.Reset()
			continue
		}
		if err != nil {
			if buf.Len() > 0 {
				s.evalSource(buf.Bytes())
			}
			return nil
		}
		if buf.Len() == 0 {
			trimmed := strings.TrimSpace(string(line))
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ":") {
				if s.command(trimmed) {
					return nil
				}
				continue
			}
		}
		buf.Write(line)
		buf.WriteByte('\n')
		if parser.Incomplete(buf.Bytes()) {
			continue
		}
		s.evalSource(buf.Bytes())
		buf.Reset()
	}
}

// session evaluates input for one repl.
type session struct {
	ev       *lang.Evaluator
	out      io.Writer
	renderer *diagnostic.Renderer
}

// evalSource parses source and prints the result of each term in it.
func (s *session) evalSource(source []byte) {
	terms, err := parser.Parse(sourceName, source)
	s.renderer.SourceReader = diagnostic.MapSource(map[string][]byte{sourceName: source})
	for _, t := range terms {
		v, err := s.ev.EvalContext(context.Background(), t)
		if err != nil {
			s.renderError(err)
			continue
		}
		fmt.Fprintln(s.out, v) //nolint:errcheck // best-effort repl output
	}
	if err != nil {
		s.renderError(err)
	}
}

func (s *session) renderError(err error) {
	d := diagnostic.FromError(err)
	d.Notes = append(d.Notes, "use :help to list operators or :help NAME to describe one")
	_ = s.renderer.Render(s.out, d)
}

// command runs a repl command and returns true if the repl should exit.
//
//	:help        list operators
//	:help NAME   describe operator NAME
//	:quit        exit
func (s *session) command(line string) bool {
	fields := strings.Fields(line)
	reg := s.ev.Registry
	switch {
	case fields[0] == ":quit" || fields[0] == ":q":
		return true
	case fields[0] == ":help" && len(fields) == 1:
		fmt.Fprintln(s.out, strings.Join(reg.Names(), " ")) //nolint:errcheck // best-effort repl output
	case fields[0] == ":help":
		for _, name := range fields[1:] {
			text, err := libhelp.Describe(reg, name)
			if err != nil {
				s.renderError(err)
				continue
			}
			fmt.Fprint(s.out, text) //nolint:errcheck // best-effort repl output
		}
	default:
		fmt.Fprintf(s.out, "unknown command: %s\n", fields[0]) //nolint:errcheck // best-effort repl output
	}
	return false
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".epilepsy_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to the current user.  Input may contain secrets.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // path is the user's history file
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
