// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	lintpkg "github.com/luthersystems/epilepsy/lint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type lintOptions struct {
	json     bool
	checks   string
	list     bool
	excludes []string
}

// LintCommand returns a command that runs static checks over files.
func LintCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var o lintOptions
	cmd := &cobra.Command{
		Use:   "lint [flags] [FILE ...]",
		Short: "Check files for common mistakes",
		Long: `Check files for problems that evaluation would report, without evaluating
them.  Source is read from stdin when no files are given.

A finding is suppressed by a "; nolint" comment on its line.  Use
"; nolint:NAME,NAME" to suppress only the named checks.

Exit status is 0 when no findings are reported, 1 when findings are
reported and 2 when a file cannot be read or parsed.`,
		Example: `  epilepsy lint prog.ep
  epilepsy lint --checks unknown-operator,operator-arity src/...
  epilepsy lint --json --exclude 'vendor' ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.list {
				fmt.Fprint(cmd.OutOrStdout(), lintpkg.AnalyzerDoc())
				return nil
			}
			analyzers, err := selectAnalyzers(o.checks)
			if err != nil {
				return err
			}
			reg, err := cfg.registry()
			if err != nil {
				return err
			}
			linter := &lintpkg.Linter{Analyzers: analyzers, Registry: reg}
			sources, err := lintSources(cmd.InOrStdin(), args, o.excludes)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return &exitError{code: 2}
			}
			return o.lint(cmd.OutOrStdout(), cmd.ErrOrStderr(), linter, sources)
		},
	}
	cmd.Flags().BoolVar(&o.json, "json", false, "Output diagnostics as JSON.")
	cmd.Flags().StringVar(&o.checks, "checks", "", "Comma separated analyzers to run (default all).")
	cmd.Flags().BoolVar(&o.list, "list", false, "List available analyzers.")
	cmd.Flags().StringSliceVar(&o.excludes, "exclude", nil, "Skip files and directories whose name matches a glob pattern.")
	return cmd
}

func init() {
	rootCmd.AddCommand(LintCommand())
}

func selectAnalyzers(checks string) ([]*lintpkg.Analyzer, error) {
	all := lintpkg.DefaultAnalyzers()
	if checks == "" {
		return all, nil
	}
	byName := make(map[string]*lintpkg.Analyzer, len(all))
	for _, a := range all {
		byName[a.Name] = a
	}
	var selected []*lintpkg.Analyzer
	for _, name := range strings.Split(checks, ",") {
		name = strings.TrimSpace(name)
		a, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown analyzer: %s (available: %s)", name, strings.Join(lintpkg.AnalyzerNames(), ", "))
		}
		selected = append(selected, a)
	}
	return selected, nil
}

func lintSources(stdin io.Reader, args []string, excludes []string) ([]*sourceFile, error) {
	if len(args) == 0 {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read stdin")
		}
		return []*sourceFile{{name: "<stdin>", text: text}}, nil
	}
	paths, err := expandArgs(args, excludes)
	if err != nil {
		return nil, err
	}
	var sources []*sourceFile
	var errs error
	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "unable to read %s", path))
			continue
		}
		sources = append(sources, &sourceFile{name: path, text: text})
	}
	return sources, errs
}

func (o *lintOptions) lint(stdout, stderr io.Writer, linter *lintpkg.Linter, sources []*sourceFile) error {
	var all []lintpkg.Diagnostic
	texts := make(map[string][]byte, len(sources))
	for _, src := range sources {
		texts[src.name] = src.text
	}
	renderer := newRenderer(texts)
	failed := false
	for _, src := range sources {
		diags, err := linter.LintFile(src.text, src.name)
		if err != nil {
			if err := renderer.RenderError(stderr, err); err != nil {
				return err
			}
			failed = true
			continue
		}
		all = append(all, diags...)
	}
	var err error
	if o.json {
		err = lintpkg.FormatJSON(stdout, all)
	} else {
		err = renderLintDiagnostics(stdout, renderer, all)
	}
	if err != nil {
		return err
	}
	switch {
	case failed:
		return &exitError{code: 2}
	case len(all) > 0:
		return &exitError{code: 1}
	}
	return nil
}
