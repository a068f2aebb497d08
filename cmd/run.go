// Copyright © 2018 The ELPS authors

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sync/atomic"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/x/profiler"
	"github.com/luthersystems/epilepsy/parser"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// sourceFile is a named program.
type sourceFile struct {
	name string
	text []byte
}

// fileResult is the outcome of evaluating one sourceFile.  Output is buffered
// so files evaluated concurrently print in argument order.
type fileResult struct {
	out bytes.Buffer
	err error
}

type runOptions struct {
	expr       string
	print      bool
	jobs       int
	keepGoing  bool
	cpuProfile string
	trace      bool
}

// RunCommand returns a command that evaluates files.
func RunCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run [flags] [FILE ...]",
		Short: "Evaluate the terms of files",
		Long: `Evaluate every term of each file in order.  Evaluation of a file stops at
its first error.  Errors are reported with their source location and the
operators being invoked.`,
		Example: `  epilepsy run prog.ep
  epilepsy run -p -e 'match(left(5), v(v(left inc) v(right dec)))'
  epilepsy run --jobs 4 --keep-going tests/...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := o.sources(args)
			if err != nil {
				return err
			}
			reg, err := cfg.registry()
			if err != nil {
				return err
			}
			config, err := evalConfig()
			if err != nil {
				return err
			}
			return o.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), reg, config, sources)
		},
	}
	cmd.Flags().StringVarP(&o.expr, "expression", "e", "", "Evaluate an expression in place of files.")
	cmd.Flags().BoolVarP(&o.print, "print", "p", false, "Print the value of each term.")
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", 1, "Number of files evaluated concurrently.")
	cmd.Flags().BoolVarP(&o.keepGoing, "keep-going", "k", false, "Continue with remaining files after an error.")
	cmd.Flags().StringVar(&o.cpuProfile, "cpuprofile", "", "Write a CPU profile labeled by operator to a file.")
	cmd.Flags().BoolVar(&o.trace, "trace", false, "Print a summary of operator invocations after evaluation.")
	return cmd
}

func init() {
	rootCmd.AddCommand(RunCommand())
}

func (o *runOptions) sources(args []string) ([]*sourceFile, error) {
	if o.expr != "" {
		if len(args) > 0 {
			return nil, errors.New("files may not be given with --expression")
		}
		return []*sourceFile{{name: "expression", text: []byte(o.expr)}}, nil
	}
	if len(args) == 0 {
		return nil, errors.New("no files given")
	}
	paths, err := expandArgs(args, nil)
	if err != nil {
		return nil, err
	}
	sources := make([]*sourceFile, len(paths))
	for i, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read %s", path)
		}
		sources[i] = &sourceFile{name: path, text: text}
	}
	return sources, nil
}

func (o *runOptions) run(stdout, stderr io.Writer, reg *lang.Registry, config []lang.Config, sources []*sourceFile) error {
	if o.jobs < 1 {
		return fmt.Errorf("invalid number of jobs: %d", o.jobs)
	}
	var annotators []lang.Profiler
	if o.cpuProfile != "" {
		f, err := os.Create(o.cpuProfile)
		if err != nil {
			return errors.Wrap(err, "unable to create profile")
		}
		defer f.Close()
		err = pprof.StartCPUProfile(f)
		if err != nil {
			return errors.Wrap(err, "unable to start profile")
		}
		defer pprof.StopCPUProfile()
		annotators = append(annotators, profiler.NewPprofAnnotator(profiler.WithSkipSpecial()))
	}
	if o.trace {
		tr := newTraceRecorder()
		defer tr.shutdown()
		defer tr.summarize(stderr)
		annotators = append(annotators, profiler.NewOpenTelemetryAnnotator())
	}
	switch len(annotators) {
	case 0:
	case 1:
		config = append(config, lang.WithProfiler(annotators[0]))
	default:
		config = append(config, lang.WithProfiler(profilers(annotators)))
	}
	ev, err := lang.NewEvaluator(reg, config...)
	if err != nil {
		return err
	}

	results := o.evalAll(ev, sources)

	texts := make(map[string][]byte, len(sources))
	for _, src := range sources {
		texts[src.name] = src.text
	}
	renderer := newRenderer(texts)
	var errs error
	for _, res := range results {
		if _, err := res.out.WriteTo(stdout); err != nil {
			return err
		}
		if res.err == nil {
			continue
		}
		errs = multierr.Append(errs, res.err)
		if err := renderer.RenderError(stderr, res.err); err != nil {
			return err
		}
		if !o.keepGoing {
			break
		}
	}
	if errs != nil {
		if n := len(multierr.Errors(errs)); n > 1 {
			fmt.Fprintf(stderr, "%d of %d files failed\n", n, len(sources))
		}
		return &exitError{code: 1}
	}
	return nil
}

// evalAll evaluates sources with up to o.jobs goroutines.  Without
// keep-going, files not yet started when one fails are skipped.  Files
// already running are left to finish so the failure reported is the first
// real one.
func (o *runOptions) evalAll(ev *lang.Evaluator, sources []*sourceFile) []*fileResult {
	var failed atomic.Bool
	results := make([]*fileResult, len(sources))
	it := iter.Iterator[*sourceFile]{MaxGoroutines: o.jobs}
	it.ForEachIdx(sources, func(i int, src **sourceFile) {
		res := &fileResult{}
		results[i] = res
		if !o.keepGoing && failed.Load() {
			return
		}
		res.err = o.evalFile(context.Background(), ev, *src, &res.out)
		if res.err != nil {
			failed.Store(true)
		}
	})
	return results
}

func (o *runOptions) evalFile(ctx context.Context, ev *lang.Evaluator, src *sourceFile, w io.Writer) error {
	terms, err := parser.Parse(src.name, src.text)
	if err != nil {
		return err
	}
	for _, t := range terms {
		v, err := ev.EvalContext(ctx, t)
		if err != nil {
			return err
		}
		if o.print {
			fmt.Fprintln(w, v)
		}
	}
	return nil
}

// profilers starts every profiler in order for each invocation.
type profilers []lang.Profiler

func (ps profilers) Start(ctx context.Context, op *lang.Operator, call *lang.Term) (context.Context, func()) {
	ends := make([]func(), len(ps))
	for i, p := range ps {
		ctx, ends[i] = p.Start(ctx, op, call)
	}
	return ctx, func() {
		for i := len(ends) - 1; i >= 0; i-- {
			ends[i]()
		}
	}
}
