// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/epilepsy/formatter"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

type fmtOptions struct {
	write      bool
	diff       bool
	list       bool
	indentSize int
	excludes   []string
}

// FmtCommand returns a command that formats source files.
func FmtCommand() *cobra.Command {
	var o fmtOptions
	cmd := &cobra.Command{
		Use:   "fmt [flags] [FILE ...]",
		Short: "Format source files",
		Long: `Format term source files.

Normalizes spacing and the indentation of continued lines, keeping the
line breaks and comments of the original.  The formatter is idempotent.

With no files, reads from stdin and writes to stdout.
With files, prints formatted output to stdout unless -w is given.

Modes:
  (default)   Print formatted code to stdout
  -w          Write result back to source file
  -d          Display a diff of changes
  -l          List files that would be changed`,
		Example: `  epilepsy fmt -w prog.ep
  epilepsy fmt -l src/...
  cat prog.ep | epilepsy fmt --indent-size 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := formatter.DefaultConfig()
			cfg.IndentSize = o.indentSize
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				return fmtStdin(cmd.InOrStdin(), out, cfg)
			}
			paths, err := expandArgs(args, o.excludes)
			if err != nil {
				return err
			}
			failed := false
			for _, path := range paths {
				changed, err := o.fmtFile(out, path, cfg)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed = true
				} else if o.list && changed {
					failed = true
				}
			}
			if failed {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&o.write, "write", "w", false, "Write result to (source) file instead of stdout.")
	cmd.Flags().BoolVarP(&o.diff, "diff", "d", false, "Display diffs instead of rewriting files.")
	cmd.Flags().BoolVarP(&o.list, "list", "l", false, "List files whose formatting differs and exit 1 if any.")
	cmd.Flags().IntVar(&o.indentSize, "indent-size", 2, "Number of spaces per indentation level.")
	cmd.Flags().StringSliceVar(&o.excludes, "exclude", nil, "Skip files and directories whose name matches a glob pattern.")
	return cmd
}

func init() {
	rootCmd.AddCommand(FmtCommand())
}

func fmtStdin(stdin io.Reader, stdout io.Writer, cfg *formatter.Config) error {
	src, err := io.ReadAll(stdin)
	if err != nil {
		return errors.Wrap(err, "reading stdin")
	}
	out, err := formatter.Format(src, cfg)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func (o *fmtOptions) fmtFile(w io.Writer, path string, cfg *formatter.Config) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "unable to read %s", path)
	}
	out, err := formatter.FormatFile(src, path, cfg)
	if err != nil {
		return false, err
	}
	changed := !bytes.Equal(src, out)

	switch {
	case o.list:
		if changed {
			fmt.Fprintln(w, path)
		}
		return changed, nil
	case o.diff:
		if changed {
			return changed, writeDiff(w, path, src, out)
		}
		return changed, nil
	case o.write:
		if !changed {
			return false, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, err
		}
		return true, os.WriteFile(path, out, info.Mode().Perm())
	}
	_, err = w.Write(out)
	return changed, err
}

func writeDiff(w io.Writer, path string, original, formatted []byte) error {
	return difflib.WriteUnifiedDiff(w, difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(formatted)),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
}
