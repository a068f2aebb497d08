// Copyright © 2021 The ELPS authors

package cmd

import (
	"fmt"
	"strings"

	"github.com/luthersystems/epilepsy/docs"
	"github.com/luthersystems/epilepsy/lang/langlib/libhelp"
	"github.com/spf13/cobra"
)

// DocCommand returns a command that shows operator documentation.
func DocCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var listAll bool
	var missing bool
	var guide bool
	cmd := &cobra.Command{
		Use:   "doc [flags] [NAME ...]",
		Short: "Show documentation for operators",
		Long: `Show the signature and documentation of registered operators.

Overloaded operators list the signature of every arity they accept.`,
		Example: `  epilepsy doc match              Show docs for the match operator
  epilepsy doc add inc            Show docs for several operators
  epilepsy doc -l                 Show docs for every operator
  epilepsy doc --missing          List operators without documentation
  epilepsy doc --guide            Show the language reference`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := cfg.registry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case guide:
				_, err := fmt.Fprint(out, docs.LangGuide)
				return err
			case missing:
				names := libhelp.CheckMissing(reg)
				if len(names) == 0 {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "missing documentation: %s\n", strings.Join(names, ", "))
				return &exitError{code: 1}
			case listAll:
				return libhelp.RenderAll(out, reg)
			case len(args) == 0:
				return cmd.Help()
			}
			for i, name := range args {
				if i > 0 {
					fmt.Fprintln(out)
				}
				err := libhelp.RenderOperator(out, reg, name)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&listAll, "list", "l", false, "Show documentation for every operator.")
	cmd.Flags().BoolVar(&missing, "missing", false, "List operators without documentation and exit 1 if any.")
	cmd.Flags().BoolVar(&guide, "guide", false, "Show the language reference.")
	return cmd
}

func init() {
	rootCmd.AddCommand(DocCommand())
}
