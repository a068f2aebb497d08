// Copyright © 2018 The ELPS authors

package cmd

import (
	"github.com/luthersystems/epilepsy/repl"
	"github.com/spf13/cobra"
)

// ReplCommand returns a command that starts an interactive session.
func ReplCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var prompt string
	var noHistory bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session which evaluates each term as it is entered.
An expression may span lines until its parentheses are balanced.

Commands:
  :help          List operators
  :help NAME     Describe an operator
  :quit          End the session`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := cfg.registry()
			if err != nil {
				return err
			}
			config, err := evalConfig()
			if err != nil {
				return err
			}
			ropts := []repl.Option{
				repl.WithRegistry(reg),
				repl.WithEvalConfig(config...),
				repl.WithColor(colorMode()),
			}
			if noHistory {
				ropts = append(ropts, repl.WithHistoryFile(""))
			}
			return repl.RunRepl(prompt, ropts...)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "> ", "Prompt shown before each expression.")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not read or save input history.")
	return cmd
}

func init() {
	rootCmd.AddCommand(ReplCommand())
}
