// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"

	"github.com/luthersystems/epilepsy/lsp"
	"github.com/spf13/cobra"
)

// LSPCommand returns a command that runs the language server.
func LSPCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var port int
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start a Language Server Protocol server for editors.

The server reports parse errors and lint findings as diagnostics and
provides hover documentation, completion of operator names, signature
help, document symbols and references.

By default the server communicates over stdin/stdout.  Use --port to
listen on a TCP port instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := cfg.registry()
			if err != nil {
				return err
			}
			srv, err := lsp.New(lsp.WithRegistry(reg))
			if err != nil {
				return err
			}
			if port > 0 {
				return srv.RunTCP(fmt.Sprintf("127.0.0.1:%d", port))
			}
			return srv.RunStdio()
		},
	}
	cmd.Flags().Bool("stdio", true, "Use stdin/stdout for communication (default).")
	cmd.Flags().IntVar(&port, "port", 0, "Listen on a TCP port instead of stdin/stdout.")
	return cmd
}

func init() {
	rootCmd.AddCommand(LSPCommand())
}
