package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/mindcmd/internal/app"
	"github.com/dshills/mindcmd/internal/dispatcher"
)

func (c *cli) execCmd() *cobra.Command {
	var (
		dryRun bool
		count  int
		show   bool
	)

	cmd := &cobra.Command{
		Use:   "exec <command-line>...",
		Short: "Execute one or more command lines",
		Long: `Executes each argument as a command line, in order, against a fresh outline.
Execution stops at the first failure.

Examples:
  mindcmd exec 'add "Groceries"' 'add Milk --child' show
  mindcmd exec --dry-run 'rename "Weekly plan"'
  mindcmd exec --count 3 down`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			opts := dispatcher.Options{DryRun: dryRun, Count: count}
			for _, line := range args {
				r := a.Execute(cmd.Context(), line, opts)
				if err := printResult(cmd.OutOrStdout(), c.jsonOut, line, r); err != nil {
					return err
				}
			}
			if show {
				printTree(cmd, a)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Validate without executing")
	cmd.Flags().IntVar(&count, "count", 0, "Numeric prefix passed to countable commands")
	cmd.Flags().BoolVar(&show, "show", false, "Print the outline afterwards")
	cmd.Flags().BoolVar(&c.jsonOut, "json", false, "Print results as JSON lines")
	return cmd
}

func (c *cli) keysCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "keys <sequence>...",
		Short: "Dispatch complete key sequences",
		Long: `Matches each argument as a whole key sequence and runs the bound command.
Sequences share dot-repeat state, so "." repeats an earlier argument.

Examples:
  mindcmd keys o o gg 2j dd . --show
  mindcmd keys 5m`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			for _, seq := range args {
				_, r := a.ExecuteKeys(cmd.Context(), seq)
				if err := printResult(cmd.OutOrStdout(), c.jsonOut, seq, r); err != nil {
					return err
				}
			}
			if show {
				printTree(cmd, a)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the outline afterwards")
	cmd.Flags().BoolVar(&c.jsonOut, "json", false, "Print results as JSON lines")
	return cmd
}

func printTree(cmd *cobra.Command, a *app.Application) {
	fmt.Fprint(cmd.OutOrStdout(), a.Tree().Render())
}
