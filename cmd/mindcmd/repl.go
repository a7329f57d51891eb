package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/app"
	"github.com/dshills/mindcmd/internal/dispatcher"
)

// keysPrefix marks a REPL line as a key sequence, e.g. "@3j".
const keysPrefix = "@"

func (c *cli) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive command prompt",
		Long: `Reads command lines with history and tab completion of command names
and --arguments. Lines starting with @ are key sequences (@3j, @dd, @.).

Type "quit" or "exit", or press Ctrl-D, to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(app.WithConfigWatch(c.configPathForWatch()))
			if err != nil {
				return err
			}
			defer a.Close()

			rl, err := readline.NewEx(&readline.Config{
				Prompt:            "mindcmd> ",
				HistoryFile:       filepath.Join(filepath.Dir(app.HistoryPath(c.cfg)), "repl_history"),
				HistoryLimit:      1000,
				AutoComplete:      &completer{reg: a.Registry()},
				InterruptPrompt:   "^C",
				EOFPrompt:         "exit",
				HistorySearchFold: true,
				Stdout:            cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline instance: %w", err)
			}
			defer func() {
				_ = rl.Close()
			}()

			for {
				line, err := rl.Readline()
				if err != nil {
					if errors.Is(err, readline.ErrInterrupt) {
						continue
					}
					if errors.Is(err, io.EOF) {
						return nil
					}
					return err
				}
				if quit := c.replLine(cmd, a, line); quit {
					return nil
				}
			}
		},
	}
}

// replLine runs one REPL line and reports whether the REPL should exit.
func (c *cli) replLine(cmd *cobra.Command, a *app.Application, line string) bool {
	line = strings.TrimSpace(line)
	out := cmd.OutOrStdout()

	switch line {
	case "":
		return false
	case "quit", "exit":
		return true
	}

	if seq, ok := strings.CutPrefix(line, keysPrefix); ok {
		_, r := a.ExecuteKeys(cmd.Context(), strings.TrimSpace(seq))
		fmt.Fprintln(out, textResult(r))
		return false
	}

	r := a.Execute(cmd.Context(), line, dispatcher.Options{})
	if dispatcher.IsUnknownCommand(r) {
		c.logger.Debug("unknown command in repl", zap.String("line", line))
	}
	fmt.Fprintln(out, textResult(r))
	return false
}
