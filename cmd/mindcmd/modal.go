package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/app"
	"github.com/dshills/mindcmd/internal/tui"
)

func (c *cli) modalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modal",
		Short: "Full-screen modal editing session",
		Long: `Opens the outline full screen. Keys are matched as vim-style sequences
(j, k, gg, G, 3j, dd, yy, p, >>, <<, 5m, .). Press : to type a command
line, Esc to cancel a pending sequence, Ctrl-C or Ctrl-Q to quit.

Logging to the terminal is disabled while the session runs; set log.file
in the config to keep logs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Log.File == "" {
				c.logger = zap.NewNop()
			}

			a, err := c.newApp(app.WithConfigWatch(c.configPathForWatch()))
			if err != nil {
				return err
			}
			defer a.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize terminal: %w", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			// PollEvent blocks; finalizing the screen unblocks it.
			go func() {
				<-ctx.Done()
				screen.Fini()
			}()

			err = tui.New(screen, a.Dispatcher(), a.Tree()).Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
