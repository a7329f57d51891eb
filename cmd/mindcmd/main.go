// Command mindcmd drives the command and modal-editing engine from the
// terminal: one-shot command lines and key sequences, an interactive REPL
// and a full-screen modal session.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/app"
	"github.com/dshills/mindcmd/internal/config"
	"github.com/dshills/mindcmd/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// errCommandFailed is returned after a failed result has been printed.
var errCommandFailed = errors.New("command failed")

// cli holds the global flags and what PersistentPreRunE builds from them.
type cli struct {
	configPath string
	logLevel   string
	verbose    bool
	jsonOut    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "mindcmd",
		Short: "Command and modal-editing engine for outlines",
		Long: `mindcmd parses text commands and vim-style key sequences and dispatches
them against an in-memory outline.

Command lines look like: add "Buy milk" --child
Key sequences look like: 3j, dd, gg, yap, 5m, .

Run "mindcmd modal" for a full-screen session or "mindcmd repl" for a
line-oriented one.`,
		Version:           version + " (" + commit + ")",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to config file (default: "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		c.execCmd(),
		c.keysCmd(),
		c.replCmd(),
		c.modalCmd(),
		c.commandsCmd(),
		c.historyCmd(),
	)
	root.SetHelpCommand(c.helpCmd(root))
	return root
}

// setup loads the configuration and builds the logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	opts := logging.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
	}
	if c.logLevel != "" {
		opts.Level = c.logLevel
	}
	if c.verbose {
		opts.Level = "debug"
	}

	c.logger, err = logging.New(opts)
	return err
}

// newApp builds the application from the loaded configuration.
func (c *cli) newApp(opts ...app.Option) (*app.Application, error) {
	return app.New(c.cfg, c.logger, opts...)
}

// configPathForWatch returns the config file to watch, if one exists.
func (c *cli) configPathForWatch() string {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
