package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/command"
)

// CategorySystem groups the commands that act on the application itself.
const CategorySystem = "System"

// SourceApp is the registration source of the application commands.
const SourceApp = "app"

// topCommands is how many commands the stats report lists.
const topCommands = 5

// systemCommands returns the commands that inspect or reconfigure the
// running application rather than the outline. They are registered before
// any script so a script cannot take their names.
func (app *Application) systemCommands() []*command.Command {
	cmds := []*command.Command{
		{
			Name:        "stats",
			Description: "Show dispatch counts for this session",
			Category:    CategorySystem,
			Examples:    []string{"stats"},
			Execute:     app.stats,
		},
	}
	if app.config.Plugins.Enabled {
		cmds = append(cmds, &command.Command{
			Name:        "reload-plugins",
			Description: "Reload Lua scripts from the plugin directory",
			Category:    CategorySystem,
			Examples:    []string{"reload-plugins"},
			Execute:     app.reloadPlugins,
		})
	}
	for _, c := range cmds {
		c.Source = SourceApp
	}
	return cmds
}

func (app *Application) stats(_ context.Context, _ *command.Invocation) (command.Result, error) {
	m := app.dispatcher.Metrics()
	if m == nil {
		return command.Failure("Metrics are disabled; set [dispatcher] metrics = true"), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d dispatched, %d failed, %d panicked", m.TotalDispatches(), m.TotalErrors(), m.TotalPanics())
	top := m.TopCommands(topCommands)
	for _, cm := range top {
		fmt.Fprintf(&sb, "\n  %-16s %4d runs  %5.1f%% failed  mean %s", cm.Name, cm.Runs, cm.ErrorRate(), cm.Mean())
	}
	return command.SuccessWithMessage(sb.String()).WithData(top), nil
}

func (app *Application) reloadPlugins(ctx context.Context, _ *command.Invocation) (command.Result, error) {
	dir := PluginDir(app.Config())
	loaded, removed, err := app.plugins.Sync(ctx, dir)
	// Config aliases may point at script commands that were just re-registered.
	app.applyAliases(app.Config().Aliases)
	if err != nil {
		app.logger.Warn("plugin reload incomplete", zap.String("dir", dir), zap.Error(err))
		return command.Failure(fmt.Sprintf("Reloaded %d commands with errors: %v", loaded, err)), nil
	}
	return command.Successf("Reloaded %d commands, removed %d scripts", loaded, removed), nil
}

// logMetrics writes the session's dispatch totals when metrics are on.
func (app *Application) logMetrics() {
	if app.dispatcher == nil || app.dispatcher.Metrics() == nil {
		return
	}
	m := app.dispatcher.Metrics()
	top := m.TopCommands(topCommands)
	names := make([]string, len(top))
	for i, cm := range top {
		names[i] = fmt.Sprintf("%s=%d", cm.Name, cm.Runs)
	}
	app.logger.Info("dispatch metrics",
		zap.Uint64("dispatches", m.TotalDispatches()),
		zap.Uint64("errors", m.TotalErrors()),
		zap.Uint64("panics", m.TotalPanics()),
		zap.Duration("elapsed", m.Elapsed()),
		zap.Strings("top", names),
	)
}
