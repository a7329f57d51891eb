package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/mindcmd/internal/command"
	"github.com/dshills/mindcmd/internal/registry"
)

func (c *cli) commandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands [query]",
		Short: "List registered commands",
		Long: `Lists every command grouped by category. With a query, lists the commands
that match it by prefix, substring, edit distance or fuzzy match, best first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			reg := a.Registry()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				names := reg.Search(args[0])
				if len(names) == 0 {
					fmt.Fprintf(out, "No commands match %q\n", args[0])
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(out, commandLine(reg.Get(name), 0))
				}
				return nil
			}

			fmt.Fprint(out, listing(reg))
			return nil
		},
	}
}

// listing renders every command grouped by category.
func listing(reg *registry.Registry) string {
	var sb strings.Builder
	for _, cat := range reg.Categories() {
		title := cat
		if title == "" {
			title = "General"
		}
		sb.WriteString(categoryStyle.Render(title) + "\n")

		cmds := reg.ByCategory(cat)
		width := 0
		for _, cmd := range cmds {
			width = max(width, len(cmd.Name))
		}
		for _, cmd := range cmds {
			sb.WriteString("  " + commandLine(cmd, width) + "\n")
		}
	}
	return sb.String()
}

func commandLine(cmd *command.Command, width int) string {
	line := nameStyle.Render(fmt.Sprintf("%-*s", width, cmd.Name))
	if cmd.Description != "" {
		line += "  " + descStyle.Render(cmd.Description)
	}
	if len(cmd.Aliases) > 0 {
		line += " " + aliasStyle.Render("("+strings.Join(cmd.Aliases, ", ")+")")
	}
	return line
}

// helpCmd replaces cobra's help command. Names of CLI subcommands show the
// usual usage text; anything else is looked up in the command registry.
func (c *cli) helpCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show help for a CLI subcommand or an engine command",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if sub, _, err := root.Find(args); err == nil && sub != root {
					return sub.Help()
				}
			}

			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if err := root.Help(); err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, headerStyle.Render("Engine commands"))
				fmt.Fprint(out, listing(a.Registry()))
				return nil
			}

			text, err := a.Registry().Help(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), failStyle.Render(err.Error()))
				return errCommandFailed
			}
			fmt.Fprint(out, text)
			return nil
		},
	}
}
