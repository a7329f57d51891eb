package registry

import (
	"fmt"
	"strings"

	"github.com/dshills/mindcmd/internal/command"
)

// Help returns help text for one command, or an overview of every command
// grouped by category when name is empty.
func (r *Registry) Help(name string) (string, error) {
	if name == "" {
		return r.overview(), nil
	}

	cmd := r.Get(name)
	if cmd == nil {
		if s := r.Search(name); len(s) > 0 {
			return "", fmt.Errorf("%w: %s (did you mean %s?)", ErrNotFound, name, strings.Join(s[:min(3, len(s))], ", "))
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return CommandHelp(cmd), nil
}

// CommandHelp formats the help text of a single command.
func CommandHelp(cmd *command.Command) string {
	var sb strings.Builder

	sb.WriteString(cmd.Name)
	if len(cmd.Aliases) > 0 {
		sb.WriteString(" (aliases: " + strings.Join(cmd.Aliases, ", ") + ")")
	}
	sb.WriteString("\n")
	if cmd.Description != "" {
		sb.WriteString("  " + cmd.Description + "\n")
	}
	sb.WriteString("  Usage: " + cmd.Usage() + "\n")
	if cmd.Category != "" {
		sb.WriteString("  Category: " + cmd.Category + "\n")
	}

	var traits []string
	if cmd.Countable {
		traits = append(traits, "accepts a count")
	}
	if cmd.Repeatable {
		traits = append(traits, "repeatable with .")
	}
	if len(traits) > 0 {
		sb.WriteString("  " + strings.Join(traits, ", ") + "\n")
	}

	if len(cmd.Args) > 0 {
		sb.WriteString("  Arguments:\n")
		for _, a := range cmd.Args {
			line := fmt.Sprintf("    --%s <%s>", a.Name, a.Type)
			if a.Required && !a.HasDefault() {
				line += " (required)"
			}
			if a.HasDefault() {
				line += fmt.Sprintf(" (default: %v)", a.Default)
			}
			if a.Description != "" {
				line += "  " + a.Description
			}
			sb.WriteString(line + "\n")
		}
	}

	if len(cmd.Examples) > 0 {
		sb.WriteString("  Examples:\n")
		for _, ex := range cmd.Examples {
			sb.WriteString("    " + ex + "\n")
		}
	}

	return sb.String()
}

// overview lists all commands grouped by category.
func (r *Registry) overview() string {
	var sb strings.Builder

	for _, cat := range r.Categories() {
		title := cat
		if title == "" {
			title = "General"
		}
		sb.WriteString(title + ":\n")

		cmds := r.ByCategory(cat)
		width := 0
		for _, cmd := range cmds {
			width = max(width, len(cmd.Name))
		}
		for _, cmd := range cmds {
			fmt.Fprintf(&sb, "  %-*s  %s\n", width, cmd.Name, cmd.Description)
		}
	}

	return sb.String()
}
