package main

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#E53935")

	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	aliasStyle    = lipgloss.NewStyle().Foreground(muted)
	descStyle     = lipgloss.NewStyle().Foreground(muted)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)
