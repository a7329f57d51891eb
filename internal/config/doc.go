// Package config loads mindcmd settings from a TOML or YAML file, applies
// MINDCMD_* environment overrides and watches the file for changes.
//
// A minimal configuration:
//
//	[log]
//	level = "debug"
//
//	[dispatcher]
//	max_count = 500
//
//	[keys]
//	"J"  = "down"
//	"gd" = "delete"
//	"x"  = ""          # unbind
//
//	[aliases]
//	dl = "delete-line"
//
// Missing sections keep their defaults.
package config
