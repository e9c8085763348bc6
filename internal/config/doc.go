// Package config loads cursorkit settings.
//
// Settings come from three layers, later ones winning:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← CURSORKIT_LOG_LEVEL, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← cursorkit.toml / cursorkit.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	log_level = "info"
//	visible_lines = [0, 40]
//	scripts = ["chains.lua"]
//
//	[chains]
//	args_then_jump = [["cursors_from_comma_list"], ["ace_jump_word", {}]]
//
// Every chain is parsed when the file loads, so a malformed chain fails
// the load instead of failing later halfway through a run.
//
// # Sub-packages
//
//   - loader: TOML and YAML files with includes, and environment variables
package config
