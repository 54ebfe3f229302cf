// Package config holds editor options and loads them from files.
//
// Options is the live option bag an editor reads on every interaction. It
// changes only through Apply, which merges a Patch: every non-nil Patch
// field replaces the matching option, and nested groups such as AutoClose
// and Debounce are replaced whole.
//
// Files in TOML, YAML or JSON decode into the same Patch, chosen by file
// extension:
//
//	tab = "  "
//	indent_on = '[({\[]$'
//	read_only = false
//
//	[debounce]
//	highlight_ms = 150
//
// A Watcher re-reads a file when it changes on disk and hands the new
// Patch to a callback after a short quiet period.
package config
