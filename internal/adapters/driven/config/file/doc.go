// Package file provides the TOML-based configuration store and its change
// watcher. Configuration keys of interest to the annotation subsystem:
//
//   - annotations.save_timeout_seconds: persistence deadline for saves
//   - tools.highlight.color: default highlight fill
//   - tools.screenshot.min_selection: drag noise threshold in pixels
//
// The watcher reloads the store when the file changes on disk, so edits
// made while the application is running take effect without a restart.
package file
