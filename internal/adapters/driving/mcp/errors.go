// Package mcp provides an MCP (Model Context Protocol) server adapter for
// pagemark. It lets AI assistants browse and manage the annotation
// collection of the current document workspace.
package mcp

import "errors"

// ErrMissingDirectory is returned when the annotation directory is not provided.
var ErrMissingDirectory = errors.New("mcp: annotation directory is required")
