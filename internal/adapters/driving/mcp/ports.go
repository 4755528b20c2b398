package mcp

import (
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Directory is the read/delete surface over the annotation collection.
	// Deletions flow through request events and settle asynchronously.
	Directory driving.AnnotationDirectory
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Directory == nil {
		return ErrMissingDirectory
	}
	return nil
}
