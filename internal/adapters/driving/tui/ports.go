// Package tui provides the interactive terminal shell for pagemark.
// It implements a driving adapter following hexagonal architecture
// principles: all annotation behavior is reached through the event bus and
// the driving ports, never by touching tools or stores directly.
package tui

import (
	"errors"

	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
	"github.com/pagemark-labs/pagemark/internal/sidebar"
)

// Ports aggregates everything the shell needs. This provides a single
// injection point for dependency injection.
type Ports struct {
	// Bus is the shared event bus. The shell bridges terminal input onto
	// it and mirrors its events into Bubbletea messages.
	Bus driven.Bus

	// Toolbar coordinates tool registration and mutual exclusion.
	Toolbar driving.ToolbarService

	// Directory answers annotation queries for the viewer area.
	Directory driving.AnnotationDirectory

	// Panel is the annotations sidebar panel.
	Panel *sidebar.Panel

	// Surface is the render surface the viewer area displays.
	Surface driven.RenderSurface

	// Logger receives shell diagnostics.
	Logger driven.Logger
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return errors.New("nil ports")
	}
	if p.Bus == nil {
		return errors.New("missing bus")
	}
	if p.Toolbar == nil {
		return errors.New("missing toolbar service")
	}
	if p.Directory == nil {
		return errors.New("missing annotation directory")
	}
	if p.Panel == nil {
		return errors.New("missing sidebar panel")
	}
	if p.Surface == nil {
		return errors.New("missing render surface")
	}
	if p.Logger == nil {
		return errors.New("missing logger")
	}
	return nil
}
