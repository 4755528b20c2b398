package services

import (
	"fmt"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

// Ensure Toolbar implements the interface.
var _ driving.ToolbarService = (*Toolbar)(nil)

// Toolbar coordinates tool activation: at most one tool is Active at any
// time. The transition is two sequential steps - the previously active
// tool deactivates fully, including cursor and listener teardown, before
// the requested tool activates - so observers may transiently see no tool
// active.
type Toolbar struct {
	bus driven.Bus
	log driven.Logger

	order  []string
	tools  map[string]driving.Tool
	panels map[string]string
	active string
	unsubs []func()
}

// NewToolbar creates the activation coordinator and subscribes it to
// activation requests, the global Escape key and sidebar panel closes.
func NewToolbar(b driven.Bus, log driven.Logger) *Toolbar {
	t := &Toolbar{
		bus:    b,
		log:    log,
		tools:  make(map[string]driving.Tool),
		panels: make(map[string]string),
	}
	t.unsubs = append(t.unsubs,
		b.Subscribe(domain.EventToolActivateRequested, t.onActivateRequested),
		b.Subscribe(domain.EventToolDeactivateRequested, t.onDeactivateRequested),
		b.Subscribe(domain.EventSidebarPanelClosed, t.onPanelClosed),
		b.Subscribe(domain.EventKeyPressed, t.onKeyPressed),
	)
	return t
}

// Register adds a tool to the toolbar. All annotation tools are hosted by
// the annotation sidebar panel unless overridden with SetPanel.
func (t *Toolbar) Register(tool driving.Tool) error {
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("%w: tool with empty name", domain.ErrValidation)
	}
	if _, exists := t.tools[name]; exists {
		return fmt.Errorf("%w: tool %q", domain.ErrAlreadyExists, name)
	}
	t.tools[name] = tool
	t.order = append(t.order, name)
	t.panels[name] = domain.PanelAnnotations
	return nil
}

// SetPanel overrides the sidebar panel hosting a tool.
func (t *Toolbar) SetPanel(toolName, panelID string) {
	t.panels[toolName] = panelID
}

// Activate activates the named tool. Activating the active tool toggles
// it off.
func (t *Toolbar) Activate(name string) error {
	tool, ok := t.tools[name]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrToolUnknown, name)
	}

	if t.active == name {
		t.DeactivateActive()
		return nil
	}

	// Step one: the previous tool deactivates completely.
	t.DeactivateActive()

	// Step two: the requested tool activates. A degraded tool refuses and
	// stays an inert button; the toolbar must not report it active or
	// broadcast an activated event.
	tool.Activate()
	if !tool.IsActive() {
		return fmt.Errorf("%w: tool %q did not activate", domain.ErrDependencyUnavailable, name)
	}
	t.active = name
	t.log.Debug("tool %s activated", name)
	t.bus.Emit(domain.EventToolActivated, domain.ToolEvent{ToolName: name})
	return nil
}

// DeactivateActive deactivates whichever tool is active, if any.
func (t *Toolbar) DeactivateActive() {
	if t.active == "" {
		return
	}
	name := t.active
	tool := t.tools[name]
	tool.Deactivate()
	t.active = ""
	t.log.Debug("tool %s deactivated", name)
	t.bus.Emit(domain.EventToolDeactivated, domain.ToolEvent{ToolName: name})
}

// ActiveTool returns the currently active tool.
func (t *Toolbar) ActiveTool() (driving.Tool, bool) {
	if t.active == "" {
		return nil, false
	}
	return t.tools[t.active], true
}

// Tool returns a registered tool by name.
func (t *Toolbar) Tool(name string) (driving.Tool, bool) {
	tool, ok := t.tools[name]
	return tool, ok
}

// Buttons returns button descriptors in registration order.
func (t *Toolbar) Buttons() []driving.ToolButton {
	out := make([]driving.ToolButton, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.tools[name].Button())
	}
	return out
}

// Destroy deactivates the active tool, destroys every registered tool and
// removes the coordinator's subscriptions.
func (t *Toolbar) Destroy() {
	t.DeactivateActive()
	for _, name := range t.order {
		t.tools[name].Destroy()
	}
	for _, u := range t.unsubs {
		u()
	}
	t.unsubs = nil
}

func (t *Toolbar) onActivateRequested(payload any) {
	evt, ok := payload.(domain.ToolEvent)
	if !ok {
		return
	}
	if err := t.Activate(evt.ToolName); err != nil {
		t.log.Warn("activation request failed: %v", err)
	}
}

func (t *Toolbar) onDeactivateRequested(payload any) {
	evt, ok := payload.(domain.ToolEvent)
	if !ok {
		return
	}
	if t.active == evt.ToolName {
		t.DeactivateActive()
	}
}

// onPanelClosed enforces the state-consistency rule: an invisible toolbar
// must never leave an Active tool dangling.
func (t *Toolbar) onPanelClosed(payload any) {
	evt, ok := payload.(domain.SidebarPanelEvent)
	if !ok {
		return
	}
	if t.active == "" {
		return
	}
	if t.panels[t.active] == evt.PanelID {
		t.log.Info("panel %s closed, force-deactivating %s", evt.PanelID, t.active)
		t.DeactivateActive()
	}
}

// onKeyPressed deactivates the active tool on a global Escape.
func (t *Toolbar) onKeyPressed(payload any) {
	evt, ok := payload.(domain.KeyEvent)
	if !ok {
		return
	}
	if evt.Key == "escape" {
		t.DeactivateActive()
	}
}
