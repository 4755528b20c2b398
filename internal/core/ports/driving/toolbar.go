package driving

// ToolbarService coordinates tool activation. At most one tool is Active
// at any time across the whole toolbar.
type ToolbarService interface {
	// Register adds a tool to the toolbar. Registration order is
	// presentation order.
	Register(tool Tool) error

	// Activate activates the named tool, fully deactivating the
	// previously active tool first. Activating the already-active tool
	// toggles it off.
	Activate(name string) error

	// DeactivateActive deactivates whichever tool is active, if any.
	DeactivateActive()

	// ActiveTool returns the currently active tool.
	ActiveTool() (Tool, bool)

	// Tool returns a registered tool by name.
	Tool(name string) (Tool, bool)

	// Buttons returns button descriptors in registration order.
	Buttons() []ToolButton

	// Destroy deactivates and destroys every registered tool.
	Destroy()
}
