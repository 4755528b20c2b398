package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/components/cards"
	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/components/toolbar"
	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/keymap"
	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/messages"
	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/styles"
	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

// App is the shell's root model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keys   *keymap.KeyMap

	strip    *toolbar.Strip
	cardList *cards.List

	bridge   *Bridge
	prompter *Prompter

	// notification is the last transient message for the status line.
	notification *messages.Notification

	// promptActive gates the description input modal.
	promptActive  bool
	promptInput   textinput.Model
	promptRespond func(string, bool)

	// mouse drag state: the press cell and its surface-space point.
	mouseDown   bool
	mouseStartX int
	mouseStartY int
	mouseStart  domain.Point

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the shell. The prompter may be nil when the screenshot
// tool is not wired.
func NewApp(ports *Ports, prompter *Prompter) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	s := styles.DefaultStyles()

	input := textinput.New()
	input.Placeholder = "capture description (enter to confirm, esc to skip)"
	input.CharLimit = 200

	return &App{
		ports:       ports,
		styles:      s,
		keys:        keymap.DefaultKeyMap(),
		strip:       toolbar.NewStrip(s),
		cardList:    cards.NewList(s),
		bridge:      NewBridge(ports.Bus),
		prompter:    prompter,
		promptInput: input,
	}, nil
}

// Init starts the bus and prompt listeners.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitForBusEvent()}
	if a.prompter != nil {
		cmds = append(cmds, a.waitForPrompt())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.strip.SetWidth(msg.Width)
		a.cardList.SetHeight(max(4, msg.Height-8))
		a.ready = true
		return a, nil

	case messages.BusEvent:
		a.handleBusEvent(msg)
		return a, a.waitForBusEvent()

	case messages.BridgeClosed:
		return a, nil

	case messages.PromptRequested:
		a.promptActive = true
		a.promptRespond = msg.Respond
		a.promptInput.SetValue("")
		a.promptInput.Focus()
		return a, textinput.Blink

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		if a.promptActive {
			return a.updatePrompt(msg)
		}
		return a.handleKey(msg)
	}

	return a, nil
}

// handleBusEvent refreshes shell state from one bridged event.
func (a *App) handleBusEvent(evt messages.BusEvent) {
	switch evt.Name {
	case domain.EventNotification:
		if n, ok := evt.Payload.(domain.NotificationEvent); ok {
			a.notification = &messages.Notification{Level: n.Level, Message: n.Message}
		}
	case domain.EventCardSelected:
		if ref, ok := evt.Payload.(domain.AnnotationRef); ok {
			a.cardList.Select(ref.AnnotationID)
		}
	}
	// Every bridged event may have changed cards or tool state.
	a.cardList.SetCards(a.ports.Panel.Cards())
}

// handleKey routes workspace keybindings.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.bridge.Close()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Comment):
		a.ports.Bus.Emit(domain.EventToolActivateRequested, domain.ToolEvent{ToolName: "comment"})

	case key.Matches(msg, a.keys.Screenshot):
		a.ports.Bus.Emit(domain.EventToolActivateRequested, domain.ToolEvent{ToolName: "screenshot"})

	case key.Matches(msg, a.keys.Highlight):
		a.ports.Bus.Emit(domain.EventToolActivateRequested, domain.ToolEvent{ToolName: "highlight"})

	case key.Matches(msg, a.keys.Sidebar):
		if a.ports.Panel.IsOpen() {
			a.ports.Panel.Close()
		} else {
			a.ports.Bus.Emit(domain.EventSidebarOpenRequested,
				domain.SidebarPanelEvent{PanelID: domain.PanelAnnotations})
		}

	case key.Matches(msg, a.keys.Escape):
		a.ports.Bus.Emit(domain.EventKeyPressed, domain.KeyEvent{Key: "escape"})

	case key.Matches(msg, a.keys.Up):
		a.cardList.MoveUp()

	case key.Matches(msg, a.keys.Down):
		a.cardList.MoveDown()

	case key.Matches(msg, a.keys.Select):
		if c, ok := a.cardList.Current(); ok {
			a.ports.Panel.SelectCard(c.AnnotationID)
		}

	case key.Matches(msg, a.keys.Delete):
		if c, ok := a.cardList.Current(); ok {
			a.ports.Panel.RequestDelete(c.AnnotationID)
		}
	}
	return a, nil
}

// updatePrompt routes keys into the description modal.
func (a *App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.closePrompt(a.promptInput.Value(), true)
		return a, a.waitForPrompt()
	case "esc":
		a.closePrompt("", false)
		return a, a.waitForPrompt()
	}
	var cmd tea.Cmd
	a.promptInput, cmd = a.promptInput.Update(msg)
	return a, cmd
}

func (a *App) closePrompt(value string, ok bool) {
	a.promptActive = false
	a.promptInput.Blur()
	if a.promptRespond != nil {
		a.promptRespond(strings.TrimSpace(value), ok)
		a.promptRespond = nil
	}
}

// View renders the workspace.
func (a *App) View() string {
	if !a.ready {
		return "loading…"
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("pagemark"))
	b.WriteString("\n")
	b.WriteString(a.strip.View(a.ports.Toolbar.Buttons()))
	b.WriteString("\n\n")

	main := a.viewerSummary()
	if a.ports.Panel.IsOpen() {
		side := a.styles.Panel.Render(
			a.styles.Title.Render("Annotations") + "\n" + a.cardList.View())
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, " ", side)
	}
	b.WriteString(main)
	b.WriteString("\n")

	if a.promptActive {
		b.WriteString("\n")
		b.WriteString(a.styles.Panel.Render(
			a.styles.Title.Render("Screenshot description") + "\n" + a.promptInput.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.statusLine())
	return b.String()
}

// viewerSummary sketches the surface state: viewport size and per-type
// annotation counts. The shell is a coordination surface, not a renderer.
func (a *App) viewerSummary() string {
	vp := a.ports.Surface.Viewport()
	counts := map[domain.AnnotationType]int{}
	total := 0
	if all, err := a.ports.Directory.List(context.Background()); err == nil {
		for _, ann := range all {
			counts[ann.Type]++
			total++
		}
	}
	return a.styles.Normal.Render(fmt.Sprintf(
		"viewport %.0f×%.0f · %d annotations (%d comments, %d screenshots, %d highlights)",
		vp.Width, vp.Height, total,
		counts[domain.TypeComment], counts[domain.TypeScreenshot], counts[domain.TypeTextHighlight]))
}

func (a *App) statusLine() string {
	if a.notification != nil {
		style := a.styles.NotifyInfo
		switch a.notification.Level {
		case domain.NotifyWarn:
			style = a.styles.NotifyWarn
		case domain.NotifyError:
			style = a.styles.NotifyError
		}
		return style.Render(a.notification.Message)
	}
	return a.styles.Muted.Render("c comment · s screenshot · h highlight · tab sidebar · esc cancel · q quit")
}

// waitForBusEvent blocks on the bridge until the next event.
func (a *App) waitForBusEvent() tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-a.bridge.Events()
		if !ok {
			return messages.BridgeClosed{}
		}
		return evt
	}
}

// waitForPrompt blocks until the screenshot tool asks for a description.
func (a *App) waitForPrompt() tea.Cmd {
	return func() tea.Msg {
		req, ok := <-a.prompter.Requests()
		if !ok {
			return messages.BridgeClosed{}
		}
		return req
	}
}
