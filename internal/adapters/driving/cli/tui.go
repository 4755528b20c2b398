package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	Ports    *tui.Ports
	Prompter *tui.Prompter
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive annotation workspace",
	Long: `Launch the interactive terminal workspace for Pagemark.

The workspace shows the document surface summary, the annotation
toolbar, and the sidebar with annotation cards.

Controls:
  c        - Comment tool
  s        - Screenshot tool
  h        - Highlight tool
  mouse    - Click to place, drag to capture or select
  tab      - Toggle sidebar
  ↑/↓      - Navigate cards
  Enter    - Select card
  d        - Delete card
  Esc      - Cancel / deactivate
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery so terminal state is not lost without a trace
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if tuiConfig == nil || tuiConfig.Ports == nil {
		return fmt.Errorf("tui not configured")
	}

	app, err := tui.NewApp(tuiConfig.Ports, tuiConfig.Prompter)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
