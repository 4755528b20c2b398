package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
	"github.com/pagemark-labs/pagemark/internal/tools/highlight"
)

// sizeForMouse sets a 100×80 terminal over the fixture's 1000×800 viewport
// so one cell maps to exactly 10×10 surface pixels.
func sizeForMouse(f *appFixture) {
	f.app.Update(tea.WindowSizeMsg{Width: 100, Height: 80})
}

func press(f *appFixture, x, y int) {
	f.app.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func motion(f *appFixture, x, y int) {
	f.app.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
}

func release(f *appFixture, x, y int) {
	f.app.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func TestMouse_DragBridgesPointerEvents(t *testing.T) {
	f := newAppFixture(t)
	sizeForMouse(f)

	var events []string
	positions := map[string]domain.Point{}
	record := func(name string) func(any) {
		return func(p any) {
			events = append(events, name)
			positions[name] = p.(domain.PointerEvent).Position
		}
	}
	f.bus.Subscribe(domain.EventPointerDown, record("down"))
	f.bus.Subscribe(domain.EventPointerMove, record("move"))
	f.bus.Subscribe(domain.EventPointerUp, record("up"))
	f.bus.Subscribe(domain.EventPointerClick, record("click"))

	press(f, 3, 5)
	motion(f, 5, 5)
	release(f, 8, 9)

	assert.Equal(t, []string{"down", "move", "up"}, events)
	assert.Equal(t, domain.Point{X: 30, Y: 50}, positions["down"])
	assert.Equal(t, domain.Point{X: 50, Y: 50}, positions["move"])
	assert.Equal(t, domain.Point{X: 80, Y: 90}, positions["up"])
}

func TestMouse_ClickEmitsPointerClick(t *testing.T) {
	f := newAppFixture(t)
	sizeForMouse(f)

	var clicks []domain.Point
	f.bus.Subscribe(domain.EventPointerClick, func(p any) {
		clicks = append(clicks, p.(domain.PointerEvent).Position)
	})

	press(f, 4, 4)
	release(f, 4, 4)

	require.Len(t, clicks, 1)
	assert.Equal(t, domain.Point{X: 40, Y: 40}, clicks[0])
}

func TestMouse_MotionWithoutPressIsIgnored(t *testing.T) {
	f := newAppFixture(t)
	sizeForMouse(f)

	var moves int
	f.bus.Subscribe(domain.EventPointerMove, func(any) { moves++ })

	motion(f, 10, 10)
	motion(f, 11, 10)

	assert.Zero(t, moves)
}

func TestMouse_NonLeftButtonIgnored(t *testing.T) {
	f := newAppFixture(t)
	sizeForMouse(f)

	var downs int
	f.bus.Subscribe(domain.EventPointerDown, func(any) { downs++ })

	f.app.Update(tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})

	assert.Zero(t, downs)
}

func TestMouse_HighlightDragSynthesizesSelection(t *testing.T) {
	f := newAppFixture(t)
	sizeForMouse(f)

	f.surf.AddPage(1, domain.Rect{X: 0, Y: 0, Width: 600, Height: 700}, nil)
	f.surf.SetPageText(1, "the shared annotation collection")
	f.surf.RenderPage(1)

	hl := highlight.New()
	hl.Initialize(&driving.ToolContext{
		Bus: f.bus, Logger: nopLogger{}, Surface: f.surf, Annotations: f.svc,
	})
	require.NoError(t, f.toolbar.Register(hl))
	require.NoError(t, f.toolbar.Activate("highlight"))

	var selections []domain.TextSelectionEvent
	f.bus.Subscribe(domain.EventTextSelected, func(p any) {
		selections = append(selections, p.(domain.TextSelectionEvent))
	})

	press(f, 3, 5)
	motion(f, 6, 7)
	release(f, 8, 9)

	require.Len(t, selections, 1)
	sel := selections[0]
	assert.Equal(t, 1, sel.PageNumber)
	assert.Equal(t, "the shared annotation collection", sel.Text)
	assert.Equal(t, domain.Rect{X: 30, Y: 50, Width: 50, Height: 40}, sel.BoundingBox)
	require.Len(t, sel.Ranges, 1)

	// The active highlight tool turned the selection into a stored
	// annotation end to end.
	anns := f.svc.AnnotationsByPage(1)
	require.Len(t, anns, 1)
	assert.Equal(t, domain.TypeTextHighlight, anns[0].Type)
}

func TestMouse_SelectionRequiresHighlightActive(t *testing.T) {
	f := newAppFixture(t)
	sizeForMouse(f)

	f.surf.AddPage(1, domain.Rect{X: 0, Y: 0, Width: 600, Height: 700}, nil)
	f.surf.SetPageText(1, "some page text")
	f.surf.RenderPage(1)

	var selections int
	f.bus.Subscribe(domain.EventTextSelected, func(any) { selections++ })

	press(f, 3, 5)
	release(f, 8, 9)

	assert.Zero(t, selections)
}
