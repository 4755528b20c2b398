// Pagemark is a terminal document annotation workspace: comment pins,
// screenshot captures and text highlights over rendered document pages,
// with a CLI, a TUI shell and an MCP server on top of one shared
// annotation collection.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"os/signal"
	"syscall"
	"time"

	configfile "github.com/pagemark-labs/pagemark/internal/adapters/driven/config/file"
	imagefile "github.com/pagemark-labs/pagemark/internal/adapters/driven/imagestore/file"
	"github.com/pagemark-labs/pagemark/internal/adapters/driven/storage/sqlite"
	"github.com/pagemark-labs/pagemark/internal/adapters/driving/cli"
	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui"
	"github.com/pagemark-labs/pagemark/internal/bus"
	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
	"github.com/pagemark-labs/pagemark/internal/core/services"
	"github.com/pagemark-labs/pagemark/internal/logger"
	"github.com/pagemark-labs/pagemark/internal/sidebar"
	"github.com/pagemark-labs/pagemark/internal/surface"
	"github.com/pagemark-labs/pagemark/internal/tools/comment"
	"github.com/pagemark-labs/pagemark/internal/tools/highlight"
	"github.com/pagemark-labs/pagemark/internal/tools/screenshot"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// defaultViewport is the logical viewer size before the shell reports a
// real terminal geometry.
var defaultViewport = domain.Rect{Width: 1280, Height: 960}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Port{}
	b := bus.New()
	surf := surface.New(b, defaultViewport)

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening annotation store: %w", err)
	}
	defer store.Close()

	images, err := imagefile.NewStore(cfg.GetString("storage.captures_dir"))
	if err != nil {
		return fmt.Errorf("opening image store: %w", err)
	}

	timeout := time.Duration(cfg.GetInt("annotations.save_timeout_seconds")) * time.Second
	annotations, err := services.NewAnnotationService(store, b, log, timeout)
	if err != nil {
		return fmt.Errorf("starting annotation service: %w", err)
	}
	defer annotations.Close()

	prompter := tui.NewPrompter()

	commentTool := comment.New()
	screenshotTool := screenshot.New()
	screenshotTool.SetMinSelection(float64(cfg.GetInt("tools.screenshot.min_selection")))
	highlightTool := highlight.New()
	highlightTool.SetColor(cfg.GetString("tools.highlight.color"))

	toolCtx := &driving.ToolContext{
		Bus:         b,
		Logger:      log,
		Surface:     surf,
		Annotations: annotations,
		Images:      images,
		Prompter:    prompter,
	}

	toolbar := services.NewToolbar(b, log)
	defer toolbar.Destroy()

	for _, t := range []driving.Tool{commentTool, screenshotTool, highlightTool} {
		t.Initialize(toolCtx)
		if err := toolbar.Register(t); err != nil {
			return fmt.Errorf("registering %s tool: %w", t.Name(), err)
		}
	}

	// Pages render after the tools are registered so marker restoration
	// runs for annotations loaded from the store.
	seedDocument(surf)

	panel := sidebar.New(b, log)
	defer panel.Close()
	panel.RegisterCardBuilder(domain.TypeComment, commentTool.Card)
	panel.RegisterCardBuilder(domain.TypeScreenshot, screenshotTool.Card)
	panel.RegisterCardBuilder(domain.TypeTextHighlight, highlightTool.Card)

	applyToolConfig := func() {
		screenshotTool.SetMinSelection(float64(cfg.GetInt("tools.screenshot.min_selection")))
		highlightTool.SetColor(cfg.GetString("tools.highlight.color"))
	}

	watcher := configfile.NewWatcher(cfg, log, applyToolConfig)
	go func() {
		if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("config watcher stopped: %v", err)
		}
	}()

	cli.SetVersion(version)
	cli.SetAnnotationDirectory(annotations)
	cli.SetTUIConfig(&cli.TUIConfig{
		Ports: &tui.Ports{
			Bus:       b,
			Toolbar:   toolbar,
			Directory: annotations,
			Panel:     panel,
			Surface:   surf,
			Logger:    log,
		},
		Prompter: prompter,
	})

	return cli.Execute(ctx)
}

// seedDocument registers a small sample document so clicks, drags and
// selections in the shell land on rendered pages. A real deployment would
// wire the rendering engine here instead.
func seedDocument(surf *surface.Surface) {
	const pageWidth, pageHeight = 612, 792

	texts := []string{
		"Pagemark keeps annotations attached to virtualized pages. " +
			"Markers survive page destruction through the restoration protocol.",
		"Comment pins, screenshot captures and text highlights share one " +
			"collection, one bus and one persistence collaborator.",
		"Every tool degrades to an inert button when a collaborator is " +
			"missing, so a broken integration never takes the shell down.",
	}

	for i, text := range texts {
		number := i + 1
		raster := image.NewRGBA(image.Rect(0, 0, pageWidth, pageHeight))
		draw.Draw(raster, raster.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

		surf.AddPage(number, domain.Rect{
			X:      40,
			Y:      40 + float64(i)*(pageHeight+24),
			Width:  pageWidth,
			Height: pageHeight,
		}, raster)
		surf.SetPageText(number, text)
		surf.RenderPage(number)
	}
}
