// Package cli implements the pagemark command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
	"github.com/pagemark-labs/pagemark/internal/logger"
)

// version is the build version, set at link time via SetVersion.
var version = "dev"

// annotationDirectory is the injected read/delete surface over the
// annotation collection. Commands fail with a clear error when it is
// not wired.
var annotationDirectory driving.AnnotationDirectory

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pagemark",
	Short: "Annotate documents from your terminal",
	Long: `Pagemark is a document annotation workspace.

Drop comment pins, capture screenshot regions, and highlight text on
rendered document pages, then browse and manage the resulting
annotations from the sidebar, this CLI, or an MCP-connected assistant.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetAnnotationDirectory injects the annotation directory used by the
// annotation and mcp commands.
func SetAnnotationDirectory(dir driving.AnnotationDirectory) {
	annotationDirectory = dir
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
