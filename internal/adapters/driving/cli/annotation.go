package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

var annotationCmd = &cobra.Command{
	Use:   "annotation",
	Short: "Manage annotations",
	Long:  `List, view, export, or delete annotations in the workspace.`,
}

var annotationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List annotations",
	RunE:  runAnnotationList,
}

var annotationGetCmd = &cobra.Command{
	Use:   "get [annotation-id]",
	Short: "Show one annotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationGet,
}

var annotationExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export annotations as JSON",
	Long:  `Write the whole annotation collection to stdout or a file as JSON.`,
	RunE:  runAnnotationExport,
}

var annotationDeleteCmd = &cobra.Command{
	Use:   "delete [annotation-id]",
	Short: "Request deletion of an annotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationDelete,
}

// listPage restricts the list command to one page when > 0.
var listPage int

// exportOutput is the destination file for the export command.
var exportOutput string

func init() {
	annotationListCmd.Flags().IntVarP(&listPage, "page", "p", 0, "Only show annotations on this page")
	annotationExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")

	annotationCmd.AddCommand(annotationListCmd)
	annotationCmd.AddCommand(annotationGetCmd)
	annotationCmd.AddCommand(annotationExportCmd)
	annotationCmd.AddCommand(annotationDeleteCmd)
	rootCmd.AddCommand(annotationCmd)
}

func runAnnotationList(cmd *cobra.Command, _ []string) error {
	if annotationDirectory == nil {
		return errors.New("annotation directory not configured")
	}

	var (
		annotations []domain.Annotation
		err         error
	)
	if listPage > 0 {
		annotations = annotationDirectory.AnnotationsByPage(listPage)
	} else {
		annotations, err = annotationDirectory.List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list annotations: %w", err)
		}
	}

	if len(annotations) == 0 {
		cmd.Println("No annotations found.")
		return nil
	}

	for i := range annotations {
		a := &annotations[i]
		cmd.Printf("  %s\n", a.ID)
		cmd.Printf("    Type: %s\n", a.Type)
		cmd.Printf("    Page: %d\n", a.PageNumber)
		if s := annotationSummary(a); s != "" {
			cmd.Printf("    Summary: %s\n", s)
		}
		if n := a.CommentCount(); n > 0 {
			cmd.Printf("    Comments: %d\n", n)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d annotations\n", len(annotations))
	return nil
}

func runAnnotationGet(cmd *cobra.Command, args []string) error {
	if annotationDirectory == nil {
		return errors.New("annotation directory not configured")
	}

	ann, err := annotationDirectory.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get annotation: %w", err)
	}

	cmd.Printf("Annotation: %s\n\n", ann.ID)
	cmd.Printf("  Type:     %s\n", ann.Type)
	cmd.Printf("  Page:     %d\n", ann.PageNumber)
	cmd.Printf("  Created:  %s\n", ann.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", ann.UpdatedAt.Format("2006-01-02 15:04:05"))

	switch d := ann.Data.(type) {
	case domain.CommentData:
		cmd.Printf("  Position: (%.0f, %.0f)\n", d.Position.X, d.Position.Y)
		cmd.Printf("  Content:  %s\n", d.Content)
	case domain.ScreenshotData:
		cmd.Printf("  Rect:     %.0f×%.0f at (%.0f, %.0f)\n",
			d.Rect.Width, d.Rect.Height, d.Rect.X, d.Rect.Y)
		cmd.Printf("  Image:    %s\n", d.ImagePath)
		if d.Description != "" {
			cmd.Printf("  Description: %s\n", d.Description)
		}
	case domain.HighlightData:
		cmd.Printf("  Color:    %s\n", d.HighlightColor)
		cmd.Printf("  Text:     %s\n", d.SelectedText)
		if d.Note != "" {
			cmd.Printf("  Note:     %s\n", d.Note)
		}
	}

	if len(ann.Comments) > 0 {
		cmd.Println("\n  Comments:")
		for _, c := range ann.Comments {
			cmd.Printf("    [%s] %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Content)
		}
	}

	return nil
}

func runAnnotationExport(cmd *cobra.Command, _ []string) error {
	if annotationDirectory == nil {
		return errors.New("annotation directory not configured")
	}

	annotations, err := annotationDirectory.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list annotations: %w", err)
	}

	data, err := json.MarshalIndent(annotations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode annotations: %w", err)
	}

	if exportOutput == "" {
		cmd.Println(string(data))
		return nil
	}

	if err := os.WriteFile(exportOutput, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	cmd.Printf("Exported %d annotations to %s\n", len(annotations), exportOutput)
	return nil
}

func runAnnotationDelete(cmd *cobra.Command, args []string) error {
	if annotationDirectory == nil {
		return errors.New("annotation directory not configured")
	}

	id := args[0]
	if err := annotationDirectory.RequestDelete(id); err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}

	cmd.Printf("Deletion requested for annotation %s.\n", id)
	return nil
}

// annotationSummary produces a short single-line description of the payload.
func annotationSummary(a *domain.Annotation) string {
	var s string
	switch d := a.Data.(type) {
	case domain.CommentData:
		s = d.Content
	case domain.ScreenshotData:
		s = d.Description
	case domain.HighlightData:
		s = d.SelectedText
	}
	s = strings.TrimSpace(s)
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
