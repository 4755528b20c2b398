package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

// ListAnnotationsInput is the input schema for the list_annotations tool.
type ListAnnotationsInput struct {
	Page int `json:"page,omitempty" jsonschema:"restrict the listing to one 1-based page number"`
}

// ListAnnotationsOutput is the output schema for the list_annotations tool.
type ListAnnotationsOutput struct {
	Annotations []AnnotationOutput `json:"annotations"`
	Count       int                `json:"count"`
}

// GetAnnotationInput is the input schema for the get_annotation tool.
type GetAnnotationInput struct {
	ID string `json:"id" jsonschema:"the annotation id to retrieve"`
}

// GetAnnotationOutput is the output schema for the get_annotation tool.
type GetAnnotationOutput struct {
	Annotation AnnotationOutput `json:"annotation"`
}

// DeleteAnnotationInput is the input schema for the delete_annotation tool.
type DeleteAnnotationInput struct {
	ID string `json:"id" jsonschema:"the annotation id to delete"`
}

// DeleteAnnotationOutput is the output schema for the delete_annotation tool.
type DeleteAnnotationOutput struct {
	Requested bool   `json:"requested"`
	ID        string `json:"id"`
}

// AnnotationOutput is one annotation in tool output.
type AnnotationOutput struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	PageNumber   int            `json:"page_number"`
	Summary      string         `json:"summary,omitempty"`
	CommentCount int            `json:"comment_count"`
	Data         domain.Payload `json:"data"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_annotations",
		Description: "List annotations in the workspace, optionally filtered to one page",
	}, s.handleListAnnotations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_annotation",
		Description: "Retrieve a single annotation by id",
	}, s.handleGetAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_annotation",
		Description: "Request deletion of an annotation by id",
	}, s.handleDeleteAnnotation)
}

// handleListAnnotations handles the list_annotations tool invocation.
func (s *Server) handleListAnnotations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListAnnotationsInput,
) (*mcp.CallToolResult, ListAnnotationsOutput, error) {
	var annotations []domain.Annotation
	if input.Page > 0 {
		annotations = s.ports.Directory.AnnotationsByPage(input.Page)
	} else {
		all, err := s.ports.Directory.List(ctx)
		if err != nil {
			return nil, ListAnnotationsOutput{}, err
		}
		annotations = all
	}

	output := ListAnnotationsOutput{
		Annotations: make([]AnnotationOutput, len(annotations)),
		Count:       len(annotations),
	}
	for i := range annotations {
		output.Annotations[i] = toAnnotationOutput(&annotations[i])
	}
	return nil, output, nil
}

// handleGetAnnotation handles the get_annotation tool invocation.
func (s *Server) handleGetAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetAnnotationInput,
) (*mcp.CallToolResult, GetAnnotationOutput, error) {
	ann, err := s.ports.Directory.Get(ctx, input.ID)
	if err != nil {
		return nil, GetAnnotationOutput{}, err
	}
	return nil, GetAnnotationOutput{Annotation: toAnnotationOutput(ann)}, nil
}

// handleDeleteAnnotation handles the delete_annotation tool invocation.
// Deletion is asynchronous: the tool reports that the request was issued,
// not that the record is gone.
func (s *Server) handleDeleteAnnotation(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DeleteAnnotationInput,
) (*mcp.CallToolResult, DeleteAnnotationOutput, error) {
	if err := s.ports.Directory.RequestDelete(input.ID); err != nil {
		return nil, DeleteAnnotationOutput{}, err
	}
	return nil, DeleteAnnotationOutput{Requested: true, ID: input.ID}, nil
}

// toAnnotationOutput flattens an annotation for tool output.
func toAnnotationOutput(a *domain.Annotation) AnnotationOutput {
	return AnnotationOutput{
		ID:           a.ID,
		Type:         string(a.Type),
		PageNumber:   a.PageNumber,
		Summary:      summarize(a),
		CommentCount: a.CommentCount(),
		Data:         a.Data,
		CreatedAt:    a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    a.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// summarize produces a one-line human summary of the payload.
func summarize(a *domain.Annotation) string {
	switch d := a.Data.(type) {
	case domain.CommentData:
		return d.Content
	case domain.ScreenshotData:
		return d.Description
	case domain.HighlightData:
		return d.SelectedText
	default:
		return ""
	}
}
