package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for pagemark resources.
	uriScheme = "pagemark://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the whole annotation collection.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "annotations",
		Name:        "annotations",
		Description: "All annotations in the workspace, oldest first",
		MIMEType:    "application/json",
	}, s.handleAnnotationsResource)

	// Template for a single annotation.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "annotations/{annotationId}",
		Name:        "annotation",
		Description: "A single annotation with its full payload and comments",
		MIMEType:    "application/json",
	}, s.handleAnnotationResource)

	// Template for the annotations on one page.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{pageNumber}/annotations",
		Name:        "page-annotations",
		Description: "Annotations anchored to a specific page",
		MIMEType:    "application/json",
	}, s.handlePageAnnotationsResource)
}

// handleAnnotationsResource returns the full annotation collection.
func (s *Server) handleAnnotationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	annotations, err := s.ports.Directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}

	data, err := json.MarshalIndent(annotations, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling annotations: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleAnnotationResource returns one annotation by id.
func (s *Server) handleAnnotationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractAnnotationID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ann, err := s.ports.Directory.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(ann, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling annotation: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePageAnnotationsResource returns the annotations on one page.
func (s *Server) handlePageAnnotationsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	page, ok := extractPageNumber(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	annotations := s.ports.Directory.AnnotationsByPage(page)

	data, err := json.MarshalIndent(annotations, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling page annotations: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractAnnotationID extracts the id from a URI like pagemark://annotations/{annotationId}.
func extractAnnotationID(uri string) string {
	const prefix = uriScheme + "annotations/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

// extractPageNumber extracts the page from a URI like pagemark://pages/{pageNumber}/annotations.
func extractPageNumber(uri string) (int, bool) {
	const prefix = uriScheme + "pages/"
	const suffix = "/annotations"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return 0, false
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
