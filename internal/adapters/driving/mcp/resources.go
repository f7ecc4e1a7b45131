package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// uriScheme is the custom URI scheme for memora resources.
const uriScheme = "memora://"

// registerResources registers all resource handlers with the MCP server.
// Resources serve bounded handle records only; full document text is
// available exclusively through the expand_handle tool.
func (s *Server) registerResources() {
	// Static resource listing every handle record.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "handles",
		Name:        "handles",
		Description: "All context handles as bounded records without document text",
		MIMEType:    "application/json",
	}, s.handleHandlesResource)

	// Template for a single handle record.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "handle/{handleId}",
		Name:        "handle",
		Description: "One context handle record; expand_handle returns the full text",
		MIMEType:    "application/json",
	}, s.handleHandleResource)
}

// handleHandlesResource returns every handle record.
func (s *Server) handleHandlesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	handles, err := s.ports.Context.Handles(ctx, domain.HandleFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing handles: %w", err)
	}

	records := make([]HandleOutput, len(handles))
	for i := range handles {
		records[i] = handleToOutput(handles[i])
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling handles: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleHandleResource returns the bounded record of a single handle.
func (s *Server) handleHandleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	handleID := extractHandleID(req.Params.URI)
	if handleID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Expansion also loads the document, but only the handle record is
	// served here. The text stays behind the expand_handle tool.
	expanded, err := s.ports.Context.Expand(ctx, handleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("expanding handle: %w", err)
	}

	data, err := json.MarshalIndent(handleToOutput(expanded.Handle), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling handle: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractHandleID extracts the handle ID from a URI like memora://handle/{handleId}.
func extractHandleID(uri string) string {
	const prefix = uriScheme + "handle/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
