package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

func TestExtractHandleID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid handle URI",
			uri:      "memora://handle/handle-123",
			expected: "handle-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://handle/handle-123",
			expected: "",
		},
		{
			name:     "nested path is rejected",
			uri:      "memora://handle/handle-123/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractHandleID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleHandlesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns handle records", func(t *testing.T) {
		ports := validPorts()
		ports.Context.(*mockContextService).handles = []domain.ContextHandle{
			{ID: "handle-1", DocumentID: "doc-1", Summary: "Parser rework notes"},
			{ID: "handle-2", DocumentID: "doc-2", Summary: "Sprint retro"},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("memora://handles")
		result, err := server.handleHandlesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "handle-1")
		assert.Contains(t, result.Contents[0].Text, "Parser rework notes")
		assert.Contains(t, result.Contents[0].Text, "handle-2")
	})

	t.Run("empty corpus returns empty list", func(t *testing.T) {
		ports := validPorts()
		ports.Context.(*mockContextService).handles = []domain.ContextHandle{}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("memora://handles")
		result, err := server.handleHandlesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		ports := validPorts()
		ports.Context.(*mockContextService).err = errors.New("database error")
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("memora://handles")
		_, err = server.handleHandlesResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing handles")
	})
}

func TestServer_handleHandleResource(t *testing.T) {
	ctx := context.Background()

	t.Run("serves the bounded record without text", func(t *testing.T) {
		ports := validPorts()
		ports.Context.(*mockContextService).expanded = &domain.ExpandedDocument{
			Document: domain.Document{
				ID:   "doc-1",
				Text: "the full secret document text",
			},
			Handle: domain.ContextHandle{
				ID:         "handle-1",
				DocumentID: "doc-1",
				Summary:    "Parser rework notes",
				KeyPhrases: []string{"parser", "rework"},
				Importance: 0.42,
			},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("memora://handle/handle-1")
		result, err := server.handleHandleResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "handle-1")
		assert.Contains(t, result.Contents[0].Text, "Parser rework notes")
		assert.NotContains(t, result.Contents[0].Text, "the full secret document text")
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(validPorts())
		require.NoError(t, err)

		req := makeReadResourceRequest("memora://invalid/uri")
		_, err = server.handleHandleResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("unknown handle returns not found", func(t *testing.T) {
		ports := validPorts()
		ports.Context.(*mockContextService).err = domain.ErrNotFound
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("memora://handle/nope")
		_, err = server.handleHandleResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		ports := validPorts()
		ports.Context.(*mockContextService).err = errors.New("disk gone")
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("memora://handle/handle-1")
		_, err = server.handleHandleResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "expanding handle")
	})
}
