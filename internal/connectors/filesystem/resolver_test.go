package filesystem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

func TestResolver_Type(t *testing.T) {
	assert.Equal(t, domain.SourceTypeFilesystem, NewResolver().Type())
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver()

	src, err := resolver.Resolve(context.Background(), domain.Source{
		ID:   "docs",
		Type: domain.SourceTypeFilesystem,
		Config: map[string]any{
			"path":    "/srv/docs",
			"include": []string{"**/*.md"},
			"exclude": []string{"archive/**"},
		},
	})

	require.NoError(t, err)
	c, ok := src.(*Connector)
	require.True(t, ok)
	assert.Equal(t, "docs", c.sourceID)
	assert.Equal(t, "/srv/docs", c.rootPath)
	assert.Equal(t, []string{"**/*.md"}, c.includes)
	assert.Equal(t, []string{"archive/**"}, c.excludes)
}

func TestResolver_Resolve_JSONRoundTripConfig(t *testing.T) {
	// Stored configs come back from SQLite with []any slices.
	src, err := NewResolver().Resolve(context.Background(), domain.Source{
		ID:   "docs",
		Type: domain.SourceTypeFilesystem,
		Config: map[string]any{
			"path":    "/srv/docs",
			"include": []any{"**/*.txt", "**/*.md"},
		},
	})

	require.NoError(t, err)
	c := src.(*Connector)
	assert.Equal(t, []string{"**/*.txt", "**/*.md"}, c.includes)
}

func TestResolver_Resolve_MissingPath(t *testing.T) {
	_, err := NewResolver().Resolve(context.Background(), domain.Source{
		ID:     "docs",
		Type:   domain.SourceTypeFilesystem,
		Config: map[string]any{},
	})

	assert.ErrorIs(t, err, domain.ErrSourceValidation)
}
