package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

func TestHandlesCmd_Use(t *testing.T) {
	assert.Equal(t, "handles", handlesCmd.Use)
}

func TestHandlesCmd_PrintsHandles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"handles"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "handle-1")
	assert.Contains(t, buf.String(), "Document:   doc-1")
	assert.Contains(t, buf.String(), "Importance: 0.42")
	assert.Contains(t, buf.String(), "Summary:    Parser rework notes")
	assert.Contains(t, buf.String(), "Phrases:    parser, rework")
	assert.Contains(t, buf.String(), "Total: 1 handles")
}

func TestHandlesCmd_AppliesFilterFlags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() {
		handlesType = ""
		handlesMinImportance = 0
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"handles", "--type", "document", "--min-importance", "0.5"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	mock := contextService.(*mockContextService)
	assert.Equal(t, domain.ContextTypeDocument, mock.filter.ContextType)
	assert.InDelta(t, 0.5, mock.filter.MinImportance, 0.0001)
}

func TestHandlesCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { handlesJSON = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"handles", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	var handles []handleOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &handles))
	require.Len(t, handles, 1)
	assert.Equal(t, "handle-1", handles[0].ID)
	assert.Equal(t, "doc-1", handles[0].DocumentID)
	assert.Equal(t, "document", handles[0].ContextType)
	assert.Equal(t, []string{"parser", "rework"}, handles[0].KeyPhrases)
}

func TestHandlesCmd_NoHandles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	contextService.(*mockContextService).handles = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"handles"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No handles found.")
}

func TestHandlesCmd_ErrorsWithoutService(t *testing.T) {
	oldContext := contextService
	contextService = nil
	defer func() { contextService = oldContext }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"handles"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSummaryLine(t *testing.T) {
	t.Run("flattens whitespace", func(t *testing.T) {
		assert.Equal(t, "one two three", summaryLine("one\n two\t three"))
	})

	t.Run("truncates long summaries", func(t *testing.T) {
		out := summaryLine(strings.Repeat("a", 200))
		assert.Len(t, out, 83)
		assert.True(t, strings.HasSuffix(out, "..."))
	})
}
