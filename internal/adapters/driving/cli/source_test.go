package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// resetSourceFlags restores the source add flag variables to defaults.
func resetSourceFlags() {
	sourceID = ""
	sourcePath = ""
	sourceInclude = nil
	sourceExclude = nil
	sourceRepo = ""
	sourceContentTypes = nil
	sourceToken = ""
	sourceFolderID = ""
}

func TestSourceCmd_Use(t *testing.T) {
	assert.Equal(t, "source", sourceCmd.Use)
}

func TestSourceCmd_HasSubcommands(t *testing.T) {
	commands := sourceCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "add")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "remove")
}

// Source Add Tests

func TestSourceAddCmd_Use(t *testing.T) {
	assert.Equal(t, "add [type] [name]", sourceAddCmd.Use)
}

func TestSourceAddCmd_RequiresTwoArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "add", "filesystem"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSourceAddCmd_AddsFilesystemSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSourceFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"source", "add", "filesystem", "My Notes",
		"--path", "/home/dev/notes",
		"--include", "**/*.md",
		"--exclude", "drafts/**",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Source my-notes added.")
	assert.Contains(t, buf.String(), "memora ingest my-notes")

	added := sourceService.(*mockSourceService).added
	require.NotNil(t, added)
	assert.Equal(t, "my-notes", added.ID)
	assert.Equal(t, "My Notes", added.Name)
	assert.Equal(t, domain.SourceTypeFilesystem, added.Type)
	assert.Equal(t, "/home/dev/notes", added.Config["path"])
	assert.Equal(t, []string{"**/*.md"}, added.Config["include"])
	assert.Equal(t, []string{"drafts/**"}, added.Config["exclude"])
}

func TestSourceAddCmd_AddsGitHubSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSourceFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"source", "add", "github", "Tracker",
		"--repo", "octo/memora",
		"--content-types", "issues",
		"--token", "ghp_secret",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	added := sourceService.(*mockSourceService).added
	require.NotNil(t, added)
	assert.Equal(t, domain.SourceTypeGitHub, added.Type)
	assert.Equal(t, "octo/memora", added.Config["repo"])
	assert.Equal(t, []string{"issues"}, added.Config["content_types"])
	assert.Equal(t, "ghp_secret", added.Config["token"])
}

func TestSourceAddCmd_AddsGoogleDriveSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSourceFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"source", "add", "gdrive", "Specs",
		"--folder-id", "folder-123",
		"--token", "ya29.token",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	added := sourceService.(*mockSourceService).added
	require.NotNil(t, added)
	assert.Equal(t, domain.SourceTypeGoogleDrive, added.Type)
	assert.Equal(t, "folder-123", added.Config["folder_id"])
	assert.Equal(t, "ya29.token", added.Config["token"])
}

func TestSourceAddCmd_UsesProvidedID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSourceFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"source", "add", "filesystem", "Whatever Name",
		"--id", "notes",
		"--path", "/tmp/notes",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "notes", sourceService.(*mockSourceService).added.ID)
}

func TestSourceAddCmd_RejectsUnknownType(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSourceFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "add", "carrier-pigeon", "Birds"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source type")
}

func TestSourceAddCmd_RequiresTypeFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "filesystem needs path",
			args:    []string{"source", "add", "filesystem", "Notes"},
			wantErr: "--path is required",
		},
		{
			name:    "github needs repo",
			args:    []string{"source", "add", "github", "Tracker"},
			wantErr: "--repo is required",
		},
		{
			name:    "gdrive needs folder",
			args:    []string{"source", "add", "gdrive", "Specs"},
			wantErr: "--folder-id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()
			defer resetSourceFlags()

			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs(tt.args)
			defer func() {
				rootCmd.SetArgs(nil)
			}()

			err := rootCmd.Execute()

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSourceAddCmd_PropagatesValidationError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetSourceFlags()
	sourceService.(*mockSourceService).err = errors.New("path does not exist")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "add", "filesystem", "Notes", "--path", "/nope"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "add source failed")
}

func TestSourceAddCmd_ErrorsWithoutServices(t *testing.T) {
	oldSource := sourceService
	sourceService = nil
	defer func() { sourceService = oldSource }()
	defer resetSourceFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"source", "add", "filesystem", "Notes", "--path", "/tmp"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

// Source List Tests

func TestSourceListCmd_Use(t *testing.T) {
	assert.Equal(t, "list", sourceListCmd.Use)
}

func TestSourceListCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"source", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Configured sources:")
	assert.Contains(t, buf.String(), "notes")
	assert.Contains(t, buf.String(), "Type:    filesystem")
	assert.Contains(t, buf.String(), "Total: 1 sources")
}

func TestSourceListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sourceService.(*mockSourceService).sources = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"source", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No sources configured.")
}

// Source Remove Tests

func TestSourceRemoveCmd_Use(t *testing.T) {
	assert.Equal(t, "remove [source-id]", sourceRemoveCmd.Use)
}

func TestSourceRemoveCmd_RemovesSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"source", "remove", "notes"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Source notes removed.")
	assert.Equal(t, "notes", sourceService.(*mockSourceService).removedID)
}

// Helper Tests

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Notes", "notes"},
		{"spaces", "My Project Notes", "my-project-notes"},
		{"punctuation", "Q3 / Roadmap (draft)", "q3-roadmap-draft"},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.input))
		})
	}
}
