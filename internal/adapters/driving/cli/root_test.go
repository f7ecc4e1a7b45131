package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "memora", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("data-dir"))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "add")
	assert.Contains(t, commandNames, "query")
	assert.Contains(t, commandNames, "handles")
	assert.Contains(t, commandNames, "expand")
	assert.Contains(t, commandNames, "stats")
	assert.Contains(t, commandNames, "source")
	assert.Contains(t, commandNames, "ingest")
	assert.Contains(t, commandNames, "watch")
	assert.Contains(t, commandNames, "settings")
	assert.Contains(t, commandNames, "mcp")
	assert.Contains(t, commandNames, "browse")
	assert.Contains(t, commandNames, "version")
}

func TestNeedsServices(t *testing.T) {
	assert.False(t, needsServices(&cobra.Command{Use: "version"}))
	assert.False(t, needsServices(&cobra.Command{Use: "help [command]"}))
	assert.False(t, needsServices(&cobra.Command{Use: "completion"}))
	assert.True(t, needsServices(&cobra.Command{Use: "query"}))
	assert.True(t, needsServices(&cobra.Command{Use: "stats"}))
}

func TestRootCmd_BootstrapRunsForServiceCommands(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	called := false
	SetBootstrap(func(_ string) error {
		called = true
		return nil
	})
	defer SetBootstrap(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestRootCmd_BootstrapSkippedForVersion(t *testing.T) {
	called := false
	SetBootstrap(func(_ string) error {
		called = true
		return nil
	})
	defer SetBootstrap(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestRootCmd_BootstrapFailureStopsCommand(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	SetBootstrap(func(_ string) error {
		return errors.New("database locked")
	})
	defer SetBootstrap(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database locked")
}

func TestRootCmd_BootstrapReceivesDataDir(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	var got string
	SetBootstrap(func(dir string) error {
		got = dir
		return nil
	})
	defer SetBootstrap(nil)
	defer func() { dataDir = "" }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats", "--data-dir", "/tmp/elsewhere"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", got)
}
