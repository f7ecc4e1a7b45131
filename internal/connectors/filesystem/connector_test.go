package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

func collectItems(t *testing.T, c *Connector) []domain.SourceItem {
	t.Helper()

	itemsCh, errsCh := c.Fetch(context.Background())

	var items []domain.SourceItem
	for item := range itemsCh {
		items = append(items, item)
	}
	if err, ok := <-errsCh; ok && err != nil {
		t.Fatalf("unexpected fetch error: %v", err)
	}
	return items
}

func TestNew(t *testing.T) {
	t.Run("defaults to matching every file", func(t *testing.T) {
		c := New("src-1", "/tmp/data")

		require.NotNil(t, c)
		assert.Equal(t, "src-1", c.sourceID)
		assert.Equal(t, "/tmp/data", c.rootPath)
		assert.Equal(t, []string{"**/*"}, c.includes)
	})

	t.Run("applies glob options", func(t *testing.T) {
		c := New("src-1", "/tmp/data",
			WithIncludes([]string{"**/*.md"}),
			WithExcludes([]string{"drafts/**"}),
		)

		assert.Equal(t, []string{"**/*.md"}, c.includes)
		assert.Equal(t, []string{"drafts/**"}, c.excludes)
	})

	t.Run("empty includes keep the default", func(t *testing.T) {
		c := New("src-1", "/tmp/data", WithIncludes(nil))

		assert.Equal(t, []string{"**/*"}, c.includes)
	})
}

func TestConnector_Type(t *testing.T) {
	c := New("src-1", "/tmp")

	assert.Equal(t, domain.SourceTypeFilesystem, c.Type())
	assert.Equal(t, "src-1", c.SourceID())
}

func TestConnector_Validate(t *testing.T) {
	t.Run("accepts an existing directory", func(t *testing.T) {
		c := New("src-1", t.TempDir())

		assert.NoError(t, c.Validate(context.Background()))
	})

	t.Run("rejects a missing path", func(t *testing.T) {
		c := New("src-1", "/non/existent/path")

		err := c.Validate(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("rejects a file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		c := New("src-1", path)

		err := c.Validate(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestConnector_Fetch(t *testing.T) {
	t.Run("fetches files from directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "one.txt"), []byte("content 1"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "two.md"), []byte("# Two"), 0644))

		items := collectItems(t, New("src-1", dir))

		assert.Len(t, items, 2)
	})

	t.Run("recurses into subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "nested", "deep")
		require.NoError(t, os.MkdirAll(sub, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(sub, "note.txt"), []byte("deep"), 0644))

		items := collectItems(t, New("src-1", dir))

		require.Len(t, items, 1)
		assert.Contains(t, items[0].URI, filepath.Join("nested", "deep", "note.txt"))
	})

	t.Run("skips hidden files and directories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("v"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("h"), 0644))
		hiddenDir := filepath.Join(dir, ".git")
		require.NoError(t, os.MkdirAll(hiddenDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(hiddenDir, "config"), []byte("g"), 0644))

		items := collectItems(t, New("src-1", dir))

		require.Len(t, items, 1)
		assert.Contains(t, items[0].URI, "visible.txt")
	})

	t.Run("applies include globs", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.md"), []byte("k"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "drop.txt"), []byte("d"), 0644))

		items := collectItems(t, New("src-1", dir, WithIncludes([]string{"**/*.md"})))

		require.Len(t, items, 1)
		assert.Contains(t, items[0].URI, "keep.md")
	})

	t.Run("applies exclude globs", func(t *testing.T) {
		dir := t.TempDir()
		drafts := filepath.Join(dir, "drafts")
		require.NoError(t, os.MkdirAll(drafts, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "final.md"), []byte("f"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(drafts, "wip.md"), []byte("w"), 0644))

		items := collectItems(t, New("src-1", dir, WithExcludes([]string{"drafts/**"})))

		require.Len(t, items, 1)
		assert.Contains(t, items[0].URI, "final.md")
	})

	t.Run("emits metadata and MIME type", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("# hello"), 0644))

		items := collectItems(t, New("src-1", dir))

		require.Len(t, items, 1)
		item := items[0]
		assert.Equal(t, "src-1", item.SourceID)
		assert.Equal(t, "note.md", item.Title)
		assert.Equal(t, domain.MIMETypeMarkdown, item.MIMEType)
		assert.Equal(t, []byte("# hello"), item.Content)
		assert.Equal(t, "note.md", item.Metadata["filename"])
		assert.Equal(t, "md", item.Metadata["extension"])
		assert.Equal(t, int64(7), item.Metadata["size_bytes"])
	})

	t.Run("reports missing directory through the error channel", func(t *testing.T) {
		c := New("src-1", "/non/existent/path")

		itemsCh, errsCh := c.Fetch(context.Background())
		for range itemsCh {
		}

		select {
		case err := <-errsCh:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "does not exist")
		case <-time.After(time.Second):
			t.Fatal("expected an error for a missing directory")
		}
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 5; i++ {
			name := filepath.Join(dir, "file"+string(rune('a'+i))+".txt")
			require.NoError(t, os.WriteFile(name, []byte("x"), 0644))
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		itemsCh, errsCh := New("src-1", dir).Fetch(ctx)

		// Channels must still close.
		for range itemsCh {
		}
		for range errsCh {
		}
	})
}

func TestConnector_Close(t *testing.T) {
	assert.NoError(t, New("src-1", "/tmp").Close())
}
