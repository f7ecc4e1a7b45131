// Package filesystem provides the local-directory ingestion source.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// maxFileSize bounds what a single file may contribute. Larger files are
// skipped rather than truncated.
const maxFileSize = 10 * 1024 * 1024

// Ensure Connector implements the interface.
var _ driven.Source = (*Connector)(nil)

// Connector walks a directory tree and emits matching files.
// Hidden files and directories are always skipped.
type Connector struct {
	sourceID string
	rootPath string
	includes []string
	excludes []string
}

// Option configures the connector.
type Option func(*Connector)

// WithIncludes sets include glob patterns, relative to the root.
// Defaults to every file.
func WithIncludes(patterns []string) Option {
	return func(c *Connector) {
		if len(patterns) > 0 {
			c.includes = patterns
		}
	}
}

// WithExcludes sets exclude glob patterns, relative to the root.
func WithExcludes(patterns []string) Option {
	return func(c *Connector) {
		c.excludes = patterns
	}
}

// New creates a filesystem connector rooted at rootPath.
func New(sourceID, rootPath string, opts ...Option) *Connector {
	c := &Connector{
		sourceID: sourceID,
		rootPath: rootPath,
		includes: []string{"**/*"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the source type identifier.
func (c *Connector) Type() domain.SourceType {
	return domain.SourceTypeFilesystem
}

// SourceID returns the configured source ID.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Validate checks the root path exists and is a readable directory.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.rootPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", c.rootPath)
	}
	if err != nil {
		return fmt.Errorf("stat path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", c.rootPath)
	}
	if _, err := os.ReadDir(c.rootPath); err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	return nil
}

// Fetch walks the tree and streams matching files.
func (c *Connector) Fetch(ctx context.Context) (<-chan domain.SourceItem, <-chan error) {
	itemsCh := make(chan domain.SourceItem)
	errsCh := make(chan error, 1)

	go func() {
		defer close(itemsCh)
		defer close(errsCh)

		if err := c.Validate(ctx); err != nil {
			errsCh <- err
			return
		}

		root, err := filepath.Abs(c.rootPath)
		if err != nil {
			errsCh <- fmt.Errorf("resolve root: %w", err)
			return
		}

		walkErr := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}

			if entry.IsDir() {
				if path != root && isHidden(entry.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if isHidden(entry.Name()) {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if !c.matches(rel) {
				return nil
			}

			item, ok, err := c.readItem(path, entry)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			select {
			case itemsCh <- item:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})

		if walkErr != nil && walkErr != ctx.Err() {
			errsCh <- walkErr
		}
	}()

	return itemsCh, errsCh
}

// Close releases resources. The connector holds none.
func (c *Connector) Close() error {
	return nil
}

// matches applies include then exclude globs to a slash-separated
// relative path.
func (c *Connector) matches(rel string) bool {
	rel = filepath.ToSlash(rel)

	included := false
	for _, pattern := range c.includes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, pattern := range c.excludes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return false
		}
	}
	return true
}

// readItem loads one file into a source item. Returns ok=false for
// files that should be skipped silently.
func (c *Connector) readItem(path string, entry os.DirEntry) (domain.SourceItem, bool, error) {
	info, err := entry.Info()
	if err != nil {
		return domain.SourceItem{}, false, err
	}
	if info.Size() > maxFileSize {
		return domain.SourceItem{}, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceItem{}, false, err
	}

	name := entry.Name()
	return domain.SourceItem{
		SourceID: c.sourceID,
		URI:      path,
		Title:    name,
		MIMEType: domain.MIMETypeForFile(path),
		Content:  content,
		Metadata: map[string]any{
			"filename":    name,
			"extension":   strings.TrimPrefix(filepath.Ext(name), "."),
			"size_bytes":  info.Size(),
			"modified_at": info.ModTime().UTC().Format(time.RFC3339),
		},
	}, true, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
