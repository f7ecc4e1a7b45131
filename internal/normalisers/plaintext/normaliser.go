package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text and text-like source code documents.
type Normaliser struct{}

// New creates a plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/x-go",
		"text/x-python",
		"text/x-rust",
		"text/x-java",
		"text/x-c",
		"text/x-c++",
		"text/x-ruby",
		"text/x-shellscript",
		"text/x-sql",
		"text/csv",
		"text/yaml",
		"text/toml",
		"text/javascript",
		"text/typescript",
		"text/css",
		"application/json",
		"application/xml",
	}
}

// Normalise returns the item content as text with line endings unified.
func (n *Normaliser) Normalise(_ context.Context, item *domain.SourceItem) (*driven.NormaliseResult, error) {
	if item == nil {
		return nil, domain.ErrInvalidInput
	}

	text := strings.ReplaceAll(string(item.Content), "\r\n", "\n")

	title := item.Title
	if title == "" {
		title = titleFromURI(item.URI)
	}

	return &driven.NormaliseResult{
		Text:  text,
		Title: title,
	}, nil
}

// titleFromURI derives a human-readable title from the item location.
func titleFromURI(uri string) string {
	filename := filepath.Base(uri)

	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}

	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return filename
}
