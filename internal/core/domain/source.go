package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Source is a configured ingestion source.
// Sources are registered once and ingested on demand; there is no
// background synchronisation.
type Source struct {
	// ID is the unique source identifier.
	ID string

	// Name is the human-readable display name.
	Name string

	// Type identifies the source implementation.
	Type SourceType

	// Config contains type-specific settings (path, globs, repo, folder).
	Config map[string]any

	// CreatedAt is when the source was registered.
	CreatedAt time.Time

	// UpdatedAt is when the source configuration last changed.
	UpdatedAt time.Time
}

// SourceItem is one unit of content fetched from a source, before
// normalisation. Items with unsupported MIME types are skipped during
// ingestion rather than stored raw.
type SourceItem struct {
	// SourceID links to the Source that produced this item.
	SourceID string

	// URI is the original location (file path, issue URL, Drive file ID).
	URI string

	// Title is a display name for the item, when the source provides one.
	Title string

	// MIMEType is the content type (e.g. "text/markdown").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains source-specific key-value pairs carried onto the
	// stored document.
	Metadata map[string]any
}

// MIME types recognised during ingestion.
const (
	MIMETypePlainText = "text/plain"
	MIMETypeMarkdown  = "text/markdown"
)

// MIMETypeForFile maps a file path to a MIME type by extension.
// Unknown extensions map to application/octet-stream, which no
// normaliser accepts, so those files are skipped rather than stored raw.
func MIMETypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown":
		return MIMETypeMarkdown
	case ".txt", ".text", ".log", ".rst":
		return MIMETypePlainText
	case ".go":
		return "text/x-go"
	case ".py":
		return "text/x-python"
	case ".rb":
		return "text/x-ruby"
	case ".sh":
		return "text/x-shellscript"
	case ".sql":
		return "text/x-sql"
	case ".js":
		return "text/javascript"
	case ".ts":
		return "text/typescript"
	case ".css":
		return "text/css"
	case ".html", ".htm":
		return "text/html"
	case ".csv":
		return "text/csv"
	case ".yaml", ".yml":
		return "text/yaml"
	case ".toml":
		return "text/toml"
	case ".json":
		return "application/json"
	case ".xml":
		return "application/xml"
	default:
		return "application/octet-stream"
	}
}
