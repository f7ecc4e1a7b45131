package gdrive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/logger"
)

// Google Workspace MIME types. Native files have no byte content and must
// be exported to a concrete format.
const (
	mimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	mimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	mimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	mimeTypeFolder       = "application/vnd.google-apps.folder"
)

// Export formats for Google Workspace files.
const (
	exportMimeText = "text/plain"
	exportMimeCSV  = "text/csv"
)

// maxExportSize caps downloaded and exported content at 5MB.
const maxExportSize = 5 * 1024 * 1024

// pageSize is the Drive listing page size.
const pageSize = 100

// requestsPerSecond paces Drive API calls well below the default
// per-user quota.
const requestsPerSecond = 10

var _ driven.Source = (*Connector)(nil)

// Connector fetches text content from a Google Drive folder.
type Connector struct {
	sourceID string
	folderID string
	svc      *drive.Service
	limiter  *rate.Limiter
}

// Option configures a Connector.
type Option func(*Connector)

// WithService sets a pre-built Drive service. Used in tests to point the
// connector at a stub server.
func WithService(svc *drive.Service) Option {
	return func(c *Connector) {
		c.svc = svc
	}
}

// New creates a Drive connector for the given folder. The token is an
// OAuth2 access token with at least drive.readonly scope.
func New(ctx context.Context, sourceID, folderID, token string, opts ...Option) (*Connector, error) {
	c := &Connector{
		sourceID: sourceID,
		folderID: folderID,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.svc == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
		if err != nil {
			return nil, fmt.Errorf("create drive service: %w", err)
		}
		c.svc = svc
	}

	return c, nil
}

// Type returns the source type identifier.
func (c *Connector) Type() domain.SourceType {
	return domain.SourceTypeGoogleDrive
}

// SourceID returns the configured source ID.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Validate checks the folder exists and is actually a folder.
func (c *Connector) Validate(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	file, err := c.svc.Files.Get(c.folderID).Fields("id, mimeType").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("folder %s: %w", c.folderID, wrapError(err))
	}
	if file.MimeType != mimeTypeFolder {
		return fmt.Errorf("drive id %s is not a folder", c.folderID)
	}
	return nil
}

// Fetch streams the folder's files as source items. Google Docs are
// exported to plain text, Sheets to CSV; regular files are downloaded
// when they hold text. Binary and oversized files are skipped.
func (c *Connector) Fetch(ctx context.Context) (<-chan domain.SourceItem, <-chan error) {
	itemsCh := make(chan domain.SourceItem)
	errsCh := make(chan error, 1)

	go func() {
		defer close(itemsCh)
		defer close(errsCh)

		pageToken := ""
		for {
			files, nextToken, err := c.listPage(ctx, pageToken)
			if err != nil {
				errsCh <- fmt.Errorf("list folder: %w", err)
				return
			}

			for _, file := range files {
				item, ok, err := c.fileItem(ctx, file)
				if err != nil {
					logger.Debug("gdrive: skipping %s: %v", file.Name, err)
					continue
				}
				if !ok {
					continue
				}

				select {
				case itemsCh <- item:
				case <-ctx.Done():
					errsCh <- ctx.Err()
					return
				}
			}

			if nextToken == "" {
				return
			}
			pageToken = nextToken
		}
	}()

	return itemsCh, errsCh
}

// Close releases resources. The Drive client needs no explicit shutdown.
func (c *Connector) Close() error {
	return nil
}

func (c *Connector) listPage(ctx context.Context, pageToken string) ([]*drive.File, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	call := c.svc.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed = false", c.folderID)).
		Fields("nextPageToken, files(id, name, mimeType, size, webViewLink, modifiedTime)").
		PageSize(pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	list, err := call.Do()
	if err != nil {
		return nil, "", wrapError(err)
	}
	return list.Files, list.NextPageToken, nil
}

// fileItem converts one Drive file into a source item. ok is false for
// files that should be silently skipped.
func (c *Connector) fileItem(ctx context.Context, file *drive.File) (domain.SourceItem, bool, error) {
	if file.MimeType == mimeTypeFolder {
		return domain.SourceItem{}, false, nil
	}

	content, mimeType, err := c.fileContent(ctx, file)
	if err != nil {
		return domain.SourceItem{}, false, err
	}
	if content == nil {
		return domain.SourceItem{}, false, nil
	}

	metadata := map[string]any{
		"file_id": file.Id,
	}
	if file.Size > 0 {
		metadata["size_bytes"] = file.Size
	}
	if file.WebViewLink != "" {
		metadata["web_link"] = file.WebViewLink
	}
	if file.ModifiedTime != "" {
		metadata["modified_at"] = file.ModifiedTime
	}

	return domain.SourceItem{
		SourceID: c.sourceID,
		URI:      "gdrive://" + file.Id,
		Title:    file.Name,
		MIMEType: mimeType,
		Content:  content,
		Metadata: metadata,
	}, true, nil
}

// fileContent returns the file bytes and their MIME type, or nil content
// for files that cannot be read as text.
func (c *Connector) fileContent(ctx context.Context, file *drive.File) ([]byte, string, error) {
	switch file.MimeType {
	case mimeTypeGoogleDoc, mimeTypeGoogleSlides:
		data, err := c.export(ctx, file.Id, exportMimeText)
		return data, exportMimeText, err
	case mimeTypeGoogleSheet:
		data, err := c.export(ctx, file.Id, exportMimeCSV)
		return data, exportMimeCSV, err
	}

	mimeType := file.MimeType
	if mimeType == "" || mimeType == "application/octet-stream" {
		// Drive reports octet-stream for many uploads; fall back to the
		// filename extension.
		mimeType = domain.MIMETypeForFile(file.Name)
	}
	if !isTextMIME(mimeType) || file.Size > maxExportSize {
		return nil, "", nil
	}

	data, err := c.download(ctx, file.Id)
	return data, mimeType, err
}

func (c *Connector) export(ctx context.Context, fileID, exportMime string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.Export(fileID, exportMime).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("export: %w", wrapError(err))
	}
	return readLimited(resp)
}

func (c *Connector) download(ctx context.Context, fileID string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download: %w", wrapError(err))
	}
	return readLimited(resp)
}

func readLimited(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExportSize))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return data, nil
}

func isTextMIME(mimeType string) bool {
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}
	switch mimeType {
	case "application/json", "application/xml", "application/javascript",
		"application/x-yaml", "application/x-sh", "application/sql":
		return true
	}
	return false
}

// wrapError maps googleapi errors onto domain sentinels.
func wrapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}
	}
	return err
}
