package gdrive

import (
	"context"
	"fmt"

	"github.com/custodia-labs/memora-cli/internal/connectors"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

var _ driven.SourceResolver = (*Resolver)(nil)

// TokenFunc supplies the Drive access token at resolve time, typically
// backed by the gdrive.token setting.
type TokenFunc func() string

// Resolver builds Drive connectors from stored source configurations.
//
// Recognised config keys:
//
//	folder_id - Drive folder to ingest (required)
//	token     - access token overriding the global gdrive.token setting
type Resolver struct {
	token TokenFunc
}

// NewResolver creates a Drive source resolver. token may be nil when no
// global token is configured.
func NewResolver(token TokenFunc) *Resolver {
	return &Resolver{token: token}
}

// Type returns the source type this resolver handles.
func (r *Resolver) Type() domain.SourceType {
	return domain.SourceTypeGoogleDrive
}

// Resolve builds a Drive connector from the source configuration.
func (r *Resolver) Resolve(ctx context.Context, source domain.Source) (driven.Source, error) {
	folderID := connectors.StringValue(source.Config, "folder_id")
	if folderID == "" {
		return nil, fmt.Errorf("%w: folder_id is required", domain.ErrSourceValidation)
	}

	token := connectors.StringValue(source.Config, "token")
	if token == "" && r.token != nil {
		token = r.token()
	}
	if token == "" {
		return nil, fmt.Errorf("%w: no access token configured", domain.ErrSourceValidation)
	}

	return New(ctx, source.ID, folderID, token)
}
