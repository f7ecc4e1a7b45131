package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/memora-cli/internal/connectors"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

var _ driven.SourceResolver = (*Resolver)(nil)

// TokenFunc supplies the GitHub token at resolve time, typically backed
// by the github.token setting.
type TokenFunc func() string

// Resolver builds GitHub connectors from stored source configurations.
//
// Recognised config keys:
//
//	repo          - "owner/name" of the repository (required)
//	token         - access token overriding the global github.token setting
//	content_types - subset of "issues", "prs" (default: both)
type Resolver struct {
	token TokenFunc
}

// NewResolver creates a GitHub source resolver. token may be nil when no
// global token is configured.
func NewResolver(token TokenFunc) *Resolver {
	return &Resolver{token: token}
}

// Type returns the source type this resolver handles.
func (r *Resolver) Type() domain.SourceType {
	return domain.SourceTypeGitHub
}

// Resolve builds a GitHub connector from the source configuration.
func (r *Resolver) Resolve(_ context.Context, source domain.Source) (driven.Source, error) {
	repoSpec := connectors.StringValue(source.Config, "repo")
	if repoSpec == "" {
		return nil, fmt.Errorf("%w: repo is required", domain.ErrSourceValidation)
	}

	owner, repo, err := splitRepo(repoSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceValidation, err)
	}

	token := connectors.StringValue(source.Config, "token")
	if token == "" && r.token != nil {
		token = r.token()
	}

	var opts []Option
	if types := contentTypes(source.Config); len(types) > 0 {
		opts = append(opts, WithContentTypes(types))
	}

	return New(source.ID, owner, repo, token, opts...), nil
}

func splitRepo(spec string) (owner, repo string, err error) {
	parts := strings.Split(spec, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repo must be owner/name, got %q", spec)
	}
	return parts[0], parts[1], nil
}

func contentTypes(config map[string]any) []ContentType {
	values := connectors.StringSliceValue(config, "content_types")
	types := make([]ContentType, 0, len(values))
	for _, v := range values {
		switch ContentType(strings.ToLower(v)) {
		case ContentIssues:
			types = append(types, ContentIssues)
		case ContentPullRequests:
			types = append(types, ContentPullRequests)
		}
	}
	return types
}
