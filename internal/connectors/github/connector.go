package github

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/memora-cli/internal/logger"
)

// ContentType selects which repository content a connector fetches.
type ContentType string

const (
	// ContentIssues fetches issues with their comments.
	ContentIssues ContentType = "issues"

	// ContentPullRequests fetches pull requests with reviews and comments.
	ContentPullRequests ContentType = "prs"
)

var _ driven.Source = (*Connector)(nil)

// Connector fetches issues and pull requests from a GitHub repository and
// renders them as markdown documents.
type Connector struct {
	sourceID     string
	owner        string
	repo         string
	contentTypes []ContentType
	client       *Client
}

// Option configures a Connector.
type Option func(*Connector)

// WithClient sets a pre-built API client. Used in tests to point the
// connector at a stub server.
func WithClient(client *Client) Option {
	return func(c *Connector) {
		c.client = client
	}
}

// WithContentTypes limits fetching to the given content types.
func WithContentTypes(types []ContentType) Option {
	return func(c *Connector) {
		if len(types) > 0 {
			c.contentTypes = types
		}
	}
}

// New creates a GitHub connector for owner/repo. Without WithClient an
// unauthenticated client is built on first use.
func New(sourceID, owner, repo, token string, opts ...Option) *Connector {
	c := &Connector{
		sourceID:     sourceID,
		owner:        owner,
		repo:         repo,
		contentTypes: []ContentType{ContentIssues, ContentPullRequests},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = NewClient(context.Background(), token)
	}

	return c
}

// Type returns the source type identifier.
func (c *Connector) Type() domain.SourceType {
	return domain.SourceTypeGitHub
}

// SourceID returns the configured source ID.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Validate checks the repository exists and is readable with the
// configured credentials.
func (c *Connector) Validate(ctx context.Context) error {
	if _, err := c.client.GetRepository(ctx, c.owner, c.repo); err != nil {
		return fmt.Errorf("repository %s/%s: %w", c.owner, c.repo, err)
	}
	return nil
}

// Fetch streams issues and pull requests as markdown items.
func (c *Connector) Fetch(ctx context.Context) (<-chan domain.SourceItem, <-chan error) {
	itemsCh := make(chan domain.SourceItem)
	errsCh := make(chan error, 1)

	go func() {
		defer close(itemsCh)
		defer close(errsCh)

		for _, ct := range c.contentTypes {
			var err error
			switch ct {
			case ContentIssues:
				err = c.fetchIssues(ctx, itemsCh)
			case ContentPullRequests:
				err = c.fetchPullRequests(ctx, itemsCh)
			default:
				logger.Debug("github: skipping unknown content type %q", ct)
			}
			if err != nil {
				errsCh <- err
				return
			}
		}
	}()

	return itemsCh, errsCh
}

// Close releases resources. The GitHub client holds no connections that
// need explicit shutdown.
func (c *Connector) Close() error {
	return nil
}

func (c *Connector) fetchIssues(ctx context.Context, itemsCh chan<- domain.SourceItem) error {
	issues, err := c.client.ListIssues(ctx, c.owner, c.repo)
	if err != nil {
		return fmt.Errorf("fetch issues: %w", err)
	}

	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}

		// Comment failures degrade the document, not the run.
		comments, err := c.client.ListIssueComments(ctx, c.owner, c.repo, issue.GetNumber())
		if err != nil {
			logger.Debug("github: fetching comments for issue #%d failed: %v", issue.GetNumber(), err)
		}

		item := c.issueItem(issue, comments)
		select {
		case itemsCh <- item:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (c *Connector) fetchPullRequests(ctx context.Context, itemsCh chan<- domain.SourceItem) error {
	prs, err := c.client.ListPullRequests(ctx, c.owner, c.repo)
	if err != nil {
		return fmt.Errorf("fetch pull requests: %w", err)
	}

	for _, pr := range prs {
		number := pr.GetNumber()

		reviews, err := c.client.ListPullRequestReviews(ctx, c.owner, c.repo, number)
		if err != nil {
			logger.Debug("github: fetching reviews for pr #%d failed: %v", number, err)
		}
		comments, err := c.client.ListIssueComments(ctx, c.owner, c.repo, number)
		if err != nil {
			logger.Debug("github: fetching comments for pr #%d failed: %v", number, err)
		}

		item := c.pullRequestItem(pr, reviews, comments)
		select {
		case itemsCh <- item:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (c *Connector) issueItem(issue *gh.Issue, comments []*gh.IssueComment) domain.SourceItem {
	text := renderIssue(issue, comments)

	metadata := map[string]any{
		"type":     "issue",
		"owner":    c.owner,
		"repo":     c.repo,
		"number":   int64(issue.GetNumber()),
		"state":    issue.GetState(),
		"author":   issue.GetUser().GetLogin(),
		"html_url": issue.GetHTMLURL(),
	}
	if labels := labelNames(issue.Labels); len(labels) > 0 {
		metadata["labels"] = labels
	}
	addTimestamps(metadata, issue.GetCreatedAt().Time, issue.GetUpdatedAt().Time)

	return domain.SourceItem{
		SourceID: c.sourceID,
		URI:      c.itemURI("issues", issue.GetNumber()),
		Title:    issue.GetTitle(),
		MIMEType: domain.MIMETypeMarkdown,
		Content:  []byte(text),
		Metadata: metadata,
	}
}

func (c *Connector) pullRequestItem(pr *gh.PullRequest, reviews []*gh.PullRequestReview, comments []*gh.IssueComment) domain.SourceItem {
	text := renderPullRequest(pr, reviews, comments)

	metadata := map[string]any{
		"type":     "pull_request",
		"owner":    c.owner,
		"repo":     c.repo,
		"number":   int64(pr.GetNumber()),
		"state":    pr.GetState(),
		"author":   pr.GetUser().GetLogin(),
		"html_url": pr.GetHTMLURL(),
	}
	if labels := labelNames(pr.Labels); len(labels) > 0 {
		metadata["labels"] = labels
	}
	addTimestamps(metadata, pr.GetCreatedAt().Time, pr.GetUpdatedAt().Time)

	return domain.SourceItem{
		SourceID: c.sourceID,
		URI:      c.itemURI("pull", pr.GetNumber()),
		Title:    pr.GetTitle(),
		MIMEType: domain.MIMETypeMarkdown,
		Content:  []byte(text),
		Metadata: metadata,
	}
}

func (c *Connector) itemURI(kind string, number int) string {
	return "github://" + c.owner + "/" + c.repo + "/" + kind + "/" + strconv.Itoa(number)
}

func addTimestamps(metadata map[string]any, created, updated time.Time) {
	if !created.IsZero() {
		metadata["created_at"] = created.UTC().Format(time.RFC3339)
	}
	if !updated.IsZero() {
		metadata["updated_at"] = updated.UTC().Format(time.RFC3339)
	}
}
