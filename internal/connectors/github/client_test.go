package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// newTestClient starts a stub API server and returns a client pointed at
// it. The proactive token bucket is lifted so tests run at full speed.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClientWithHTTPClient(srv.Client())
	require.NoError(t, client.SetBaseURL(srv.URL))
	client.rateLimiter.bucket.SetLimit(rate.Inf)

	return client
}

func TestNewClient(t *testing.T) {
	t.Run("creates client with token", func(t *testing.T) {
		client := NewClient(context.Background(), "ghp_test_token")

		require.NotNil(t, client)
		assert.NotNil(t, client.RateLimiter())
		assert.Equal(t, authenticatedLimit, client.RateLimiter().Remaining())
	})

	t.Run("creates client without token", func(t *testing.T) {
		client := NewClient(context.Background(), "")

		require.NotNil(t, client)
		assert.NotNil(t, client.RateLimiter())
	})
}

func TestClient_SetBaseURL(t *testing.T) {
	t.Run("appends trailing slash", func(t *testing.T) {
		client := NewClient(context.Background(), "")

		err := client.SetBaseURL("http://127.0.0.1:9999/api/v3")

		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:9999/api/v3/", client.gh.BaseURL.String())
	})

	t.Run("rejects unparseable URL", func(t *testing.T) {
		client := NewClient(context.Background(), "")

		err := client.SetBaseURL("http://bad url with spaces")

		assert.Error(t, err)
	})
}

func TestClient_GetRepository(t *testing.T) {
	t.Run("fetches repository", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/octo/memora", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"name": "memora", "full_name": "octo/memora", "private": false}`)
		})
		client := newTestClient(t, mux)

		repo, err := client.GetRepository(context.Background(), "octo", "memora")

		require.NoError(t, err)
		assert.Equal(t, "octo/memora", repo.GetFullName())
	})

	t.Run("maps 404 to not found", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/octo/missing", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		})
		client := newTestClient(t, mux)

		_, err := client.GetRepository(context.Background(), "octo", "missing")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestClient_ListIssues(t *testing.T) {
	t.Run("follows pagination", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/octo/memora/issues", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `[{"number": 3, "title": "Third"}]`)
				return
			}
			w.Header().Set("Link", `</repos/octo/memora/issues?page=2>; rel="next"`)
			fmt.Fprint(w, `[{"number": 1, "title": "First"}, {"number": 2, "title": "Second"}]`)
		})
		client := newTestClient(t, mux)

		issues, err := client.ListIssues(context.Background(), "octo", "memora")

		require.NoError(t, err)
		require.Len(t, issues, 3)
		assert.Equal(t, 1, issues[0].GetNumber())
		assert.Equal(t, 3, issues[2].GetNumber())
	})

	t.Run("requests all states", func(t *testing.T) {
		var gotState string
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/octo/memora/issues", func(w http.ResponseWriter, r *http.Request) {
			gotState = r.URL.Query().Get("state")
			fmt.Fprint(w, `[]`)
		})
		client := newTestClient(t, mux)

		_, err := client.ListIssues(context.Background(), "octo", "memora")

		require.NoError(t, err)
		assert.Equal(t, "all", gotState)
	})

	t.Run("propagates API errors", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/octo/memora/issues", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message": "boom"}`)
		})
		client := newTestClient(t, mux)

		_, err := client.ListIssues(context.Background(), "octo", "memora")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "list issues")
	})
}

func TestClient_ListIssueComments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/memora/issues/7/comments", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"body": "First comment", "user": {"login": "alice"}}]`)
	})
	client := newTestClient(t, mux)

	comments, err := client.ListIssueComments(context.Background(), "octo", "memora", 7)

	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "First comment", comments[0].GetBody())
	assert.Equal(t, "alice", comments[0].GetUser().GetLogin())
}

func TestClient_ListPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/memora/pulls", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"number": 12, "title": "Add retries", "state": "open"}]`)
	})
	client := newTestClient(t, mux)

	prs, err := client.ListPullRequests(context.Background(), "octo", "memora")

	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 12, prs[0].GetNumber())
	assert.Equal(t, "Add retries", prs[0].GetTitle())
}

func TestClient_ListPullRequestReviews(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/memora/pulls/12/reviews", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"state": "APPROVED", "body": "LGTM", "user": {"login": "bob"}}]`)
	})
	client := newTestClient(t, mux)

	reviews, err := client.ListPullRequestReviews(context.Background(), "octo", "memora", 12)

	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "APPROVED", reviews[0].GetState())
}

func TestClient_UpdatesRateLimiterFromResponse(t *testing.T) {
	reset := time.Now().Add(30 * time.Minute).Unix()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/memora", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "4870")
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset))
		fmt.Fprint(w, `{"name": "memora"}`)
	})
	client := newTestClient(t, mux)

	_, err := client.GetRepository(context.Background(), "octo", "memora")

	require.NoError(t, err)
	assert.Equal(t, 4870, client.RateLimiter().Remaining())
	assert.Equal(t, time.Unix(reset, 0), client.RateLimiter().ResetTime())
}

func TestClient_WrapError(t *testing.T) {
	client := NewClient(context.Background(), "")

	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, client.wrapError(nil, "op"))
	})

	t.Run("rate limit error maps to sentinel", func(t *testing.T) {
		ghErr := &gh.RateLimitError{
			Rate: gh.Rate{Limit: 5000, Remaining: 0},
		}

		err := client.wrapError(ghErr, "list issues")

		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})

	t.Run("abuse rate limit error maps to sentinel", func(t *testing.T) {
		ghErr := &gh.AbuseRateLimitError{}

		err := client.wrapError(ghErr, "list issues")

		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})

	t.Run("404 response maps to not found", func(t *testing.T) {
		ghErr := &gh.ErrorResponse{
			Response: &http.Response{StatusCode: http.StatusNotFound},
			Message:  "Not Found",
		}

		err := client.wrapError(ghErr, "get repository")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("other errors keep the operation context", func(t *testing.T) {
		err := client.wrapError(errors.New("connection refused"), "list pull requests")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "list pull requests")
		assert.Contains(t, err.Error(), "connection refused")
	})
}
