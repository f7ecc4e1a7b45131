package github

import (
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"
)

// renderIssue converts an issue and its comments into a markdown document.
func renderIssue(issue *gh.Issue, comments []*gh.IssueComment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", issue.GetTitle())
	fmt.Fprintf(&b, "Issue #%d by %s, state: %s\n", issue.GetNumber(), issue.GetUser().GetLogin(), issue.GetState())

	if labels := labelNames(issue.Labels); len(labels) > 0 {
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(labels, ", "))
	}

	if body := strings.TrimSpace(issue.GetBody()); body != "" {
		fmt.Fprintf(&b, "\n%s\n", body)
	}

	writeComments(&b, comments)
	return b.String()
}

// renderPullRequest converts a pull request with its reviews and comments
// into a markdown document.
func renderPullRequest(pr *gh.PullRequest, reviews []*gh.PullRequestReview, comments []*gh.IssueComment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", pr.GetTitle())
	fmt.Fprintf(&b, "Pull request #%d by %s, state: %s\n", pr.GetNumber(), pr.GetUser().GetLogin(), pr.GetState())
	fmt.Fprintf(&b, "Branch: %s -> %s\n", pr.GetHead().GetRef(), pr.GetBase().GetRef())

	if labels := labelNames(pr.Labels); len(labels) > 0 {
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(labels, ", "))
	}

	if body := strings.TrimSpace(pr.GetBody()); body != "" {
		fmt.Fprintf(&b, "\n%s\n", body)
	}

	for _, review := range reviews {
		state := strings.ToLower(review.GetState())
		fmt.Fprintf(&b, "\n## Review by %s (%s)\n", review.GetUser().GetLogin(), state)
		if body := strings.TrimSpace(review.GetBody()); body != "" {
			fmt.Fprintf(&b, "\n%s\n", body)
		}
	}

	writeComments(&b, comments)
	return b.String()
}

func writeComments(b *strings.Builder, comments []*gh.IssueComment) {
	for _, comment := range comments {
		body := strings.TrimSpace(comment.GetBody())
		if body == "" {
			continue
		}
		fmt.Fprintf(b, "\n## Comment by %s\n\n%s\n", comment.GetUser().GetLogin(), body)
	}
}

func labelNames(labels []*gh.Label) []string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		if name := label.GetName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}
