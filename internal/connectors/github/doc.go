// Package github provides an ingestion source for GitHub repositories.
//
// The connector fetches issues and pull requests through the GitHub REST
// API and renders each one, together with its comments and reviews, into
// a single markdown document. Rate limits are respected with a dual
// strategy: a proactive token bucket spaces requests out, and the
// X-RateLimit headers returned by the API trigger a wait when the
// remaining quota runs low.
//
// Works unauthenticated against public repositories, at GitHub's much
// lower anonymous rate limit. Set github.token for private repositories
// and the full quota.
package github
