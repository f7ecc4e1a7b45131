package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Lookups that miss return this sentinel, never a panic; absence is an
	// expected, common case.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity with the same identity or
	// content hash already exists. Add converts it into a read of the
	// existing handle rather than surfacing it.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input, such as blank
	// text passed to Add.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown source or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates no embedding provider is
	// configured. Dense scoring is disabled without one; queries fall back
	// to sparse or lexical scoring instead of failing.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSourceValidation indicates an ingestion source is misconfigured
	// or unreachable.
	ErrSourceValidation = errors.New("source validation failed")

	// ErrRateLimited indicates an upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
