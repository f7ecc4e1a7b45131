// Package migrations carries the versioned schema for the memory store.
package migrations

import "embed"

// FS holds the numbered *.up.sql files; the store applies them in order
// at open time.
//
//go:embed *.sql
var FS embed.FS
