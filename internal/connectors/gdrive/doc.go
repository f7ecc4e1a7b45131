// Package gdrive provides an ingestion source for Google Drive folders.
//
// The connector lists a single folder and fetches every text file in it.
// Google Docs are exported to plain text and Sheets to CSV; regular files
// are downloaded as-is when their MIME type is textual. Binary files,
// trashed files and anything over 5MB are skipped.
//
// Authentication uses a plain OAuth2 access token with drive.readonly
// scope; there is no interactive flow.
package gdrive
