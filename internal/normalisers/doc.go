// Package normalisers converts fetched source items into clean text for
// storage. Each normaliser handles specific MIME types; the Registry
// routes items to the right one. Items whose MIME type no normaliser
// claims are skipped during ingestion rather than stored raw.
package normalisers
