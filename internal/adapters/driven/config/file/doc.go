// Package file provides the TOML-backed configuration adapter.
//
// ConfigStore persists settings to ~/.memora/config.toml with nested
// tables ([memory], [embedding], [ingest]) while exposing flat
// dot-notation keys through the driven.ConfigStore port.
package file
