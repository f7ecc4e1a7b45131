// Package services holds the application core behind the driving ports:
// storing and ranking memory, resolving context handles, ingesting sources,
// and managing settings. Services depend only on the port interfaces, so
// every adapter (SQLite or in-memory, Ollama or OpenAI) is swappable in
// tests and at runtime.
package services
