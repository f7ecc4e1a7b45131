// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - MemoryStore: Document and context-handle persistence
//   - SourceStore: Ingestion source configuration persistence
//   - ConfigStore: Application configuration
//   - Source / SourceResolver: Fetches content for bulk ingestion
//   - Normaliser / NormaliserRegistry: Converts fetched items to clean text
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates dense vectors. Without it, queries are
//     scored by corpus-relative TF-IDF or lexical overlap instead.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
