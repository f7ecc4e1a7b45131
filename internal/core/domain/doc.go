// Package domain defines the core business entities for Memora.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An immutable unit of stored text plus metadata
//   - ContextHandle: A bounded reference to a document (summary, never full text)
//   - QueryMatch: A ranked similarity hit
//   - EmbeddingStrategy: The similarity strategy fixed at construction
//   - Source: A configured ingestion source
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
