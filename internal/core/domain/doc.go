// Package domain defines the core business entities for hybrid-rag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A unit of source content with metadata
//   - Chunk: A bounded passage of a document, the unit scored during search
//   - PlatformRecord: An external source record mapped into a Document
//   - SearchQuery / SearchResponse: The request and answer of a search
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
