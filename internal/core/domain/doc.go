// Package domain defines the core business entities for Deckdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SlideRecord: One indexed slide of a source deck
//   - ExtractedSlide / SlideStructure: Extraction output
//   - TagSet: Ordered set of topic labels
//   - SlideHit: A similarity search result
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
