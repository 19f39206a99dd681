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
//   - ByteStore: Source deck bytes (put/list/get/delete)
//   - SlideExtractor: Per-slide text extraction from deck bytes
//   - SlideIndex: Vector + metadata persistence and similarity search
//   - EmbeddingService: Text to vector conversion
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Question generation and bullet synthesis are
//     disabled without it.
//   - DeckRenderer: Deck generation hand-off is disabled without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
