package driving

import "context"

// DeckInfo describes one deck of the source library.
type DeckInfo struct {
	// Key is the byte-store key.
	Key string

	// Indexed reports whether any slide record exists for the deck.
	Indexed bool

	// Slides is the number of indexed slide records.
	Slides int
}

// LibraryService manages the source deck library.
type LibraryService interface {
	// Upload stores deck bytes under key and ingests them.
	Upload(ctx context.Context, key string, data []byte) error

	// List returns the library's decks with their index status.
	List(ctx context.Context) ([]DeckInfo, error)

	// Remove deletes a deck from both the index and the byte store.
	Remove(ctx context.Context, key string) error
}
