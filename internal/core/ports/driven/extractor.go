package driven

import (
	"context"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

// SlideExtractor turns deck file bytes into per-slide plain text.
// Extraction of one deck is all-or-nothing: a corrupt file yields
// domain.ErrSourceUnreadable and no partial slide list. Extraction
// across a batch of decks is independent; one failing deck never
// aborts the others (that policy lives in the ingestion service).
type SlideExtractor interface {
	// ExtractDeck returns the full ordered slide list of a deck.
	ExtractDeck(ctx context.Context, data []byte) ([]domain.ExtractedSlide, error)

	// ExtractSlide returns the richer single-slide structure used
	// for interactive editing. slideIndex is zero-based; an index
	// out of range yields domain.ErrNotFound.
	ExtractSlide(ctx context.Context, data []byte, slideIndex int) (*domain.SlideStructure, error)
}
