package driving

import (
	"context"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

// RetrievalService answers query-by-text over the slide index.
type RetrievalService interface {
	// Search embeds the query text and returns up to TopK slide
	// summaries in ascending distance order. Embedding failure
	// yields an empty list, never an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SlideHit, error)

	// Lookup returns the stored record for one slide of one deck,
	// exactly as indexed (no similarity involved).
	Lookup(ctx context.Context, sourceName string, slideIndex int) (*domain.SlideRecord, error)
}
