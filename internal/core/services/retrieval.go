package services

import (
	"context"
	"fmt"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
	"github.com/ferrous-labs/deckdex-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the result count used when the caller does not set one.
const DefaultTopK = 5

// RetrievalService answers query-by-text over the slide index.
type RetrievalService struct {
	embedder driven.EmbeddingService
	index    driven.SlideIndex
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, index driven.SlideIndex) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		index:    index,
	}
}

// Search embeds the query and returns up to TopK hits in ascending
// distance order. A failed query embedding or index query degrades to
// an empty result list rather than an error.
func (s *RetrievalService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SlideHit, error) {
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Section("Search")
	logger.Debug("query: %q (top %d)", query, topK)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("query embedding failed: %v", err)
		return []domain.SlideHit{}, nil
	}

	// Only the first tag is applied; the index filter is a single
	// equality condition.
	var filter driven.Filter
	if len(opts.Tags) > 0 {
		filter = driven.Filter{driven.FieldTags: opts.Tags[0]}
		logger.Debug("filtering on tag %q", opts.Tags[0])
	}

	hits, err := s.index.Query(ctx, vector, topK, filter)
	if err != nil {
		logger.Warn("index query failed: %v", err)
		return []domain.SlideHit{}, nil
	}

	logger.Debug("found %d hit(s)", len(hits))
	return hits, nil
}

// Lookup returns the stored record for one slide of one deck.
func (s *RetrievalService) Lookup(ctx context.Context, sourceName string, slideIndex int) (*domain.SlideRecord, error) {
	records, err := s.index.GetByFilter(ctx, driven.Filter{
		driven.FieldSourceName: sourceName,
		driven.FieldSlideIndex: slideIndex,
	}, 1)
	if err != nil {
		return nil, fmt.Errorf("looking up %s slide %d: %w", sourceName, slideIndex, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s slide %d", domain.ErrNotFound, sourceName, slideIndex)
	}
	return &records[0], nil
}
