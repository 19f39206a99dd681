package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
	"github.com/ferrous-labs/deckdex-cli/internal/logger"
	"github.com/ferrous-labs/deckdex-cli/internal/tagger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// deckExtensions are the byte-store suffixes treated as decks.
var deckExtensions = []string{".pptx", ".ppt"}

// IngestService turns deck files into indexed slide records.
//
// Ingestion is idempotent at deck granularity: a deck whose source
// name already has any record in the index is skipped whole. A
// per-deck mutex makes the duplicate check and the insert atomic with
// respect to concurrent ingestion of the same deck.
type IngestService struct {
	store     driven.ByteStore
	extractor driven.SlideExtractor
	embedder  driven.EmbeddingService
	index     driven.SlideIndex

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	store driven.ByteStore,
	extractor driven.SlideExtractor,
	embedder driven.EmbeddingService,
	index driven.SlideIndex,
) *IngestService {
	return &IngestService{
		store:     store,
		extractor: extractor,
		embedder:  embedder,
		index:     index,
		locks:     make(map[string]*sync.Mutex),
	}
}

// IngestAll processes every deck in the byte store. One deck's failure
// never stops the batch.
func (s *IngestService) IngestAll(ctx context.Context) ([]driving.IngestResult, error) {
	keys, err := s.store.List(ctx, deckExtensions...)
	if err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}

	logger.Section("Ingestion")
	logger.Info("found %d deck(s) in the library", len(keys))

	results := make([]driving.IngestResult, 0, len(keys))
	for _, key := range keys {
		result := s.IngestOne(ctx, key)
		if result.Outcome == driving.OutcomeFailed {
			logger.Warn("ingest %s failed: %v", key, result.Err)
		}
		results = append(results, result)
	}
	return results, nil
}

// IngestOne processes a single deck by byte-store key.
func (s *IngestService) IngestOne(ctx context.Context, sourceName string) driving.IngestResult {
	unlock := s.lock(sourceName)
	defer unlock()

	result := driving.IngestResult{SourceName: sourceName}

	data, err := s.store.Get(ctx, sourceName)
	if err != nil {
		result.Outcome = driving.OutcomeFailed
		result.Err = fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, sourceName, err)
		return result
	}

	slides, err := s.extractor.ExtractDeck(ctx, data)
	if err != nil {
		result.Outcome = driving.OutcomeFailed
		result.Err = err
		return result
	}
	if len(slides) == 0 {
		logger.Info("no slides found in %s", sourceName)
		result.Outcome = driving.OutcomeSkippedEmpty
		return result
	}

	indexed, err := s.alreadyIndexed(ctx, sourceName)
	if err != nil {
		result.Outcome = driving.OutcomeFailed
		result.Err = err
		return result
	}
	if indexed {
		logger.Info("skipping %s - already indexed", sourceName)
		result.Outcome = driving.OutcomeSkippedDuplicate
		return result
	}

	records, err := s.buildRecords(ctx, sourceName, slides)
	if err != nil {
		result.Outcome = driving.OutcomeFailed
		result.Err = err
		return result
	}

	if err := s.index.EnsureCollection(ctx, s.embedder.Dimensions()); err != nil {
		result.Outcome = driving.OutcomeFailed
		result.Err = err
		return result
	}
	if err := s.index.Insert(ctx, records); err != nil {
		result.Outcome = driving.OutcomeFailed
		result.Err = err
		return result
	}

	logger.Info("indexed %d slides from %s", len(records), sourceName)
	result.Outcome = driving.OutcomeIndexed
	result.Slides = len(records)
	return result
}

// Remove deletes a deck's index records and its byte-store entry.
func (s *IngestService) Remove(ctx context.Context, sourceName string) error {
	unlock := s.lock(sourceName)
	defer unlock()

	if err := s.index.DeleteByFilter(ctx, driven.Filter{
		driven.FieldSourceName: sourceName,
	}); err != nil {
		return fmt.Errorf("deleting index records for %s: %w", sourceName, err)
	}

	if err := s.store.Delete(ctx, sourceName); err != nil {
		return fmt.Errorf("deleting %s from library: %w", sourceName, err)
	}

	logger.Info("removed %s", sourceName)
	return nil
}

// buildRecords tags and embeds every slide of a deck. Embedding is
// all-or-nothing: a short or failed batch abandons the deck.
func (s *IngestService) buildRecords(
	ctx context.Context,
	sourceName string,
	slides []domain.ExtractedSlide,
) ([]domain.SlideRecord, error) {
	base := domain.SourceBase(sourceName)
	indexedAt := time.Now().UTC().Format(time.RFC3339)

	texts := make([]string, len(slides))
	for i, slide := range slides {
		texts[i] = slide.Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(embeddings) != len(slides) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d slides",
			domain.ErrEmbeddingUnavailable, len(embeddings), len(slides))
	}

	records := make([]domain.SlideRecord, len(slides))
	for i, slide := range slides {
		records[i] = domain.SlideRecord{
			ID:           uuid.NewString(),
			SourceName:   sourceName,
			SourceBase:   base,
			SlideIndex:   slide.Index,
			SlideLocalID: domain.SlideLocalID(base, slide.Index),
			Title:        domain.TitleOf(slide.Text),
			Text:         slide.Text,
			Tags:         tagger.Tag(slide.Text),
			Embedding:    embeddings[i],
			IndexedAt:    indexedAt,
		}
	}
	return records, nil
}

// alreadyIndexed reports whether any record exists for the deck.
func (s *IngestService) alreadyIndexed(ctx context.Context, sourceName string) (bool, error) {
	records, err := s.index.GetByFilter(ctx, driven.Filter{
		driven.FieldSourceName: sourceName,
	}, 1)
	if err != nil {
		return false, fmt.Errorf("checking for existing records: %w", err)
	}
	return len(records) > 0, nil
}

// lock acquires the per-deck mutex and returns its release func.
func (s *IngestService) lock(sourceName string) func() {
	s.mu.Lock()
	m, ok := s.locks[sourceName]
	if !ok {
		m = &sync.Mutex{}
		s.locks[sourceName] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}
