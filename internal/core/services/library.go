package services

import (
	"context"
	"fmt"

	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages the source deck library.
type LibraryService struct {
	store  driven.ByteStore
	index  driven.SlideIndex
	ingest driving.IngestService
}

// NewLibraryService creates a new library service.
func NewLibraryService(store driven.ByteStore, index driven.SlideIndex, ingest driving.IngestService) *LibraryService {
	return &LibraryService{
		store:  store,
		index:  index,
		ingest: ingest,
	}
}

// Upload stores deck bytes under key and ingests them immediately.
func (s *LibraryService) Upload(ctx context.Context, key string, data []byte) error {
	if err := s.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}

	result := s.ingest.IngestOne(ctx, key)
	if result.Outcome == driving.OutcomeFailed {
		return fmt.Errorf("ingesting %s: %w", key, result.Err)
	}
	return nil
}

// List returns the library's decks with their index status.
func (s *LibraryService) List(ctx context.Context) ([]driving.DeckInfo, error) {
	keys, err := s.store.List(ctx, deckExtensions...)
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}

	infos := make([]driving.DeckInfo, 0, len(keys))
	for _, key := range keys {
		records, err := s.index.GetByFilter(ctx, driven.Filter{
			driven.FieldSourceName: key,
		}, 0)
		if err != nil {
			return nil, fmt.Errorf("checking index status of %s: %w", key, err)
		}
		infos = append(infos, driving.DeckInfo{
			Key:     key,
			Indexed: len(records) > 0,
			Slides:  len(records),
		})
	}
	return infos, nil
}

// Remove deletes a deck from both the index and the byte store.
func (s *LibraryService) Remove(ctx context.Context, key string) error {
	return s.ingest.Remove(ctx, key)
}
