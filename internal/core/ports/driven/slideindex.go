package driven

import (
	"context"
	"fmt"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

// Metadata field keys shared by every SlideIndex implementation.
// slide_index is stored and filtered as an integer, title, tags and
// the name fields as strings. Filters must use these exact keys.
const (
	FieldSourceName = "source_name"
	FieldSourceBase = "source_base"
	FieldSlideID    = "slide_id"
	FieldSlideIndex = "slide_index"
	FieldTitle      = "title"
	FieldTags       = "tags"
	FieldIndexedAt  = "indexed_at"
)

// Filter is a conjunction of exact-match metadata conditions. All
// conditions must hold for a record to match. Values must be scalar;
// composite values are rejected at the boundary rather than silently
// mangled.
type Filter map[string]any

// Validate rejects non-scalar filter values. Accepted types are
// string, int, int64 and float64.
func (f Filter) Validate() error {
	for key, value := range f {
		switch value.(type) {
		case string, int, int64, float64:
		default:
			return fmt.Errorf("%w: field %q has type %T", domain.ErrNonScalarMetadata, key, value)
		}
	}
	return nil
}

// SlideIndex persists slide records with their vectors and answers
// similarity queries over them. Implementations are opened once per
// process and reused across operations.
//
// Inserts are batched and atomic only from the caller's point of
// view: a returned error means none of the batch is guaranteed
// stored. Record IDs are freshly generated per attempt, so a blind
// retry after a partial failure can create duplicates; the ingestion
// pipeline guards against that with its dedup pre-check, not with a
// transactional insert.
type SlideIndex interface {
	// EnsureCollection creates the backing collection for the given
	// vector dimension if it does not exist yet.
	EnsureCollection(ctx context.Context, dimensions int) error

	// Insert stores a batch of records.
	Insert(ctx context.Context, records []domain.SlideRecord) error

	// Query returns up to topK nearest records by vector distance,
	// ordered by ascending distance. A nil filter matches everything.
	Query(ctx context.Context, vector []float32, topK int, filter Filter) ([]domain.SlideHit, error)

	// GetByFilter returns records matching the filter exactly, with
	// no vector involved. limit <= 0 means no limit.
	GetByFilter(ctx context.Context, filter Filter, limit int) ([]domain.SlideRecord, error)

	// DeleteByFilter removes every record matching the filter.
	DeleteByFilter(ctx context.Context, filter Filter) error

	// Close releases resources.
	Close() error
}
