package driving

import "context"

// IngestOutcome is the terminal state of one deck's ingestion run.
type IngestOutcome string

const (
	// OutcomeIndexed means the deck's slides were inserted.
	OutcomeIndexed IngestOutcome = "indexed"

	// OutcomeSkippedDuplicate means the deck was already represented
	// in the index and was left untouched.
	OutcomeSkippedDuplicate IngestOutcome = "skipped_duplicate"

	// OutcomeSkippedEmpty means extraction produced zero slides.
	OutcomeSkippedEmpty IngestOutcome = "skipped_empty"

	// OutcomeFailed means the deck was abandoned after an error.
	OutcomeFailed IngestOutcome = "failed"
)

// IngestResult reports what happened to one deck.
type IngestResult struct {
	SourceName string
	Outcome    IngestOutcome
	Slides     int
	Err        error
}

// IngestService drives deck ingestion and removal.
type IngestService interface {
	// IngestAll processes every deck in the byte store. One deck's
	// failure never stops the batch; per-deck outcomes are returned
	// in store listing order.
	IngestAll(ctx context.Context) ([]IngestResult, error)

	// IngestOne processes a single deck by byte-store key.
	IngestOne(ctx context.Context, sourceName string) IngestResult

	// Remove deletes a deck's index records and its byte-store
	// entry. Unlike batch ingestion this is a user-waited action:
	// failures are returned, not swallowed.
	Remove(ctx context.Context, sourceName string) error
}
