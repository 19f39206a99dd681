package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnreadable indicates a source deck could not be opened
	// or parsed. Extraction of a deck is all-or-nothing; this error
	// aborts that deck only, never a whole batch run.
	ErrSourceUnreadable = errors.New("source deck unreadable")

	// ErrEmbeddingUnavailable indicates the embedding call failed or
	// returned a count that does not match its input. The whole batch
	// is treated as failed; no partial credit.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrIndexOperation indicates the slide index rejected an
	// insert, query or delete.
	ErrIndexOperation = errors.New("index operation failed")

	// ErrAlreadyIndexed indicates a deck is already represented in
	// the slide index. This is an expected control-flow outcome
	// (skip), not a hard failure, and must stay distinguishable from
	// ErrSourceUnreadable in logs and tests.
	ErrAlreadyIndexed = errors.New("deck already indexed")

	// ErrLLMUnavailable indicates the language-model service is not
	// configured or unreachable. Question and bullet synthesis are
	// disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrNonScalarMetadata indicates a composite value was handed to
	// the slide index metadata boundary. Values must be serialized to
	// string, integer or float first.
	ErrNonScalarMetadata = errors.New("metadata value is not scalar")
)
