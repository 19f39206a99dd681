package domain

// SearchOptions configures a slide similarity query.
type SearchOptions struct {
	// TopK is the maximum number of results. Defaults to 5 when
	// zero or negative.
	TopK int

	// Tags restricts results by topic label. Only the first tag is
	// applied as an equality filter; the rest are ignored. This is
	// the documented single-tag behavior of the retrieval contract.
	Tags []string
}

// SlideHit is one ranked result of a similarity query. Hits are
// ephemeral and never persisted.
type SlideHit struct {
	// ID is the matched record's storage identifier.
	ID string

	// SourceName is the owning deck's byte-store key.
	SourceName string

	// SlideLocalID is the derived display identifier.
	SlideLocalID string

	// SlideIndex is the zero-based slide position, always an integer.
	SlideIndex int

	// Title is the stored slide title.
	Title string

	// Text is the stored full slide text.
	Text string

	// Tags is the parsed topic label set.
	Tags TagSet

	// Distance is the raw similarity-inverse score; lower means more
	// similar. Results are ordered by ascending distance and callers
	// rely on that ordering.
	Distance float64
}
