package domain

// Answer pairs a generated question with the user's short reply.
type Answer struct {
	Question string
	Reply    string
}

// SlidePlan is the synthesized content for one slide of a new deck:
// a title plus bullet lines, ready for a renderer.
type SlidePlan struct {
	// SourceLocalID references the reference slide the plan was
	// derived from, when there is one.
	SourceLocalID string

	Title   string
	Bullets []string
}

// DeckPlan is the full synthesized deck handed to a renderer.
type DeckPlan struct {
	// Name becomes the output file's byte-store key (without
	// extension).
	Name string

	Slides []SlidePlan
}
