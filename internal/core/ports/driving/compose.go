package driving

import (
	"context"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

// ComposeService turns selected reference slides into new deck
// content with a language model.
type ComposeService interface {
	// Questions generates up to maxQuestions customisation questions
	// from the exact indexed text of one slide. LLM failure yields
	// an empty list.
	Questions(ctx context.Context, sourceName string, slideIndex int, maxQuestions int) ([]string, error)

	// Synthesize rewrites answered questions into a slide title and
	// bullet lines.
	Synthesize(ctx context.Context, answers []domain.Answer, globalContext string) (*domain.SlidePlan, error)

	// Generate renders a full deck plan and stores the result in the
	// generated-output namespace of the byte store. It returns the
	// stored key.
	Generate(ctx context.Context, plan domain.DeckPlan) (string, error)
}
