package driven

import (
	"context"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

// DeckRenderer consumes a synthesized deck plan and produces the
// bytes of a presentation file. Rendering is a downstream consumer
// of the core; the core only hands over titles and bullets and never
// inspects the produced bytes.
type DeckRenderer interface {
	// Render produces the output file bytes for a plan.
	Render(ctx context.Context, plan domain.DeckPlan) ([]byte, error)

	// Extension returns the file extension of rendered output,
	// including the leading dot.
	Extension() string
}
