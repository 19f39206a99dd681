// Package jsonplan renders a deck plan as a structured JSON document.
// The output is a faithful, tool-friendly representation of the plan
// that downstream presentation builders can consume.
package jsonplan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.DeckRenderer = (*Renderer)(nil)

// Closing slide appended to every rendered deck.
const (
	closingTitle  = "Thank You"
	closingBullet = "Questions?"
)

// Renderer serializes deck plans to indented JSON.
type Renderer struct{}

// New creates a JSON plan renderer.
func New() *Renderer {
	return &Renderer{}
}

// renderedDeck is the output document format.
type renderedDeck struct {
	Name   string          `json:"name"`
	Slides []renderedSlide `json:"slides"`
}

type renderedSlide struct {
	SourceSlide string   `json:"source_slide,omitempty"`
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets"`
}

// Render produces the JSON bytes for a plan, with a closing slide
// appended.
func (r *Renderer) Render(_ context.Context, plan domain.DeckPlan) ([]byte, error) {
	if len(plan.Slides) == 0 {
		return nil, fmt.Errorf("%w: plan has no slides", domain.ErrInvalidInput)
	}

	out := renderedDeck{
		Name:   plan.Name,
		Slides: make([]renderedSlide, 0, len(plan.Slides)+1),
	}
	for _, slide := range plan.Slides {
		bullets := slide.Bullets
		if bullets == nil {
			bullets = []string{}
		}
		out.Slides = append(out.Slides, renderedSlide{
			SourceSlide: slide.SourceLocalID,
			Title:       slide.Title,
			Bullets:     bullets,
		})
	}
	out.Slides = append(out.Slides, renderedSlide{
		Title:   closingTitle,
		Bullets: []string{closingBullet},
	})

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal deck plan: %w", err)
	}
	return data, nil
}

// Extension returns the output file extension.
func (r *Renderer) Extension() string {
	return ".json"
}
