package jsonplan

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

func TestRender_AppendsClosingSlide(t *testing.T) {
	data, err := New().Render(context.Background(), domain.DeckPlan{
		Name: "pitch",
		Slides: []domain.SlidePlan{
			{SourceLocalID: "deck_Slide_00", Title: "Overview", Bullets: []string{"Point one"}},
		},
	})
	require.NoError(t, err)

	var out renderedDeck
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "pitch", out.Name)
	require.Len(t, out.Slides, 2)
	assert.Equal(t, "Overview", out.Slides[0].Title)
	assert.Equal(t, "deck_Slide_00", out.Slides[0].SourceSlide)
	assert.Equal(t, "Thank You", out.Slides[1].Title)
	assert.Equal(t, []string{"Questions?"}, out.Slides[1].Bullets)
}

func TestRender_EmptyPlanIsError(t *testing.T) {
	_, err := New().Render(context.Background(), domain.DeckPlan{Name: "empty"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".json", New().Extension())
}
