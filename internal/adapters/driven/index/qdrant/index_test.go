package qdrant

import (
	"testing"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
)

func TestTranslateFilter_Empty(t *testing.T) {
	qf, err := translateFilter(nil)
	require.NoError(t, err)
	assert.Nil(t, qf)
}

func TestTranslateFilter_StringAndInteger(t *testing.T) {
	qf, err := translateFilter(driven.Filter{
		driven.FieldSourceName: "deck.pptx",
		driven.FieldSlideIndex: 3,
	})
	require.NoError(t, err)
	require.Len(t, qf.Must, 2)

	byKey := map[string]*qdrantclient.Match{}
	for _, cond := range qf.Must {
		field := cond.GetField()
		require.NotNil(t, field)
		byKey[field.Key] = field.Match
	}

	assert.Equal(t, "deck.pptx", byKey[driven.FieldSourceName].GetKeyword())
	assert.Equal(t, int64(3), byKey[driven.FieldSlideIndex].GetInteger())
}

func TestTranslateFilter_RejectsComposite(t *testing.T) {
	_, err := translateFilter(driven.Filter{
		driven.FieldTags: []string{"Design"},
	})
	assert.ErrorIs(t, err, domain.ErrNonScalarMetadata)
}

func TestPayloadRoundTrip(t *testing.T) {
	rec := domain.SlideRecord{
		ID:           "3e7c2a9e-6f0b-4a49-9c41-0f6f6f2ce111",
		SourceName:   "roadmap.pptx",
		SourceBase:   "roadmap",
		SlideIndex:   4,
		SlideLocalID: "roadmap_Slide_05",
		Title:        "Milestones",
		Text:         "Milestones\nShip the indexer",
		Tags:         domain.TagSet{"Design", "Migration"},
		IndexedAt:    "2026-08-28T10:00:00Z",
	}

	got := payloadRecord(rec.ID, recordPayload(rec))
	assert.Equal(t, rec, got)
}

func TestPayloadRecord_MissingFields(t *testing.T) {
	got := payloadRecord("id-1", map[string]*qdrantclient.Value{})
	assert.Equal(t, "id-1", got.ID)
	assert.Empty(t, got.SourceName)
	assert.Zero(t, got.SlideIndex)
	assert.Empty(t, got.Tags)
}
