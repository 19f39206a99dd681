package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

func TestPutGetRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "deck.pptx", []byte("payload")))

	data, err := s.Get(ctx, "deck.pptx")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestGet_CopiesData(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "deck.pptx", []byte("payload")))

	first, err := s.Get(ctx, "deck.pptx")
	require.NoError(t, err)
	first[0] = 'X'

	second, err := s.Get(ctx, "deck.pptx")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), second)
}

func TestList_SortedAndFiltered(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "b.pptx", nil))
	require.NoError(t, s.Put(ctx, "a.pptx", nil))
	require.NoError(t, s.Put(ctx, "notes.txt", nil))

	keys, err := s.List(ctx, ".pptx")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pptx", "b.pptx"}, keys)
}

func TestDelete_Missing(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.Delete(context.Background(), "missing"), domain.ErrNotFound)
}
