package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
)

type stubRetrieval struct {
	hits []domain.SlideHit
	err  error
}

func (s *stubRetrieval) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SlideHit, error) {
	return s.hits, s.err
}

func (s *stubRetrieval) Lookup(_ context.Context, _ string, _ int) (*domain.SlideRecord, error) {
	return nil, domain.ErrNotFound
}

type stubLibrary struct {
	decks []driving.DeckInfo
	err   error
}

func (s *stubLibrary) Upload(_ context.Context, _ string, _ []byte) error { return s.err }
func (s *stubLibrary) List(_ context.Context) ([]driving.DeckInfo, error) { return s.decks, s.err }
func (s *stubLibrary) Remove(_ context.Context, _ string) error           { return s.err }

func newTestApp(t *testing.T, retrieval *stubRetrieval) *App {
	t.Helper()
	app, err := NewApp(&Ports{Retrieval: retrieval})
	require.NoError(t, err)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(*App)
}

func TestNewApp(t *testing.T) {
	t.Run("nil retrieval service returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingRetrievalService)
	})

	t.Run("valid ports creates app", func(t *testing.T) {
		app, err := NewApp(&Ports{Retrieval: &stubRetrieval{}})
		require.NoError(t, err)
		assert.NotNil(t, app)
	})
}

func TestApp_SearchFlow(t *testing.T) {
	retrieval := &stubRetrieval{
		hits: []domain.SlideHit{
			{SlideLocalID: "roadmap_Slide_00", Title: "Roadmap", Text: "Roadmap body", Distance: 0.1},
			{SlideLocalID: "roadmap_Slide_01", Title: "Plan", Text: "Plan body", Distance: 0.2},
		},
	}
	app := newTestApp(t, retrieval)

	app.input.SetValue("roadmap")
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.NotNil(t, cmd)

	msg := cmd()
	results, ok := msg.(searchResultsMsg)
	require.True(t, ok)
	assert.Equal(t, "roadmap", results.query)
	require.Len(t, results.hits, 2)

	model, _ = app.Update(results)
	app = model.(*App)
	assert.Equal(t, "roadmap", app.Query())
	assert.Len(t, app.Hits(), 2)
	assert.Zero(t, app.SelectedIndex())

	view := app.View()
	assert.Contains(t, view, "roadmap_Slide_00")
	assert.Contains(t, view, "Roadmap body")
}

func TestApp_EmptyQueryDoesNotSearch(t *testing.T) {
	app := newTestApp(t, &stubRetrieval{})

	app.input.SetValue("   ")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestApp_SelectionWraps(t *testing.T) {
	app := newTestApp(t, &stubRetrieval{})
	model, _ := app.Update(searchResultsMsg{
		query: "q",
		hits: []domain.SlideHit{
			{SlideLocalID: "a_Slide_00"},
			{SlideLocalID: "a_Slide_01"},
		},
	})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(*App)
	assert.Equal(t, 1, app.SelectedIndex())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app = model.(*App)
	assert.Equal(t, 0, app.SelectedIndex())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyUp})
	app = model.(*App)
	assert.Equal(t, 1, app.SelectedIndex())
}

func TestApp_SearchErrorShown(t *testing.T) {
	app := newTestApp(t, &stubRetrieval{})
	model, _ := app.Update(searchResultsMsg{query: "q", err: errors.New("index offline")})
	app = model.(*App)

	assert.Contains(t, app.View(), "index offline")
	assert.ErrorContains(t, app.Err(), "index offline")
}

func TestApp_DeckCountInFooter(t *testing.T) {
	app, err := NewApp(&Ports{
		Retrieval: &stubRetrieval{},
		Library:   &stubLibrary{decks: []driving.DeckInfo{{Key: "a.pptx"}, {Key: "b.pptx"}}},
	})
	require.NoError(t, err)

	cmd := app.loadDeckCount()
	require.NotNil(t, cmd)
	msg := cmd()
	count, ok := msg.(deckCountMsg)
	require.True(t, ok)
	assert.Equal(t, 2, count.count)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app = model.(*App)
	model, _ = app.Update(count)
	app = model.(*App)
	assert.Contains(t, app.View(), "2 deck(s)")
}

func TestApp_QuitKeys(t *testing.T) {
	app := newTestApp(t, &stubRetrieval{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
