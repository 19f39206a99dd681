package mcp

import (
	"context"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	hits     []domain.SlideHit
	record   *domain.SlideRecord
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockRetrievalService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SlideHit, error) {
	m.lastOpts = opts
	return m.hits, m.err
}

func (m *mockRetrievalService) Lookup(_ context.Context, _ string, _ int) (*domain.SlideRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.record, nil
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	decks []driving.DeckInfo
	err   error
}

func (m *mockLibraryService) Upload(_ context.Context, _ string, _ []byte) error {
	return m.err
}

func (m *mockLibraryService) List(_ context.Context) ([]driving.DeckInfo, error) {
	return m.decks, m.err
}

func (m *mockLibraryService) Remove(_ context.Context, _ string) error {
	return m.err
}

// mockComposeService is a mock implementation of driving.ComposeService.
type mockComposeService struct {
	questions []string
	plan      *domain.SlidePlan
	key       string
	err       error
}

func (m *mockComposeService) Questions(_ context.Context, _ string, _, _ int) ([]string, error) {
	return m.questions, m.err
}

func (m *mockComposeService) Synthesize(_ context.Context, _ []domain.Answer, _ string) (*domain.SlidePlan, error) {
	return m.plan, m.err
}

func (m *mockComposeService) Generate(_ context.Context, _ domain.DeckPlan) (string, error) {
	return m.key, m.err
}
