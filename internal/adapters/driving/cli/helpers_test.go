package cli

import (
	"bytes"
	"context"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
)

// stubRetrieval serves canned hits and records.
type stubRetrieval struct {
	hits   []domain.SlideHit
	record *domain.SlideRecord
	err    error
}

func (s *stubRetrieval) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SlideHit, error) {
	return s.hits, s.err
}

func (s *stubRetrieval) Lookup(_ context.Context, _ string, _ int) (*domain.SlideRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.record == nil {
		return nil, domain.ErrNotFound
	}
	return s.record, nil
}

// stubLibrary serves a canned deck listing.
type stubLibrary struct {
	decks    []driving.DeckInfo
	uploaded []string
	removed  []string
	err      error
}

func (s *stubLibrary) Upload(_ context.Context, key string, _ []byte) error {
	if s.err != nil {
		return s.err
	}
	s.uploaded = append(s.uploaded, key)
	return nil
}

func (s *stubLibrary) List(_ context.Context) ([]driving.DeckInfo, error) {
	return s.decks, s.err
}

func (s *stubLibrary) Remove(_ context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, key)
	return nil
}

// stubIngest returns canned batch results.
type stubIngest struct {
	results []driving.IngestResult
	one     driving.IngestResult
	err     error
}

func (s *stubIngest) IngestAll(_ context.Context) ([]driving.IngestResult, error) {
	return s.results, s.err
}

func (s *stubIngest) IngestOne(_ context.Context, _ string) driving.IngestResult {
	return s.one
}

func (s *stubIngest) Remove(_ context.Context, _ string) error {
	return s.err
}

// stubCompose serves canned questions and synthesis output.
type stubCompose struct {
	questions []string
	plan      *domain.SlidePlan
	key       string
	err       error
}

func (s *stubCompose) Questions(_ context.Context, _ string, _, _ int) ([]string, error) {
	return s.questions, s.err
}

func (s *stubCompose) Synthesize(_ context.Context, _ []domain.Answer, _ string) (*domain.SlidePlan, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.plan, nil
}

func (s *stubCompose) Generate(_ context.Context, plan domain.DeckPlan) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.key != "" {
		return s.key, nil
	}
	return "generated/" + plan.Name + ".json", nil
}

// setupTestServices wires stub services into the command tree and
// returns a cleanup func restoring the previous wiring.
func setupTestServices() func() {
	prevIngest := ingestService
	prevRetrieval := retrievalService
	prevLibrary := libraryService
	prevCompose := composeService

	SetServices(Services{
		Ingest: &stubIngest{},
		Retrieval: &stubRetrieval{
			hits: []domain.SlideHit{
				{
					SourceName:   "roadmap.pptx",
					SlideLocalID: "roadmap_Slide_00",
					Title:        "Roadmap 2026",
					Text:         "Roadmap 2026\nGoals",
					Tags:         domain.TagSet{"General"},
					Distance:     0.08,
				},
			},
			record: &domain.SlideRecord{
				SourceName:   "roadmap.pptx",
				SlideLocalID: "roadmap_Slide_00",
				Title:        "Roadmap 2026",
				Text:         "Roadmap 2026\nGoals",
				Tags:         domain.TagSet{"General"},
				IndexedAt:    "2026-08-01T00:00:00Z",
			},
		},
		Library: &stubLibrary{
			decks: []driving.DeckInfo{
				{Key: "roadmap.pptx", Indexed: true, Slides: 12},
			},
		},
		Compose: &stubCompose{
			questions: []string{"Who is the audience?"},
			plan:      &domain.SlidePlan{Title: "T", Bullets: []string{"b"}},
		},
	})

	return func() {
		ingestService = prevIngest
		retrievalService = prevRetrieval
		libraryService = prevLibrary
		composeService = prevCompose
	}
}

// execute runs the root command with args and captures output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
