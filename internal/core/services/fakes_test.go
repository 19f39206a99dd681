package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
)

// fakeByteStore is an in-memory driven.ByteStore.
type fakeByteStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeByteStore() *fakeByteStore {
	return &fakeByteStore{files: make(map[string][]byte)}
}

func (s *fakeByteStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

func (s *fakeByteStore) List(_ context.Context, extensions ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for key := range s.files {
		if len(extensions) == 0 {
			keys = append(keys, key)
			continue
		}
		for _, ext := range extensions {
			if len(key) >= len(ext) && key[len(key)-len(ext):] == ext {
				keys = append(keys, key)
				break
			}
		}
	}
	sortStrings(keys)
	return keys, nil
}

func (s *fakeByteStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, key)
	}
	return data, nil
}

func (s *fakeByteStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[key]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, key)
	}
	delete(s.files, key)
	return nil
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// fakeExtractor maps deck bytes to canned slides.
type fakeExtractor struct {
	decks map[string][]domain.ExtractedSlide
	errs  map[string]error
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		decks: make(map[string][]domain.ExtractedSlide),
		errs:  make(map[string]error),
	}
}

func (e *fakeExtractor) ExtractDeck(_ context.Context, data []byte) ([]domain.ExtractedSlide, error) {
	if err, ok := e.errs[string(data)]; ok {
		return nil, err
	}
	return e.decks[string(data)], nil
}

func (e *fakeExtractor) ExtractSlide(_ context.Context, data []byte, slideIndex int) (*domain.SlideStructure, error) {
	slides, err := e.ExtractDeck(context.Background(), data)
	if err != nil {
		return nil, err
	}
	if slideIndex < 0 || slideIndex >= len(slides) {
		return nil, domain.ErrNotFound
	}
	return &domain.SlideStructure{SlideIndex: slideIndex}, nil
}

// fakeEmbedder produces fixed-size vectors, optionally failing or
// short-changing batches.
type fakeEmbedder struct {
	dims     int
	err      error
	short    bool
	embedded [][]string // batches seen
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{dims: 3}
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.embedded = append(e.embedded, texts)
	n := len(texts)
	if e.short && n > 0 {
		n--
	}
	vecs := make([][]float32, n)
	for i := range vecs {
		vecs[i] = []float32{float32(len(texts[i])), 1, 0}
	}
	return vecs, nil
}

func (e *fakeEmbedder) Dimensions() int            { return e.dims }
func (e *fakeEmbedder) ModelName() string          { return "fake-embed" }
func (e *fakeEmbedder) Ping(context.Context) error { return nil }
func (e *fakeEmbedder) Close() error               { return nil }

// fakeIndex is an in-memory driven.SlideIndex with exact-match filter
// semantics. Query returns matches in insertion order with synthetic
// ascending distances.
type fakeIndex struct {
	mu        sync.Mutex
	records   []domain.SlideRecord
	queries   []fakeQuery
	queryErr  error
	insertErr error
}

type fakeQuery struct {
	vector []float32
	topK   int
	filter driven.Filter
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{}
}

func (x *fakeIndex) EnsureCollection(context.Context, int) error { return nil }

func (x *fakeIndex) Insert(_ context.Context, records []domain.SlideRecord) error {
	if x.insertErr != nil {
		return x.insertErr
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.records = append(x.records, records...)
	return nil
}

func (x *fakeIndex) Query(_ context.Context, vector []float32, topK int, filter driven.Filter) ([]domain.SlideHit, error) {
	if x.queryErr != nil {
		return nil, x.queryErr
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.queries = append(x.queries, fakeQuery{vector: vector, topK: topK, filter: filter})

	var hits []domain.SlideHit
	for i, rec := range x.records {
		if !matches(rec, filter) {
			continue
		}
		hits = append(hits, domain.SlideHit{
			ID:           rec.ID,
			SourceName:   rec.SourceName,
			SlideLocalID: rec.SlideLocalID,
			SlideIndex:   rec.SlideIndex,
			Title:        rec.Title,
			Text:         rec.Text,
			Tags:         rec.Tags,
			Distance:     float64(i) / 10,
		})
		if len(hits) == topK {
			break
		}
	}
	return hits, nil
}

func (x *fakeIndex) GetByFilter(_ context.Context, filter driven.Filter, limit int) ([]domain.SlideRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	var out []domain.SlideRecord
	for _, rec := range x.records {
		if matches(rec, filter) {
			out = append(out, rec)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (x *fakeIndex) DeleteByFilter(_ context.Context, filter driven.Filter) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	kept := x.records[:0]
	for _, rec := range x.records {
		if !matches(rec, filter) {
			kept = append(kept, rec)
		}
	}
	x.records = kept
	return nil
}

func (x *fakeIndex) Close() error { return nil }

func matches(rec domain.SlideRecord, filter driven.Filter) bool {
	for key, value := range filter {
		switch key {
		case driven.FieldSourceName:
			if rec.SourceName != value {
				return false
			}
		case driven.FieldSourceBase:
			if rec.SourceBase != value {
				return false
			}
		case driven.FieldSlideID:
			if rec.SlideLocalID != value {
				return false
			}
		case driven.FieldSlideIndex:
			if n, ok := value.(int); !ok || rec.SlideIndex != n {
				return false
			}
		case driven.FieldTags:
			if rec.Tags.String() != value {
				return false
			}
		case driven.FieldTitle:
			if rec.Title != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// fakeLLM replays a canned reply and records prompts.
type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (l *fakeLLM) Complete(_ context.Context, prompt string, _ driven.CompleteOptions) (string, error) {
	if l.err != nil {
		return "", l.err
	}
	l.prompts = append(l.prompts, prompt)
	return l.reply, nil
}

func (l *fakeLLM) ModelName() string          { return "fake-llm" }
func (l *fakeLLM) Ping(context.Context) error { return nil }
func (l *fakeLLM) Close() error               { return nil }

// fakePrompts serves minimal templates with the contract placeholders.
type fakePrompts struct{}

func (fakePrompts) Load(name string) (string, error) {
	switch name {
	case driven.PromptSlideQuestions:
		return "Ask %d questions about:\n%s", nil
	case driven.PromptSlideSynthesis:
		return "Context: %s\nInput:\n%s", nil
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

func (fakePrompts) Reload() {}

// fakeRenderer echoes the plan name.
type fakeRenderer struct {
	err error
}

func (r *fakeRenderer) Render(_ context.Context, plan domain.DeckPlan) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("rendered:" + plan.Name), nil
}

func (r *fakeRenderer) Extension() string { return ".json" }
