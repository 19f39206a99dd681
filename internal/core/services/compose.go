package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
	"github.com/ferrous-labs/deckdex-cli/internal/logger"
)

// Ensure ComposeService implements the interface.
var _ driving.ComposeService = (*ComposeService)(nil)

// GeneratedPrefix is the byte-store namespace of rendered output.
const GeneratedPrefix = "generated/"

// fallbackBullet replaces an empty synthesis result.
const fallbackBullet = "Content could not be generated"

// DefaultGlobalContext is used when the caller provides no deck-wide
// framing for synthesis.
const DefaultGlobalContext = "professional business presentation"

// ComposeService turns reference slides into new deck content with a
// language model.
type ComposeService struct {
	retrieval driving.RetrievalService
	llm       driven.LLMService
	prompts   driven.PromptStore
	renderer  driven.DeckRenderer
	store     driven.ByteStore
}

// NewComposeService creates a new compose service.
func NewComposeService(
	retrieval driving.RetrievalService,
	llm driven.LLMService,
	prompts driven.PromptStore,
	renderer driven.DeckRenderer,
	store driven.ByteStore,
) *ComposeService {
	return &ComposeService{
		retrieval: retrieval,
		llm:       llm,
		prompts:   prompts,
		renderer:  renderer,
		store:     store,
	}
}

// Questions generates up to maxQuestions customisation questions from
// the exact indexed text of one slide. An LLM failure degrades to an
// empty list.
func (s *ComposeService) Questions(ctx context.Context, sourceName string, slideIndex int, maxQuestions int) ([]string, error) {
	if maxQuestions <= 0 {
		maxQuestions = 3
	}

	record, err := s.retrieval.Lookup(ctx, sourceName, slideIndex)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(record.Text) == "" {
		logger.Warn("no exact text indexed for %s slide %d", sourceName, slideIndex)
		return []string{}, nil
	}

	template, err := s.prompts.Load(driven.PromptSlideQuestions)
	if err != nil {
		return nil, fmt.Errorf("loading questions prompt: %w", err)
	}
	prompt := fmt.Sprintf(template, maxQuestions, record.Text)

	raw, err := s.llm.Complete(ctx, prompt, driven.CompleteOptions{MaxTokens: 300})
	if err != nil {
		logger.Warn("question generation failed for %s slide %d: %v", sourceName, slideIndex, err)
		return []string{}, nil
	}

	return parseNumberedList(raw, maxQuestions), nil
}

// Synthesize rewrites answered questions into a slide title and bullet
// lines.
func (s *ComposeService) Synthesize(ctx context.Context, answers []domain.Answer, globalContext string) (*domain.SlidePlan, error) {
	if globalContext == "" {
		globalContext = DefaultGlobalContext
	}

	qaText := formatAnswers(answers)

	template, err := s.prompts.Load(driven.PromptSlideSynthesis)
	if err != nil {
		return nil, fmt.Errorf("loading synthesis prompt: %w", err)
	}
	prompt := fmt.Sprintf(template, globalContext, qaText)

	raw, err := s.llm.Complete(ctx, prompt, driven.CompleteOptions{
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	title, bullets := parseSlideReply(raw)
	return &domain.SlidePlan{
		Title:   title,
		Bullets: bullets,
	}, nil
}

// Generate renders a full deck plan and stores the result in the
// generated-output namespace. It returns the stored key.
func (s *ComposeService) Generate(ctx context.Context, plan domain.DeckPlan) (string, error) {
	if plan.Name == "" {
		plan.Name = "ppt_" + uuid.NewString()[:6]
	}

	data, err := s.renderer.Render(ctx, plan)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", plan.Name, err)
	}

	key := GeneratedPrefix + plan.Name + s.renderer.Extension()
	if err := s.store.Put(ctx, key, data); err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}

	logger.Info("generated %s (%d slides)", key, len(plan.Slides))
	return key, nil
}

// parseNumberedList extracts the items of a plain numbered list,
// capped at max.
func parseNumberedList(raw string, max int) []string {
	items := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		if _, rest, found := strings.Cut(line, "."); found {
			line = rest
		}
		if item := strings.TrimSpace(line); item != "" {
			items = append(items, item)
		}
		if len(items) == max {
			break
		}
	}
	return items
}

// formatAnswers renders answered questions as Q/A pairs, skipping
// empty replies.
func formatAnswers(answers []domain.Answer) string {
	var b strings.Builder
	for _, a := range answers {
		if strings.TrimSpace(a.Reply) == "" {
			continue
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", a.Question, a.Reply)
	}
	return strings.TrimSpace(b.String())
}

// parseSlideReply splits an LLM reply into a title and bullets. A
// reply with no bullets yields a single fallback bullet.
func parseSlideReply(raw string) (string, []string) {
	title := "Slide"
	bullets := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(strings.ToLower(line), "title"):
			if _, rest, found := strings.Cut(line, ":"); found {
				if t := strings.TrimSpace(rest); t != "" {
					title = t
				}
			}
		case strings.HasPrefix(line, "-"):
			if b := strings.TrimSpace(strings.TrimPrefix(line, "-")); b != "" {
				bullets = append(bullets, b)
			}
		}
	}
	if len(bullets) == 0 {
		bullets = []string{fallbackBullet}
	}
	return title, bullets
}
