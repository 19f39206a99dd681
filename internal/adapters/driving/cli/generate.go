package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

var generateName string

// generatePlan is the JSON input format of the generate command: one
// entry per new slide, each carrying the answered questions it is
// synthesized from.
type generatePlan struct {
	Name    string `json:"name,omitempty"`
	Context string `json:"context,omitempty"`
	Slides  []struct {
		SourceSlide string `json:"source_slide,omitempty"`
		Answers     []struct {
			Question string `json:"question"`
			Reply    string `json:"reply"`
		} `json:"answers"`
	} `json:"slides"`
}

var generateCmd = &cobra.Command{
	Use:   "generate [plan-file]",
	Short: "Synthesize and render a new deck from answered questions",
	Long: `Reads a JSON plan of answered questions, synthesizes a title and
bullets for each slide with the configured LLM, and stores the rendered
deck in the generated-output namespace of the library.

Plan format:
  {
    "name": "board_update",
    "context": "quarterly business review",
    "slides": [
      {
        "source_slide": "roadmap_Slide_02",
        "answers": [
          {"question": "Which quarter?", "reply": "Q3"}
        ]
      }
    ]
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateName, "name", "", "output deck name (overrides the plan)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errors.New("compose service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading plan: %w", err)
	}

	var plan generatePlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("parsing plan: %w", err)
	}
	if len(plan.Slides) == 0 {
		return errors.New("plan contains no slides")
	}

	ctx := cmd.Context()
	deck := domain.DeckPlan{Name: plan.Name}
	if generateName != "" {
		deck.Name = generateName
	}

	for i, slide := range plan.Slides {
		answers := make([]domain.Answer, len(slide.Answers))
		for j, a := range slide.Answers {
			answers[j] = domain.Answer{Question: a.Question, Reply: a.Reply}
		}

		slidePlan, err := composeService.Synthesize(ctx, answers, plan.Context)
		if err != nil {
			return fmt.Errorf("synthesizing slide %d: %w", i+1, err)
		}
		slidePlan.SourceLocalID = slide.SourceSlide
		deck.Slides = append(deck.Slides, *slidePlan)
	}

	key, err := composeService.Generate(ctx, deck)
	if err != nil {
		return fmt.Errorf("generating deck: %w", err)
	}

	cmd.Printf("Generated %s (%d slides).\n", key, len(deck.Slides))
	return nil
}
