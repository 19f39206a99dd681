package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var questionsMax int

var questionsCmd = &cobra.Command{
	Use:   "questions [deck] [index]",
	Short: "Generate customisation questions for one slide",
	Long: `Asks the configured LLM for short customisation questions about the
stored text of one slide. The answers can be fed to 'deckdex generate'
to synthesize new slide content.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuestions,
}

func init() {
	questionsCmd.Flags().IntVarP(&questionsMax, "max", "m", 3, "maximum number of questions")
	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errors.New("compose service not configured")
	}

	sourceName := args[0]
	slideIndex, err := strconv.Atoi(args[1])
	if err != nil || slideIndex < 0 {
		return fmt.Errorf("invalid slide index %q", args[1])
	}

	questions, err := composeService.Questions(cmd.Context(), sourceName, slideIndex, questionsMax)
	if err != nil {
		return fmt.Errorf("generating questions: %w", err)
	}

	if len(questions) == 0 {
		cmd.Println("No questions could be generated for this slide.")
		return nil
	}

	for i, q := range questions {
		cmd.Printf("%d. %s\n", i+1, q)
	}
	return nil
}
