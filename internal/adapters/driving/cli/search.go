package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

var (
	searchTopK int
	searchTag  string
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find slides similar to a query",
	Long: `Embeds the query text and returns the most similar indexed slides,
closest first. Use --tag to restrict results to one topic label.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top", "n", 0, "maximum number of results (default 5)")
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "restrict results to slides carrying this tag")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := context.Background()
	opts := domain.SearchOptions{TopK: searchTopK}
	if searchTag != "" {
		opts.Tags = []string{searchTag}
	}

	hits, err := retrievalService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, hits)
	}

	return outputSearchTable(cmd, hits)
}

func outputSearchJSON(cmd *cobra.Command, hits []domain.SlideHit) error {
	type hitOut struct {
		SourceName string   `json:"source_name"`
		SlideID    string   `json:"slide_id"`
		SlideIndex int      `json:"slide_index"`
		Title      string   `json:"title"`
		Text       string   `json:"text"`
		Tags       []string `json:"tags,omitempty"`
		Distance   float64  `json:"distance"`
	}

	out := make([]hitOut, len(hits))
	for i := range hits {
		out[i] = hitOut{
			SourceName: hits[i].SourceName,
			SlideID:    hits[i].SlideLocalID,
			SlideIndex: hits[i].SlideIndex,
			Title:      hits[i].Title,
			Text:       hits[i].Text,
			Tags:       []string(hits[i].Tags),
			Distance:   hits[i].Distance,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, hits []domain.SlideHit) error {
	if len(hits) == 0 {
		cmd.Println("No matching slides found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range hits {
		title := hits[i].Title
		if title == "" {
			title = hits[i].SlideLocalID
		}

		cmd.Printf("  [%d] %s (%.3f)\n", i+1, title, hits[i].Distance)
		cmd.Printf("      Deck: %s  Slide: %d\n", hits[i].SourceName, hits[i].SlideIndex)
		if len(hits[i].Tags) > 0 {
			cmd.Printf("      Tags: %s\n", hits[i].Tags.String())
		}
		cmd.Println()
	}

	return nil
}
