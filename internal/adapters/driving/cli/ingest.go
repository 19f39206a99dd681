package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
	"github.com/ferrous-labs/deckdex-cli/internal/logger"
)

// WatchFunc streams byte-store keys as deck files appear or change.
// Wired by main from the filesystem store; nil when the configured
// store cannot watch.
type WatchFunc func(ctx context.Context, extensions ...string) (<-chan string, error)

var watchFunc WatchFunc

// SetWatchFunc injects the library watch hook used by ingest --watch.
func SetWatchFunc(fn WatchFunc) {
	watchFunc = fn
}

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index every deck in the library",
	Long: `Extracts, tags and embeds the slides of every deck in the library.
Decks that are already indexed are skipped whole.

With --watch, keeps running and re-ingests decks as files appear or
change in the library directory.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "keep watching the library for new decks")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()
	results, err := ingestService.IngestAll(ctx)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	printIngestSummary(cmd, results)

	if !ingestWatch {
		return nil
	}
	if watchFunc == nil {
		return errors.New("watching is not supported by the configured library store")
	}

	keys, err := watchFunc(ctx, ".pptx", ".ppt")
	if err != nil {
		return fmt.Errorf("watching library: %w", err)
	}

	cmd.Println("Watching library for new decks. Press Ctrl+C to stop.")
	for key := range keys {
		result := ingestService.IngestOne(ctx, key)
		switch result.Outcome {
		case driving.OutcomeIndexed:
			cmd.Printf("indexed %s (%d slides)\n", key, result.Slides)
		case driving.OutcomeFailed:
			logger.Warn("ingest %s failed: %v", key, result.Err)
		}
	}
	return nil
}

func printIngestSummary(cmd *cobra.Command, results []driving.IngestResult) {
	var indexed, skipped, failed int
	for _, r := range results {
		switch r.Outcome {
		case driving.OutcomeIndexed:
			indexed++
		case driving.OutcomeSkippedDuplicate, driving.OutcomeSkippedEmpty:
			skipped++
		case driving.OutcomeFailed:
			failed++
			cmd.Printf("  failed: %s (%v)\n", r.SourceName, r.Err)
		}
	}
	cmd.Printf("Ingest complete: %d indexed, %d skipped, %d failed.\n", indexed, skipped, failed)
}
