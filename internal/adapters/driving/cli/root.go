// Package cli implements the deckdex command tree. Commands reach the
// core through package-level driving ports injected by main via
// SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
	"github.com/ferrous-labs/deckdex-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "deckdex",
	Short: "Index and search slide decks",
	Long: `Deckdex indexes the text of PowerPoint decks into a vector store
and retrieves the most similar slides for a query. Retrieved slides can
seed new deck content through LLM-generated questions and synthesis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services aggregates the driving ports the commands depend on.
type Services struct {
	Ingest    driving.IngestService
	Retrieval driving.RetrievalService
	Library   driving.LibraryService
	Compose   driving.ComposeService
}

var (
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	libraryService   driving.LibraryService
	composeService   driving.ComposeService
)

// SetServices injects the core services used by the commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	retrievalService = s.Retrieval
	libraryService = s.Library
	composeService = s.Compose
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
