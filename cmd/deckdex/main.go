// Command deckdex indexes slide decks into a vector store and serves
// similarity search over them through a CLI, a TUI and an MCP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/bytestore/filesystem"
	configfile "github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/embedding/openai"
	"github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/index/qdrant"
	"github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/index/sqlite"
	openaillm "github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/llm/openai"
	"github.com/ferrous-labs/deckdex-cli/internal/adapters/driven/renderer/jsonplan"
	"github.com/ferrous-labs/deckdex-cli/internal/adapters/driving/cli"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
	"github.com/ferrous-labs/deckdex-cli/internal/core/services"
	"github.com/ferrous-labs/deckdex-cli/internal/extractor/pptx"
	"github.com/ferrous-labs/deckdex-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional; env vars may also come from the shell.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	cli.SetConfigStore(config)

	prompts, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	store, err := filesystem.NewStore(config.GetString("library.root"))
	if err != nil {
		return fmt.Errorf("opening library: %w", err)
	}
	cli.SetWatchFunc(store.Watch)

	index, err := buildIndex(config)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer index.Close() //nolint:errcheck

	embedder, err := buildEmbedder(config)
	if err != nil {
		return fmt.Errorf("configuring embedding provider: %w", err)
	}

	extractor := pptx.New()
	ingest := services.NewIngestService(store, extractor, embedder, index)
	retrieval := services.NewRetrievalService(embedder, index)
	library := services.NewLibraryService(store, index, ingest)

	wired := cli.Services{
		Ingest:    ingest,
		Retrieval: retrieval,
		Library:   library,
	}

	// The compose commands stay unconfigured without an LLM key.
	if llm, err := buildLLM(config); err != nil {
		logger.Warn("LLM not configured: %v", err)
	} else {
		wired.Compose = services.NewComposeService(retrieval, llm, prompts, jsonplan.New(), store)
	}

	cli.SetServices(wired)

	return cli.ExecuteContext(ctx)
}

// buildIndex selects the slide index backend from configuration.
func buildIndex(config driven.ConfigStore) (driven.SlideIndex, error) {
	switch config.GetString("index.backend") {
	case "qdrant":
		return qdrant.NewIndex(qdrant.Config{
			Addr:       config.GetString("index.qdrant_addr"),
			Collection: config.GetString("index.collection"),
		})
	default:
		return sqlite.NewIndex(config.GetString("index.data_dir"))
	}
}

// buildEmbedder selects the embedding provider from configuration.
// The API key may come from config or the OPENAI_API_KEY env var.
func buildEmbedder(config driven.ConfigStore) (driven.EmbeddingService, error) {
	if config.GetString("embedding.provider") == "ollama" {
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: config.GetString("embedding.base_url"),
			Model:   config.GetString("embedding.model"),
		}), nil
	}

	apiKey := config.GetString("embedding.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     apiKey,
		BaseURL:    config.GetString("embedding.base_url"),
		APIVersion: config.GetString("embedding.api_version"),
		Model:      config.GetString("embedding.model"),
		Dimensions: config.GetInt("embedding.dimensions"),
	})
}

// buildLLM configures the chat completion provider used for question
// generation and synthesis.
func buildLLM(config driven.ConfigStore) (driven.LLMService, error) {
	apiKey := config.GetString("llm.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	return openaillm.NewLLMService(openaillm.Config{
		APIKey:     apiKey,
		BaseURL:    config.GetString("llm.base_url"),
		APIVersion: config.GetString("llm.api_version"),
		Model:      config.GetString("llm.model"),
	})
}
