package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_slides tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to find similar slides for"`
	Tag   string `json:"tag,omitempty" jsonschema:"restrict results to slides carrying this topic tag"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search_slides tool.
type SearchOutput struct {
	Results []SlideHitOutput `json:"results"`
	Count   int              `json:"count"`
}

// SlideHitOutput represents a single slide search result.
type SlideHitOutput struct {
	SourceName string   `json:"source_name"`
	SlideID    string   `json:"slide_id"`
	SlideIndex int      `json:"slide_index"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Tags       []string `json:"tags,omitempty"`
	Distance   float64  `json:"distance"`
}

// QuestionsInput is the input schema for the slide_questions tool.
type QuestionsInput struct {
	SourceName   string `json:"source_name" jsonschema:"the deck file name the slide belongs to"`
	SlideIndex   int    `json:"slide_index" jsonschema:"zero-based slide position within the deck"`
	MaxQuestions int    `json:"max_questions,omitempty" jsonschema:"maximum number of questions to generate (default 3)"`
}

// QuestionsOutput is the output schema for the slide_questions tool.
type QuestionsOutput struct {
	Questions []string `json:"questions"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_slides",
		Description: "Find indexed slides similar to a query text",
	}, s.handleSearch)

	if s.ports.Compose != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "slide_questions",
			Description: "Generate customisation questions for one indexed slide",
		}, s.handleQuestions)
	}
}

// handleSearch handles the search_slides tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{TopK: input.TopK}
	if input.Tag != "" {
		opts.Tags = []string{input.Tag}
	}

	hits, err := s.ports.Retrieval.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SlideHitOutput, len(hits)),
		Count:   len(hits),
	}

	for i := range hits {
		output.Results[i] = SlideHitOutput{
			SourceName: hits[i].SourceName,
			SlideID:    hits[i].SlideLocalID,
			SlideIndex: hits[i].SlideIndex,
			Title:      hits[i].Title,
			Text:       hits[i].Text,
			Tags:       []string(hits[i].Tags),
			Distance:   hits[i].Distance,
		}
	}

	return nil, output, nil
}

// handleQuestions handles the slide_questions tool invocation.
func (s *Server) handleQuestions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuestionsInput,
) (*mcp.CallToolResult, QuestionsOutput, error) {
	if s.ports.Compose == nil {
		return nil, QuestionsOutput{}, errors.New("compose service not configured")
	}

	questions, err := s.ports.Compose.Questions(ctx, input.SourceName, input.SlideIndex, input.MaxQuestions)
	if err != nil {
		return nil, QuestionsOutput{}, err
	}
	return nil, QuestionsOutput{Questions: questions}, nil
}
