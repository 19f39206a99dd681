package mcp

import (
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers similarity queries over the slide index.
	Retrieval driving.RetrievalService

	// Library manages the source deck library.
	Library driving.LibraryService

	// Compose generates questions and new slide content.
	Compose driving.ComposeService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Library and Compose are optional; their tools and resources
	// degrade when absent.
	return nil
}
