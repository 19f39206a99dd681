// Package tui provides an interactive terminal user interface for Deckdex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers similarity queries over the slide index.
	Retrieval driving.RetrievalService

	// Library manages the source deck library.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Library is optional; the deck counter in the footer degrades
	// when absent.
	return nil
}
