// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Deckdex. It lets AI assistants search the slide index and read the deck
// library.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
