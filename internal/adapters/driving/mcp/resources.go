package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Deckdex resources.
	uriScheme = "deckdex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing the deck library.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "library",
		Name:        "library",
		Description: "Decks in the source library with their index status",
		MIMEType:    "application/json",
	}, s.handleLibraryResource)

	// Template for slide text.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "decks/{sourceName}/slides/{slideIndex}",
		Name:        "slide-text",
		Description: "Exact indexed text of one slide",
		MIMEType:    "text/plain",
	}, s.handleSlideResource)
}

// handleLibraryResource returns the deck library listing.
func (s *Server) handleLibraryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	decks, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}

	type deckInfo struct {
		Key     string `json:"key"`
		Indexed bool   `json:"indexed"`
		Slides  int    `json:"slides"`
	}

	infos := make([]deckInfo, len(decks))
	for i, d := range decks {
		infos[i] = deckInfo{
			Key:     d.Key,
			Indexed: d.Indexed,
			Slides:  d.Slides,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling library: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSlideResource returns the stored text of a specific slide.
func (s *Server) handleSlideResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract coordinates from URI: deckdex://decks/{sourceName}/slides/{slideIndex}
	sourceName, slideIndex, ok := extractSlideRef(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Retrieval.Lookup(ctx, sourceName, slideIndex)
	if err != nil {
		return nil, fmt.Errorf("looking up slide: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     record.Text,
		}},
	}, nil
}

// extractSlideRef parses a URI like deckdex://decks/{sourceName}/slides/{slideIndex}.
func extractSlideRef(uri string) (string, int, bool) {
	const prefix = uriScheme + "decks/"

	if !strings.HasPrefix(uri, prefix) {
		return "", 0, false
	}

	rest := strings.TrimPrefix(uri, prefix)
	name, indexPart, found := strings.Cut(rest, "/slides/")
	if !found || name == "" {
		return "", 0, false
	}

	index, err := strconv.Atoi(indexPart)
	if err != nil || index < 0 {
		return "", 0, false
	}
	return name, index, true
}
