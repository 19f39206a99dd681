package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SlideRecord is one indexed slide of a source deck. It is created once
// during ingestion and never updated in place; removing the owning deck
// destroys all of its records together.
type SlideRecord struct {
	// ID is the storage identifier, generated at insertion time.
	// It is opaque and carries no meaning beyond addressing.
	ID string

	// SourceName is the byte-store key of the owning deck.
	SourceName string

	// SourceBase is SourceName with directory and extension stripped.
	// Used to build human-readable derived identifiers.
	SourceBase string

	// SlideIndex is the zero-based position within the deck.
	// It is an integer at every boundary, including index filters.
	SlideIndex int

	// SlideLocalID is the derived display identifier,
	// "{SourceBase}_Slide_{SlideIndex:02d}". Not guaranteed unique
	// across re-ingestions if deck names collide.
	SlideLocalID string

	// Title is the first line of the extracted text, empty if the
	// slide carried no text.
	Title string

	// Text is the newline-joined concatenation of all extracted
	// text blocks. May be empty.
	Text string

	// Tags is the set of topic labels derived from Text.
	Tags TagSet

	// Embedding is the slide vector, dimension fixed by the
	// configured embedding model.
	Embedding []float32

	// IndexedAt is an ISO-8601 UTC timestamp string, set once at
	// insertion.
	IndexedAt string
}

// SlideLocalID derives the display identifier for a slide of a deck.
func SlideLocalID(sourceBase string, slideIndex int) string {
	return fmt.Sprintf("%s_Slide_%02d", sourceBase, slideIndex)
}

// SourceBase strips directory and extension from a byte-store key.
func SourceBase(sourceName string) string {
	base := filepath.Base(sourceName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TitleOf returns the first line of slide text, or "" for empty text.
func TitleOf(text string) string {
	if text == "" {
		return ""
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// ExtractedSlide is one slide's plain text as produced by whole-deck
// extraction, before tagging and embedding.
type ExtractedSlide struct {
	// Index is the zero-based slide position.
	Index int

	// Text is the newline-joined text of every non-empty shape,
	// in shape encounter order.
	Text string
}

// ShapeKind distinguishes title placeholders from body text shapes.
type ShapeKind string

const (
	// ShapeKindTitle marks a placeholder shape.
	ShapeKindTitle ShapeKind = "title"

	// ShapeKindBody marks an ordinary text shape.
	ShapeKindBody ShapeKind = "body"
)

// EditableShape is a text shape eligible for interactive editing.
// Shapes whose trimmed text is shorter than three characters are
// treated as decorative and never appear here.
type EditableShape struct {
	// ShapeID is the positional identifier, "shape_{n}".
	ShapeID string

	// Text is the trimmed shape text.
	Text string

	// Placeholder reports whether the shape is a layout placeholder.
	Placeholder bool

	// Kind is "title" for placeholders, "body" otherwise.
	Kind ShapeKind
}

// SlideStructure is the single-slide extraction result used for
// interactive editing.
type SlideStructure struct {
	// SlideIndex is the zero-based slide position.
	SlideIndex int

	// Title is the first editable shape's text, or a fallback label.
	Title string

	// Shapes are the editable text shapes in encounter order, with
	// grouped shapes flattened after the top-level shapes already
	// examined.
	Shapes []EditableShape
}
