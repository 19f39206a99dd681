// Package pptx extracts per-slide text from PowerPoint (.pptx) files.
//
// A .pptx file is an OPC zip archive. Slide order comes from
// ppt/presentation.xml and its relationship part, not from file
// naming. Text lives in DrawingML runs inside each slide part.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
)

// relationshipNS is the namespace of the r:id attribute on p:sldId.
const relationshipNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// minEditableRunes is the shortest trimmed shape text still treated
// as editable content rather than decoration.
const minEditableRunes = 3

// Ensure Extractor implements the interface.
var _ driven.SlideExtractor = (*Extractor)(nil)

// Extractor extracts slide text from .pptx bytes.
type Extractor struct{}

// New creates a new pptx extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractDeck returns the full ordered slide list of a deck.
// Extraction is all-or-nothing: any unreadable part fails the whole
// deck with domain.ErrSourceUnreadable.
func (e *Extractor) ExtractDeck(_ context.Context, data []byte) ([]domain.ExtractedSlide, error) {
	parts, err := slideParts(data)
	if err != nil {
		return nil, err
	}

	slides := make([]domain.ExtractedSlide, 0, len(parts))
	for i, part := range parts {
		shapes, err := parseSlideShapes(part)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d: %w", domain.ErrSourceUnreadable, i, err)
		}

		blocks := make([]string, 0, len(shapes))
		for _, sh := range shapes {
			if sh.text != "" {
				blocks = append(blocks, sh.text)
			}
		}
		slides = append(slides, domain.ExtractedSlide{
			Index: i,
			Text:  strings.Join(blocks, "\n"),
		})
	}
	return slides, nil
}

// ExtractSlide returns the single-slide structure used for
// interactive editing.
func (e *Extractor) ExtractSlide(_ context.Context, data []byte, slideIndex int) (*domain.SlideStructure, error) {
	parts, err := slideParts(data)
	if err != nil {
		return nil, err
	}
	if slideIndex < 0 || slideIndex >= len(parts) {
		return nil, fmt.Errorf("%w: slide index %d of %d slides", domain.ErrNotFound, slideIndex, len(parts))
	}

	shapes, err := parseSlideShapes(parts[slideIndex])
	if err != nil {
		return nil, fmt.Errorf("%w: slide %d: %w", domain.ErrSourceUnreadable, slideIndex, err)
	}

	structure := &domain.SlideStructure{
		SlideIndex: slideIndex,
		Title:      fmt.Sprintf("Slide %d", slideIndex+1),
	}

	idx := 0
	for _, sh := range shapes {
		if utf8.RuneCountInString(sh.text) < minEditableRunes {
			continue
		}
		kind := domain.ShapeKindBody
		// Group-nested shapes never count as placeholders.
		placeholder := sh.placeholder && !sh.grouped
		if placeholder {
			kind = domain.ShapeKindTitle
		}
		structure.Shapes = append(structure.Shapes, domain.EditableShape{
			ShapeID:     fmt.Sprintf("shape_%d", idx),
			Text:        sh.text,
			Placeholder: placeholder,
			Kind:        kind,
		})
		idx++
	}

	if len(structure.Shapes) > 0 {
		structure.Title = domain.TitleOf(structure.Shapes[0].Text)
	}
	return structure, nil
}

// slideParts opens the archive and returns the slide part contents in
// presentation order.
func slideParts(data []byte) ([][]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnreadable, err)
	}

	names, err := orderedSlideNames(reader)
	if err != nil {
		return nil, err
	}

	parts := make([][]byte, 0, len(names))
	for _, name := range names {
		content, err := readPart(reader, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, name, err)
		}
		parts = append(parts, content)
	}
	return parts, nil
}

// presentationXML is the subset of ppt/presentation.xml we need.
type presentationXML struct {
	SlideIDList struct {
		Slides []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldId"`
	} `xml:"sldIdLst"`
}

// relationshipsXML is the subset of ppt/_rels/presentation.xml.rels.
type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// orderedSlideNames resolves slide part names in presentation order,
// falling back to numeric part-name order when the slide id list is
// absent.
func orderedSlideNames(reader *zip.Reader) ([]string, error) {
	presData, err := readPart(reader, "ppt/presentation.xml")
	if err != nil {
		return nil, fmt.Errorf("%w: missing ppt/presentation.xml", domain.ErrSourceUnreadable)
	}

	var pres presentationXML
	if err := xml.Unmarshal(presData, &pres); err != nil {
		return nil, fmt.Errorf("%w: presentation.xml: %w", domain.ErrSourceUnreadable, err)
	}

	relData, relErr := readPart(reader, "ppt/_rels/presentation.xml.rels")
	if len(pres.SlideIDList.Slides) == 0 || relErr != nil {
		return slideNamesByNumber(reader), nil
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(relData, &rels); err != nil {
		return nil, fmt.Errorf("%w: presentation.xml.rels: %w", domain.ErrSourceUnreadable, err)
	}
	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		targets[rel.ID] = rel.Target
	}

	names := make([]string, 0, len(pres.SlideIDList.Slides))
	for _, s := range pres.SlideIDList.Slides {
		target, ok := targets[s.RID]
		if !ok {
			return nil, fmt.Errorf("%w: unresolved slide relationship %q", domain.ErrSourceUnreadable, s.RID)
		}
		// Targets are relative to ppt/.
		names = append(names, path.Join("ppt", target))
	}
	return names, nil
}

// slideNamesByNumber lists ppt/slides/slideN.xml parts in numeric
// order.
func slideNamesByNumber(reader *zip.Reader) []string {
	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for _, f := range reader.File {
		if !strings.HasPrefix(f.Name, "ppt/slides/slide") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		digits := strings.TrimSuffix(strings.TrimPrefix(f.Name, "ppt/slides/slide"), ".xml")
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		found = append(found, numbered{name: f.Name, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.name
	}
	return names
}

func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("part %q not found", name)
}

// shapeText is one text shape in encounter order.
type shapeText struct {
	text        string
	placeholder bool
	grouped     bool
}

// shapeXML is the subset of a p:sp element we need.
type shapeXML struct {
	NvSpPr struct {
		NvPr struct {
			Ph *struct{} `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type txBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphXML preserves the interleaving of runs and line breaks.
type paragraphXML struct {
	text strings.Builder
}

// UnmarshalXML walks the paragraph's children in document order,
// concatenating run text and turning a:br into a newline.
func (p *paragraphXML) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r", "fld":
				var run struct {
					Text string `xml:"t"`
				}
				if err := dec.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.text.WriteString(run.Text)
			case "br":
				p.text.WriteString("\n")
				if err := dec.Skip(); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// parseSlideShapes walks one slide part and returns its text shapes
// in document order. Shapes nested in a group are encountered at the
// group's position, flattened after the shapes already examined.
func parseSlideShapes(content []byte) ([]shapeText, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var shapes []shapeText
	groupDepth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "grpSp":
				groupDepth++
			case "sp":
				var sp shapeXML
				if err := dec.DecodeElement(&sp, &t); err != nil {
					return nil, err
				}
				shapes = append(shapes, shapeText{
					text:        shapeBody(sp),
					placeholder: sp.NvSpPr.NvPr.Ph != nil,
					grouped:     groupDepth > 0,
				})
			}
		case xml.EndElement:
			if t.Name.Local == "grpSp" {
				groupDepth--
			}
		}
	}
	return shapes, nil
}

// shapeBody joins a shape's paragraphs with newlines and trims the
// result.
func shapeBody(sp shapeXML) string {
	if sp.TxBody == nil {
		return ""
	}
	lines := make([]string, 0, len(sp.TxBody.Paragraphs))
	for i := range sp.TxBody.Paragraphs {
		lines = append(lines, sp.TxBody.Paragraphs[i].text.String())
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
