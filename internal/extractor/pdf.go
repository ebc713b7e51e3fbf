// Package extractor pulls positioned text tokens out of text-layer PDFs.
// It is the only place that touches the document's binary format; the rest
// of the pipeline sees nothing but (text, left edge, vertical offset)
// triples.
package extractor

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// wordGap is the widest horizontal gap, in PDF points, between two text
// pieces that still belong to the same printed word. Some PDFs emit text
// character by character; glueing near-adjacent pieces back together
// recovers whole words.
const wordGap = 1.0

// defaultPageHeight is the A4 height in points, used when a page carries
// no resolvable MediaBox.
const defaultPageHeight = 842.0

// ExtractTokens reads a PDF file and returns the positioned tokens of
// every page. Vertical offsets are measured from the top of the page, so
// smaller Y means higher on the page. A PDF with no text layer at all
// (scanned or image-only) returns models.ErrNoTextLayer.
func ExtractTokens(filePath string) (pages []models.Page, err error) {
	// The PDF library panics on some malformed files; never let that
	// take the whole process down.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	total := 0
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		tokens := pageTokens(page)
		total += len(tokens)
		pages = append(pages, models.Page{Number: i, Tokens: tokens})
	}

	if total == 0 {
		return nil, fmt.Errorf("%w: the file may be scanned or image-based", models.ErrNoTextLayer)
	}

	return pages, nil
}

// pageTokens converts a page's raw text pieces into word tokens ordered
// top to bottom, left to right.
func pageTokens(page pdf.Page) []models.Token {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	height := mediaBoxHeight(page)

	pieces := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		pieces = append(pieces, t)
	}

	// PDF Y grows bottom-up; reading order is top-down. Sort by row
	// first, then left to right within a row.
	sort.SliceStable(pieces, func(i, j int) bool {
		yi := int(math.Round(pieces[i].Y))
		yj := int(math.Round(pieces[j].Y))
		if yi != yj {
			return yi > yj
		}
		return pieces[i].X < pieces[j].X
	})

	return mergePieces(pieces, height)
}

// mergePieces glues horizontally adjacent pieces on the same visual row
// into single word tokens. A token keeps the left edge of its first piece.
func mergePieces(pieces []pdf.Text, pageHeight float64) []models.Token {
	var tokens []models.Token

	for i := 0; i < len(pieces); {
		start := pieces[i]
		text := start.S
		end := start.X + start.W

		j := i + 1
		for j < len(pieces) {
			next := pieces[j]
			if int(math.Round(next.Y)) != int(math.Round(start.Y)) {
				break
			}
			if next.X-end > wordGap {
				break
			}
			text += next.S
			end = next.X + next.W
			j++
		}

		tokens = append(tokens, models.Token{
			Text: strings.TrimSpace(text),
			X:    start.X,
			Y:    pageHeight - start.Y,
		})
		i = j
	}

	return tokens
}

// mediaBoxHeight resolves the page height from the MediaBox, walking up
// the page tree for inherited values.
func mediaBoxHeight(page pdf.Page) float64 {
	v := page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			h := mb.Index(3).Float64() - mb.Index(1).Float64()
			if h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}
