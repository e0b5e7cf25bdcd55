package fonts

import (
	"context"

	"github.com/pagemark/pagemark/document"
)

// ContentAnalyzer derives an approximate text-run layout from a page's
// content stream: it follows the text-positioning operators and estimates
// run boxes from font size and glyph count. Good enough to seed new text
// annotations with the typography under the click point; hosts with a
// real renderer can swap in an exact Layout.
type ContentAnalyzer struct {
	doc *document.Document
}

// NewContentAnalyzer returns an analyzer over doc.
func NewContentAnalyzer(doc *document.Document) *ContentAnalyzer {
	return &ContentAnalyzer{doc: doc}
}

// PageRuns implements Layout.
func (a *ContentAnalyzer) PageRuns(ctx context.Context, page int) ([]TextRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, pageHeight, err := a.doc.PageSize(page)
	if err != nil {
		return nil, err
	}
	data, err := a.doc.PageContent(page)
	if err != nil {
		return nil, err
	}
	faces, err := a.doc.PageFonts(page)
	if err != nil {
		faces = nil // fall back to resource names
	}
	return scanContent(data, pageHeight, faces), nil
}
