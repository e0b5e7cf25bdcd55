// Package fonts resolves the typography implied by a document's own text
// at a given position, used to seed new text annotations.
package fonts

import (
	"context"
	"strings"

	"github.com/pagemark/pagemark/geom"
)

// RunStyle is the resolved typography of a text run.
type RunStyle struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// TextRun is one block of document text with its bounding box in document
// space (top-left origin) and its resolved style.
type TextRun struct {
	BBox  geom.Rect
	Text  string
	Style RunStyle
}

// Layout produces the text-run layout of a page. The pdfcpu-backed
// ContentAnalyzer implements it; hosts with a real renderer can substitute
// their own.
type Layout interface {
	PageRuns(ctx context.Context, page int) ([]TextRun, error)
}

// Prober answers point lookups against cached page layouts. A probe on a
// page whose layout has not been cached yet reports a miss; callers fall
// back to their last chosen style.
type Prober interface {
	StyleAt(page int, p geom.Point) (RunStyle, bool)
}

// ParseBaseFont derives a RunStyle from a PDF BaseFont name such as
// "ABCDEF+Helvetica-BoldOblique". Size is left zero.
func ParseBaseFont(name string) RunStyle {
	if i := strings.IndexByte(name, '+'); i == 6 {
		name = name[i+1:] // subset prefix
	}
	rs := RunStyle{Family: name}
	lower := strings.ToLower(name)
	rs.Bold = strings.Contains(lower, "bold")
	rs.Italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
	if i := strings.IndexByte(name, '-'); i > 0 {
		rs.Family = name[:i]
	} else if i := strings.IndexByte(name, ','); i > 0 {
		rs.Family = name[:i]
	}
	return rs
}
