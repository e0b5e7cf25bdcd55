package annotation

import (
	uuid "github.com/google/uuid"

	"github.com/pagemark/pagemark/geom"
)

// Type identifies the kind of mark an annotation represents.
type Type string

const (
	TypeText       Type = "text"
	TypeHighlight  Type = "highlight"
	TypeFreehand   Type = "freehand"
	TypeRectangle  Type = "rectangle"
	TypeCircle     Type = "circle"
	TypeLine       Type = "line"
	TypeEraserMark Type = "eraser-mark"
)

// Style carries the visual attributes of an annotation. The font fields
// only apply to text annotations.
type Style struct {
	Color       string  `yaml:"color"`
	StrokeWidth float64 `yaml:"stroke_width"`
	FontFamily  string  `yaml:"font_family"`
	FontSize    float64 `yaml:"font_size"`
	Bold        bool    `yaml:"bold"`
	Italic      bool    `yaml:"italic"`
	Underline   bool    `yaml:"underline"`
}

// Annotation is one user-placed mark on a page. Geometry is stored in
// document space only; zoom is applied at render time by the transformer.
// Two-point types use Start/End, freehand uses Path, text uses Start as
// its baseline anchor.
type Annotation struct {
	ID    string
	Type  Type
	Page  int
	Start geom.Point
	End   geom.Point
	Path  []geom.Point
	Style Style
	Text  string
}

// New creates an annotation with a fresh ID.
func New(t Type, page int, style Style) *Annotation {
	return &Annotation{
		ID:    uuid.New().String(),
		Type:  t,
		Page:  page,
		Style: style,
	}
}

// Clone returns a deep copy.
func (a *Annotation) Clone() *Annotation {
	dup := *a
	if a.Path != nil {
		dup.Path = append([]geom.Point(nil), a.Path...)
	}
	return &dup
}

// Translate moves the whole annotation by d.
func (a *Annotation) Translate(d geom.Point) {
	a.Start = a.Start.Add(d)
	a.End = a.End.Add(d)
	for i := range a.Path {
		a.Path[i] = a.Path[i].Add(d)
	}
}

// hit slop around thin geometry, in document units
const hitSlop = 3.0

// Bounds returns the hit-test box of the annotation in document space.
func (a *Annotation) Bounds() geom.Rect {
	switch a.Type {
	case TypeFreehand, TypeEraserMark:
		return geom.PathBounds(a.Path).Inset(-hitSlop)
	case TypeLine:
		return geom.RectFromPoints(a.Start, a.End).Inset(-(a.Style.StrokeWidth/2 + hitSlop))
	case TypeText:
		// Approximate extent from content length and font size.
		w := float64(len(a.Text)) * a.Style.FontSize * 0.5
		if w < a.Style.FontSize {
			w = a.Style.FontSize
		}
		return geom.Rect{X: a.Start.X, Y: a.Start.Y - a.Style.FontSize, W: w, H: a.Style.FontSize * 1.2}
	default:
		return geom.RectFromPoints(a.Start, a.End)
	}
}
