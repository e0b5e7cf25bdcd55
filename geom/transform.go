package geom

// Transformer converts between viewport pixels and document space.
// Stored geometry never encodes zoom; the transformer is the only place
// the current zoom factor is applied.
type Transformer struct {
	zoom   float64
	origin Point // top-left of the page container, in viewport pixels
}

// NewTransformer returns a transformer at zoom 1 with a zero origin.
func NewTransformer() *Transformer {
	return &Transformer{zoom: 1}
}

// SetZoom updates the zoom factor. Non-positive values are ignored.
func (t *Transformer) SetZoom(z float64) {
	if z > 0 {
		t.zoom = z
	}
}

// Zoom returns the current zoom factor.
func (t *Transformer) Zoom() float64 {
	return t.zoom
}

// SetOrigin updates the container origin in viewport pixels.
func (t *Transformer) SetOrigin(o Point) {
	t.origin = o
}

// ToDocument maps a viewport pixel position into document space.
func (t *Transformer) ToDocument(screen Point) Point {
	return Point{
		X: (screen.X - t.origin.X) / t.zoom,
		Y: (screen.Y - t.origin.Y) / t.zoom,
	}
}

// ToScreen maps a document-space position into viewport pixels.
func (t *Transformer) ToScreen(doc Point) Point {
	return Point{
		X: doc.X*t.zoom + t.origin.X,
		Y: doc.Y*t.zoom + t.origin.Y,
	}
}
