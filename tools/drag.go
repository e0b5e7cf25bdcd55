package tools

import (
	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/geom"
	"github.com/pagemark/pagemark/log"
)

// DefaultEpsilon is the degeneracy threshold in document units: a drag
// whose extent stays below it leaves no annotation behind.
const DefaultEpsilon = 0.5

func annotationTypeFor(k Kind) annotation.Type {
	switch k {
	case KindRectangle:
		return annotation.TypeRectangle
	case KindCircle:
		return annotation.TypeCircle
	case KindLine:
		return annotation.TypeLine
	case KindHighlighter:
		return annotation.TypeHighlight
	default:
		return annotation.TypeFreehand
	}
}

// shapeTool covers the two-point drag tools: rectangle, circle, line and
// highlighter. Down creates a provisional annotation, move reshapes its
// end point in place, up either discards a degenerate result or commits.
type shapeTool struct {
	kind Kind
	typ  annotation.Type
}

func (t *shapeTool) Kind() Kind { return t.kind }

func (t *shapeTool) MouseDown(c *Context) {
	a := annotation.New(t.typ, c.Page, c.Style)
	a.Start = c.Pos
	a.End = c.Pos
	c.Store.Add(a)
	c.State.Begin(c.Pos, a)
}

func (t *shapeTool) MouseMove(c *Context) {
	if !c.State.Active {
		return
	}
	c.State.Provisional.End = c.Pos
	c.State.Last = c.Pos
}

func (t *shapeTool) MouseUp(c *Context) {
	if !c.State.Active {
		return
	}
	a := c.State.Provisional
	a.End = c.Pos
	c.State.Reset()
	if a.Start.Dist(a.End) < c.Epsilon {
		c.Store.Remove(a.ID)
		log.Trace.Printf("discarding degenerate %s on page %d", a.Type, a.Page)
		return
	}
	c.Commit()
}

// freehandTool records the full drag path.
type freehandTool struct{}

func (t *freehandTool) Kind() Kind { return KindFreehand }

func (t *freehandTool) MouseDown(c *Context) {
	a := annotation.New(annotation.TypeFreehand, c.Page, c.Style)
	a.Start = c.Pos
	a.End = c.Pos
	a.Path = []geom.Point{c.Pos}
	c.Store.Add(a)
	c.State.Begin(c.Pos, a)
}

func (t *freehandTool) MouseMove(c *Context) {
	if !c.State.Active {
		return
	}
	a := c.State.Provisional
	a.Path = append(a.Path, c.Pos)
	a.End = c.Pos
	c.State.Last = c.Pos
}

func (t *freehandTool) MouseUp(c *Context) {
	if !c.State.Active {
		return
	}
	a := c.State.Provisional
	a.Path = append(a.Path, c.Pos)
	a.End = c.Pos
	c.State.Reset()
	b := geom.PathBounds(a.Path)
	if b.W < c.Epsilon && b.H < c.Epsilon {
		c.Store.Remove(a.ID)
		log.Trace.Printf("discarding degenerate freehand path on page %d", a.Page)
		return
	}
	c.Commit()
}
