package tools

import (
	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/log"
)

// textTool places a text annotation at the click point. Typography is
// seeded from the font probe when the point lands inside a detected text
// run; a miss or a cold layout cache silently keeps the last chosen style.
type textTool struct{}

func (t *textTool) Kind() Kind { return KindText }

func (t *textTool) Click(c *Context) {
	a := annotation.New(annotation.TypeText, c.Page, c.Style)
	a.Start = c.Pos
	a.End = c.Pos
	a.Text = c.Text
	if c.Probe != nil {
		if rs, ok := c.Probe.StyleAt(c.Page, c.Pos); ok {
			a.Style.FontFamily = rs.Family
			a.Style.FontSize = rs.Size
			a.Style.Bold = rs.Bold
			a.Style.Italic = rs.Italic
			log.Trace.Printf("probe hit on page %d: %s %.0fpt", c.Page, rs.Family, rs.Size)
		}
	}
	c.Store.Add(a)
	c.Commit()
}

// eraserTool removes the topmost annotation under the click point.
type eraserTool struct{}

func (t *eraserTool) Kind() Kind { return KindEraser }

func (t *eraserTool) Click(c *Context) {
	hit := c.Store.TopmostAt(c.Page, c.Pos)
	if hit == nil {
		return
	}
	c.Store.Remove(hit.ID)
	c.Commit()
}
