package tools

// selectTool drags an existing annotation. Mouse-down grabs the topmost
// annotation under the pointer, move translates its geometry in place,
// mouse-up commits. Grabbing nothing makes the whole drag a no-op.
type selectTool struct{}

func (t *selectTool) Kind() Kind { return KindSelect }

func (t *selectTool) MouseDown(c *Context) {
	hit := c.Store.TopmostAt(c.Page, c.Pos)
	if hit == nil {
		return
	}
	c.State.Begin(c.Pos, hit)
}

func (t *selectTool) MouseMove(c *Context) {
	if !c.State.Active {
		return
	}
	c.State.Provisional.Translate(c.Pos.Sub(c.State.Last))
	c.State.Last = c.Pos
}

func (t *selectTool) MouseUp(c *Context) {
	if !c.State.Active {
		return
	}
	a := c.State.Provisional
	a.Translate(c.Pos.Sub(c.State.Last))
	start := c.State.Start
	c.State.Reset()
	if c.Pos.Dist(start) < c.Epsilon {
		// Effectively unmoved: snap back instead of polluting history.
		a.Translate(start.Sub(c.Pos))
		return
	}
	c.Commit()
}
