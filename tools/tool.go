package tools

import (
	"github.com/pkg/errors"

	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/fonts"
	"github.com/pagemark/pagemark/geom"
)

// Kind identifies a registered tool.
type Kind string

const (
	KindFreehand    Kind = "freehand"
	KindRectangle   Kind = "rectangle"
	KindCircle      Kind = "circle"
	KindLine        Kind = "line"
	KindHighlighter Kind = "highlighter"
	KindText        Kind = "text"
	KindEraser      Kind = "eraser"
	KindSelect      Kind = "select"
)

// ParseKind maps a tool identifier to its Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindFreehand, KindRectangle, KindCircle, KindLine,
		KindHighlighter, KindText, KindEraser, KindSelect:
		return Kind(s), nil
	}
	return "", errors.Errorf("unknown tool %q", s)
}

// Tool is one annotation-creation or annotation-editing behavior. Concrete
// tools additionally implement the handler interfaces below for the events
// they care about; the router treats a missing handler as a no-op.
type Tool interface {
	Kind() Kind
}

// MouseDownHandler starts a drag interaction.
type MouseDownHandler interface {
	MouseDown(*Context)
}

// MouseMoveHandler updates an in-progress drag.
type MouseMoveHandler interface {
	MouseMove(*Context)
}

// MouseUpHandler finalizes a drag interaction.
type MouseUpHandler interface {
	MouseUp(*Context)
}

// ClickHandler performs a single-click interaction.
type ClickHandler interface {
	Click(*Context)
}

// Context is the per-event value the router hands to a tool handler.
// Pos is already converted to document space. Mutable in-progress drag
// state lives in State, owned by the router, not by tool implementations.
type Context struct {
	Page    int
	Pos     geom.Point
	Store   *annotation.Store
	Style   annotation.Style
	Text    string // pending content for the text tool
	Probe   fonts.Prober
	State   *Interaction
	Epsilon float64

	commit func()
}

// Commit finalizes the current store state into history.
func (c *Context) Commit() {
	if c.commit != nil {
		c.commit()
	}
}
