package tools

import (
	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/geom"
)

// Interaction holds the mutable state of one in-progress drag: the start
// position, the last seen position, and the provisional annotation being
// shaped. The router owns exactly one Interaction per session.
type Interaction struct {
	Active      bool
	Start       geom.Point
	Last        geom.Point
	Provisional *annotation.Annotation
}

// Begin marks a drag as in progress.
func (s *Interaction) Begin(start geom.Point, a *annotation.Annotation) {
	s.Active = true
	s.Start = start
	s.Last = start
	s.Provisional = a
}

// Reset clears the drag state.
func (s *Interaction) Reset() {
	*s = Interaction{}
}
