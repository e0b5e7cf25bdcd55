package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark/pagemark/geom"
)

func rect(page int, x1, y1, x2, y2 float64) *Annotation {
	a := New(TypeRectangle, page, Style{Color: "#000000", StrokeWidth: 2})
	a.Start = geom.Point{X: x1, Y: y1}
	a.End = geom.Point{X: x2, Y: y2}
	return a
}

func TestStoreAddAndPageOrder(t *testing.T) {
	s := NewStore()
	a := rect(1, 0, 0, 10, 10)
	b := rect(1, 5, 5, 15, 15)
	c := rect(2, 0, 0, 10, 10)
	s.Add(a)
	s.Add(b)
	s.Add(c)

	page1 := s.Page(1)
	require.Len(t, page1, 2)
	assert.Equal(t, a.ID, page1[0].ID)
	assert.Equal(t, b.ID, page1[1].ID)
	assert.Equal(t, []int{1, 2}, s.Pages())
	assert.Equal(t, 3, s.Len())
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	a := rect(1, 0, 0, 10, 10)
	s.Add(a)

	assert.True(t, s.Remove(a.ID))
	assert.False(t, s.Remove(a.ID))
	assert.Empty(t, s.Page(1))
}

func TestTopmostAtPrefersHighestZOrder(t *testing.T) {
	s := NewStore()
	bottom := rect(1, 10, 10, 100, 80)
	top := rect(1, 50, 40, 120, 100)
	s.Add(bottom)
	s.Add(top)

	// Overlap region: the later addition wins.
	hit := s.TopmostAt(1, geom.Point{X: 60, Y: 50})
	require.NotNil(t, hit)
	assert.Equal(t, top.ID, hit.ID)

	// Only the bottom rectangle covers this point.
	hit = s.TopmostAt(1, geom.Point{X: 15, Y: 15})
	require.NotNil(t, hit)
	assert.Equal(t, bottom.ID, hit.ID)

	assert.Nil(t, s.TopmostAt(1, geom.Point{X: 500, Y: 500}))
	assert.Nil(t, s.TopmostAt(2, geom.Point{X: 60, Y: 50}))
}

func TestStoreClearPage(t *testing.T) {
	s := NewStore()
	s.Add(rect(1, 0, 0, 10, 10))
	s.Add(rect(1, 5, 5, 15, 15))
	s.Add(rect(2, 0, 0, 10, 10))

	assert.Equal(t, 2, s.ClearPage(1))
	assert.Equal(t, 0, s.ClearPage(1))
	assert.Equal(t, 1, s.Len())
}

func TestCloneIsDeep(t *testing.T) {
	s := NewStore()
	a := rect(1, 10, 10, 100, 80)
	s.Add(a)

	snap := s.Clone()
	a.Start = geom.Point{X: 999, Y: 999}

	cloned := snap.Page(1)[0]
	assert.Equal(t, geom.Point{X: 10, Y: 10}, cloned.Start)
	assert.Equal(t, a.ID, cloned.ID)
}

func TestRestoreKeepsReceiverValid(t *testing.T) {
	s := NewStore()
	s.Add(rect(1, 0, 0, 10, 10))
	snap := s.Clone()
	s.Add(rect(1, 5, 5, 15, 15))

	s.Restore(snap)
	assert.Equal(t, 1, s.Len())

	// The restored contents are copies: mutating the snapshot afterwards
	// must not leak into the live store.
	snap.Page(1)[0].Start = geom.Point{X: 42, Y: 42}
	assert.Equal(t, geom.Point{X: 0, Y: 0}, s.Page(1)[0].Start)
}

func TestAnnotationBounds(t *testing.T) {
	line := New(TypeLine, 1, Style{StrokeWidth: 4})
	line.Start = geom.Point{X: 10, Y: 10}
	line.End = geom.Point{X: 110, Y: 10}
	assert.True(t, line.Bounds().Contains(geom.Point{X: 60, Y: 12}))

	text := New(TypeText, 1, Style{FontSize: 14})
	text.Start = geom.Point{X: 50, Y: 100}
	text.Text = "Skills"
	assert.True(t, text.Bounds().Contains(geom.Point{X: 55, Y: 95}))
}
