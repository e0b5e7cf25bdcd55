package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/fonts"
	"github.com/pagemark/pagemark/geom"
)

type harness struct {
	router    *Router
	store     *annotation.Store
	history   *annotation.History
	transform *geom.Transformer
}

func newHarness() *harness {
	h := &harness{
		store:     annotation.NewStore(),
		history:   annotation.NewHistory(),
		transform: geom.NewTransformer(),
	}
	h.router = NewRouter(h.store, h.transform, func() {
		h.history.Commit(h.store)
	})
	return h
}

func (h *harness) undo() bool {
	snap := h.history.Undo()
	if snap == nil {
		return false
	}
	h.store.Restore(snap)
	return true
}

func (h *harness) redo() bool {
	snap := h.history.Redo()
	if snap == nil {
		return false
	}
	h.store.Restore(snap)
	return true
}

func (h *harness) drag(tool Kind, from, to geom.Point) {
	if err := h.router.SetActive(tool); err != nil {
		panic(err)
	}
	h.router.MouseDown(from)
	h.router.MouseMove(geom.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2})
	h.router.MouseUp(to)
}

func TestRectangleDragCommitUndoRedo(t *testing.T) {
	h := newHarness()
	h.drag(KindRectangle, geom.Point{X: 10, Y: 10}, geom.Point{X: 100, Y: 80})

	page := h.store.Page(1)
	require.Len(t, page, 1)
	a := page[0]
	assert.Equal(t, annotation.TypeRectangle, a.Type)
	assert.Equal(t, 1, a.Page)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, W: 90, H: 70}, a.Bounds())
	require.Equal(t, 1, h.history.Len())
	require.Equal(t, 0, h.history.Cursor())

	require.True(t, h.undo())
	assert.Empty(t, h.store.Page(1))

	require.True(t, h.redo())
	page = h.store.Page(1)
	require.Len(t, page, 1)
	assert.Equal(t, a.ID, page[0].ID)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, W: 90, H: 70}, page[0].Bounds())
}

func TestDragConvertsScreenToDocument(t *testing.T) {
	h := newHarness()
	h.transform.SetZoom(2)
	h.transform.SetOrigin(geom.Point{X: 100, Y: 50})

	h.drag(KindRectangle, geom.Point{X: 120, Y: 70}, geom.Point{X: 300, Y: 210})

	page := h.store.Page(1)
	require.Len(t, page, 1)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, W: 90, H: 70}, page[0].Bounds())
}

func TestZoomChangeLeavesStoredGeometryAlone(t *testing.T) {
	h := newHarness()
	h.drag(KindRectangle, geom.Point{X: 10, Y: 10}, geom.Point{X: 100, Y: 80})
	before := *h.store.Page(1)[0]

	h.transform.SetZoom(3.5)
	// Rendering only reads the projection; stored coordinates must not move.
	_ = h.transform.ToScreen(before.Start)
	after := *h.store.Page(1)[0]
	assert.Equal(t, before.Start, after.Start)
	assert.Equal(t, before.End, after.End)
}

func TestDegenerateDragLeavesNothing(t *testing.T) {
	h := newHarness()
	for _, kind := range []Kind{KindRectangle, KindCircle, KindLine, KindHighlighter, KindFreehand} {
		h.drag(kind, geom.Point{X: 50, Y: 50}, geom.Point{X: 50.2, Y: 50.1})
	}
	assert.Empty(t, h.store.Page(1))
	assert.Equal(t, 0, h.history.Len())
}

func TestFreehandRecordsPath(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.router.SetActive(KindFreehand))
	h.router.MouseDown(geom.Point{X: 10, Y: 10})
	h.router.MouseMove(geom.Point{X: 20, Y: 15})
	h.router.MouseMove(geom.Point{X: 30, Y: 25})
	h.router.MouseUp(geom.Point{X: 40, Y: 20})

	page := h.store.Page(1)
	require.Len(t, page, 1)
	assert.Equal(t, annotation.TypeFreehand, page[0].Type)
	assert.Len(t, page[0].Path, 4)
	assert.Equal(t, 1, h.history.Len())
}

func TestEraserRemovesTopmostOnly(t *testing.T) {
	h := newHarness()
	h.drag(KindRectangle, geom.Point{X: 10, Y: 10}, geom.Point{X: 100, Y: 80})
	h.drag(KindRectangle, geom.Point{X: 50, Y: 40}, geom.Point{X: 150, Y: 120})
	bottom := h.store.Page(1)[0]
	top := h.store.Page(1)[1]

	require.NoError(t, h.router.SetActive(KindEraser))
	h.router.Click(geom.Point{X: 60, Y: 50}) // inside both

	page := h.store.Page(1)
	require.Len(t, page, 1)
	assert.Equal(t, bottom.ID, page[0].ID)
	assert.NotEqual(t, top.ID, page[0].ID)
}

func TestEraserMissIsNoOp(t *testing.T) {
	h := newHarness()
	h.drag(KindRectangle, geom.Point{X: 10, Y: 10}, geom.Point{X: 100, Y: 80})
	commits := h.history.Len()

	require.NoError(t, h.router.SetActive(KindEraser))
	h.router.Click(geom.Point{X: 500, Y: 500})

	assert.Len(t, h.store.Page(1), 1)
	assert.Equal(t, commits, h.history.Len())
}

func TestClickToolsIgnoreDragEvents(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.router.SetActive(KindEraser))
	// Missing handlers are a defined no-op, not an error.
	h.router.MouseDown(geom.Point{X: 10, Y: 10})
	h.router.MouseMove(geom.Point{X: 20, Y: 20})
	h.router.MouseUp(geom.Point{X: 30, Y: 30})
	assert.Empty(t, h.store.Page(1))
	assert.False(t, h.router.Dragging())
}

func TestDragToolsIgnoreClick(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.router.SetActive(KindRectangle))
	h.router.Click(geom.Point{X: 10, Y: 10})
	assert.Empty(t, h.store.Page(1))
}

func TestSetActiveRejectsUnregisteredTool(t *testing.T) {
	h := newHarness()
	assert.Error(t, h.router.SetActive(Kind("laser")))
}

func TestTextClickSeedsStyleFromProbe(t *testing.T) {
	h := newHarness()
	index := fonts.NewIndex()
	index.SetPageRuns(1, []fonts.TextRun{
		{
			BBox:  geom.Rect{X: 40, Y: 86, W: 120, H: 18},
			Text:  "Experience",
			Style: fonts.RunStyle{Family: "Helvetica", Size: 14, Bold: true},
		},
	})
	h.router.SetProbe(index)
	h.router.SetStyle(annotation.Style{Color: "#000000", FontFamily: "Courier", FontSize: 10})

	require.NoError(t, h.router.SetActive(KindText))
	h.router.SetTextInput("Added Skill")
	h.router.Click(geom.Point{X: 60, Y: 90}) // inside the heading block

	page := h.store.Page(1)
	require.Len(t, page, 1)
	a := page[0]
	assert.Equal(t, annotation.TypeText, a.Type)
	assert.Equal(t, "Added Skill", a.Text)
	assert.Equal(t, 14.0, a.Style.FontSize)
	assert.True(t, a.Style.Bold)
	assert.Equal(t, "Helvetica", a.Style.FontFamily)
	assert.Equal(t, 1, h.history.Len())
}

func TestTextClickFallsBackOnProbeMiss(t *testing.T) {
	h := newHarness()
	h.router.SetProbe(fonts.NewIndex()) // cold cache: every probe misses
	chosen := annotation.Style{Color: "#112233", FontFamily: "Times", FontSize: 11, Italic: true}
	h.router.SetStyle(chosen)

	require.NoError(t, h.router.SetActive(KindText))
	h.router.SetTextInput("note")
	h.router.Click(geom.Point{X: 10, Y: 10})

	page := h.store.Page(1)
	require.Len(t, page, 1)
	assert.Equal(t, chosen, page[0].Style)
}

func TestClickConsumesPendingText(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.router.SetActive(KindText))
	h.router.SetTextInput("once")
	h.router.Click(geom.Point{X: 10, Y: 10})
	h.router.Click(geom.Point{X: 200, Y: 200})

	page := h.store.Page(1)
	require.Len(t, page, 2)
	assert.Equal(t, "once", page[0].Text)
	assert.Equal(t, "", page[1].Text)
}

func TestSelectDragsTopmostAnnotation(t *testing.T) {
	h := newHarness()
	h.drag(KindRectangle, geom.Point{X: 10, Y: 10}, geom.Point{X: 100, Y: 80})

	require.NoError(t, h.router.SetActive(KindSelect))
	h.router.MouseDown(geom.Point{X: 50, Y: 40})
	h.router.MouseMove(geom.Point{X: 60, Y: 50})
	h.router.MouseUp(geom.Point{X: 70, Y: 60})

	page := h.store.Page(1)
	require.Len(t, page, 1)
	assert.Equal(t, geom.Rect{X: 30, Y: 30, W: 90, H: 70}, page[0].Bounds())
	assert.Equal(t, 2, h.history.Len())
}

func TestSelectMissIsNoOp(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.router.SetActive(KindSelect))
	h.router.MouseDown(geom.Point{X: 10, Y: 10})
	h.router.MouseMove(geom.Point{X: 50, Y: 50})
	h.router.MouseUp(geom.Point{X: 90, Y: 90})
	assert.Equal(t, 0, h.history.Len())
}

func TestToolSwitchAbandonsProvisional(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.router.SetActive(KindRectangle))
	h.router.MouseDown(geom.Point{X: 10, Y: 10})
	h.router.MouseMove(geom.Point{X: 50, Y: 50})
	require.True(t, h.router.Dragging())

	require.NoError(t, h.router.SetActive(KindEraser))
	assert.Empty(t, h.store.Page(1))
	assert.Equal(t, 0, h.history.Len())
	assert.False(t, h.router.Dragging())
}

func TestCustomToolRegistration(t *testing.T) {
	h := newHarness()
	h.router.Registry().Register(&shapeTool{kind: Kind("stamp"), typ: annotation.TypeRectangle})
	require.NoError(t, h.router.SetActive(Kind("stamp")))
	h.drag(Kind("stamp"), geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 10})
	assert.Len(t, h.store.Page(1), 1)
}
