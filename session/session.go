// Package session owns one in-memory editing session: the live annotation
// store, its history, the active tool, and the coordinate transformer.
// Everything is discarded when the session closes; the only durable output
// is the export artifact.
package session

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/config"
	"github.com/pagemark/pagemark/export"
	"github.com/pagemark/pagemark/fonts"
	"github.com/pagemark/pagemark/geom"
	"github.com/pagemark/pagemark/tools"
)

// Document is what the session needs from the loaded source document.
// *document.Document implements it.
type Document interface {
	Reader() io.ReadSeeker
	PageCount() int
	PageSize(page int) (w, h float64, err error)
}

// Session is the engine surface a host UI drives. It is single-owner:
// pointer events, store mutations, history commits and reads all happen
// on the caller's loop. The asynchronous parts (layout warmup and the
// export call into the backend) never touch the live store.
type Session struct {
	doc       Document
	store     *annotation.Store
	history   *annotation.History
	transform *geom.Transformer
	router    *tools.Router
	index     *fonts.Index
	layout    fonts.Layout
	exporter  *export.Exporter
	thumbnail bool
}

// New starts an editing session over doc. A nil cfg uses the defaults.
func New(doc Document, cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		doc:       doc,
		store:     annotation.NewStore(),
		history:   annotation.NewHistory(),
		transform: geom.NewTransformer(),
		index:     fonts.NewIndex(),
		exporter:  export.NewExporter(),
		thumbnail: cfg.Export.Thumbnail,
	}
	s.router = tools.NewRouter(s.store, s.transform, s.commit)
	s.router.SetStyle(cfg.Style)
	s.router.SetEpsilon(cfg.Epsilon)
	s.router.SetProbe(s.index)
	return s
}

func (s *Session) commit() {
	s.history.Commit(s.store)
}

// Document returns the source document handle.
func (s *Session) Document() Document { return s.doc }

// UseLayout installs the text-layout analyzer feeding the font probe.
func (s *Session) UseLayout(l fonts.Layout) { s.layout = l }

// WarmLayout analyzes all pages and populates the probe cache. It is safe
// to run in the background; probes issued before a page is done silently
// fall back to the last chosen style.
func (s *Session) WarmLayout(ctx context.Context) error {
	if s.layout == nil {
		return errors.New("no layout analyzer installed")
	}
	return s.index.Warm(ctx, s.doc.PageCount(), s.layout)
}

// Index exposes the probe cache so hosts with their own renderer can feed
// page layouts directly.
func (s *Session) Index() *fonts.Index { return s.index }

// Registry exposes the tool registry for custom tool registration.
func (s *Session) Registry() *tools.Registry { return s.router.Registry() }

// SetZoom updates the zoom factor used to project stored geometry.
func (s *Session) SetZoom(z float64) { s.transform.SetZoom(z) }

// Zoom returns the current zoom factor.
func (s *Session) Zoom() float64 { return s.transform.Zoom() }

// SetViewportOrigin sets the page container origin in viewport pixels.
func (s *Session) SetViewportOrigin(o geom.Point) { s.transform.SetOrigin(o) }

// Transformer returns the coordinate transformer for overlay rendering.
func (s *Session) Transformer() *geom.Transformer { return s.transform }

// SetPage switches the page pointer events apply to.
func (s *Session) SetPage(page int) error {
	if page < 1 || page > s.doc.PageCount() {
		return errors.Errorf("page %d out of range 1..%d", page, s.doc.PageCount())
	}
	s.router.SetPage(page)
	return nil
}

// Page returns the current page.
func (s *Session) Page() int { return s.router.Page() }

// SelectTool activates a tool by identifier.
func (s *Session) SelectTool(name string) error {
	kind, err := tools.ParseKind(name)
	if err != nil {
		return err
	}
	return s.router.SetActive(kind)
}

// ActiveTool returns the active tool identifier.
func (s *Session) ActiveTool() string { return string(s.router.Active()) }

// SetStyle records the explicitly chosen style for new annotations.
func (s *Session) SetStyle(st annotation.Style) { s.router.SetStyle(st) }

// Style returns the current style.
func (s *Session) Style() annotation.Style { return s.router.Style() }

// SetTextInput stages content for the next text-tool click.
func (s *Session) SetTextInput(text string) { s.router.SetTextInput(text) }

// MouseDown forwards a pointer-down event in viewport pixels.
func (s *Session) MouseDown(screen geom.Point) { s.router.MouseDown(screen) }

// MouseMove forwards a pointer-move event in viewport pixels.
func (s *Session) MouseMove(screen geom.Point) { s.router.MouseMove(screen) }

// MouseUp forwards a pointer-up event in viewport pixels.
func (s *Session) MouseUp(screen geom.Point) { s.router.MouseUp(screen) }

// Click forwards a single-click event in viewport pixels.
func (s *Session) Click(screen geom.Point) { s.router.Click(screen) }

// Annotations returns the page's annotations in z-order for overlay
// rendering at the current zoom.
func (s *Session) Annotations(page int) []*annotation.Annotation {
	return s.store.Page(page)
}

// AnnotationCount returns the total number of live annotations.
func (s *Session) AnnotationCount() int { return s.store.Len() }

// ClearPage removes every annotation on page as one committed edit.
func (s *Session) ClearPage(page int) int {
	n := s.store.ClearPage(page)
	if n > 0 {
		s.commit()
	}
	return n
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Undo restores the previous snapshot into the live store.
func (s *Session) Undo() bool {
	snap := s.history.Undo()
	if snap == nil {
		return false
	}
	s.store.Restore(snap)
	return true
}

// Redo restores the next snapshot into the live store.
func (s *Session) Redo() bool {
	snap := s.history.Redo()
	if snap == nil {
		return false
	}
	s.store.Restore(snap)
	return true
}

// Export folds the committed annotations into outPath. On failure the
// store and history are exactly as they were, so the user may retry.
func (s *Session) Export(outPath string, opts export.Options) error {
	if opts.ThumbnailPath == "" && s.thumbnail {
		opts.ThumbnailPath = outPath + ".jpg"
	}
	return s.exporter.Export(s.doc, s.store, outPath, opts)
}

// Close discards all session state.
func (s *Session) Close() {
	s.store.Restore(annotation.NewStore())
	s.history = annotation.NewHistory()
	s.index = fonts.NewIndex()
	s.router.SetProbe(s.index)
}
