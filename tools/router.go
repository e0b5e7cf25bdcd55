package tools

import (
	"github.com/pkg/errors"

	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/fonts"
	"github.com/pagemark/pagemark/geom"
	"github.com/pagemark/pagemark/log"
)

// Router receives raw pointer events in viewport pixels, converts them to
// document space, and dispatches to the active tool's handlers. Tools that
// do not implement a handler for the incoming event type are skipped
// silently; that is defined behavior, not an error.
type Router struct {
	registry  *Registry
	transform *geom.Transformer
	store     *annotation.Store
	commit    func()

	active  Kind
	page    int
	style   annotation.Style
	text    string
	probe   fonts.Prober
	epsilon float64
	state   *Interaction
}

// NewRouter wires a router over the live store. commit is invoked whenever
// a tool finalizes an edit.
func NewRouter(store *annotation.Store, transform *geom.Transformer, commit func()) *Router {
	return &Router{
		registry:  DefaultRegistry(),
		transform: transform,
		store:     store,
		commit:    commit,
		active:    KindSelect,
		page:      1,
		epsilon:   DefaultEpsilon,
		state:     &Interaction{},
	}
}

// Registry exposes the tool registry so hosts can register custom tools.
func (r *Router) Registry() *Registry { return r.registry }

// SetActive switches the active tool. An in-progress drag is abandoned:
// its provisional annotation is dropped without a commit.
func (r *Router) SetActive(k Kind) error {
	if _, ok := r.registry.Resolve(k); !ok {
		return errors.Errorf("no tool registered for %q", k)
	}
	r.abandonDrag()
	r.active = k
	return nil
}

// Active returns the active tool kind.
func (r *Router) Active() Kind { return r.active }

// SetPage sets the page pointer events apply to.
func (r *Router) SetPage(page int) {
	if page < 1 {
		return
	}
	r.abandonDrag()
	r.page = page
}

// Page returns the current page.
func (r *Router) Page() int { return r.page }

// SetStyle records the explicitly chosen style for new annotations. It is
// also the fallback the text tool uses when the font probe misses.
func (r *Router) SetStyle(s annotation.Style) { r.style = s }

// Style returns the current style.
func (r *Router) Style() annotation.Style { return r.style }

// SetProbe installs the typography prober consulted by the text tool.
func (r *Router) SetProbe(p fonts.Prober) { r.probe = p }

// SetEpsilon overrides the degeneracy threshold.
func (r *Router) SetEpsilon(e float64) {
	if e > 0 {
		r.epsilon = e
	}
}

// SetTextInput stages content for the next text-tool click.
func (r *Router) SetTextInput(s string) { r.text = s }

// Dragging reports whether a drag interaction is in progress.
func (r *Router) Dragging() bool { return r.state.Active }

// MouseDown dispatches a pointer-down event at a viewport position.
func (r *Router) MouseDown(screen geom.Point) {
	tool, ok := r.resolve()
	if !ok {
		return
	}
	if h, ok := tool.(MouseDownHandler); ok {
		h.MouseDown(r.context(screen))
	} else {
		log.Trace.Printf("tool %s ignores mouse-down", r.active)
	}
}

// MouseMove dispatches a pointer-move event at a viewport position.
func (r *Router) MouseMove(screen geom.Point) {
	tool, ok := r.resolve()
	if !ok {
		return
	}
	if h, ok := tool.(MouseMoveHandler); ok {
		h.MouseMove(r.context(screen))
	}
}

// MouseUp dispatches a pointer-up event at a viewport position.
func (r *Router) MouseUp(screen geom.Point) {
	tool, ok := r.resolve()
	if !ok {
		return
	}
	if h, ok := tool.(MouseUpHandler); ok {
		h.MouseUp(r.context(screen))
	} else {
		log.Trace.Printf("tool %s ignores mouse-up", r.active)
	}
}

// Click dispatches a single-click event at a viewport position. Pending
// text input is consumed by the dispatch.
func (r *Router) Click(screen geom.Point) {
	tool, ok := r.resolve()
	if !ok {
		return
	}
	if h, ok := tool.(ClickHandler); ok {
		h.Click(r.context(screen))
	} else {
		log.Trace.Printf("tool %s ignores click", r.active)
	}
	r.text = ""
}

func (r *Router) resolve() (Tool, bool) {
	tool, ok := r.registry.Resolve(r.active)
	if !ok {
		log.Error.Printf("no tool registered for %q", r.active)
	}
	return tool, ok
}

func (r *Router) context(screen geom.Point) *Context {
	return &Context{
		Page:    r.page,
		Pos:     r.transform.ToDocument(screen),
		Store:   r.store,
		Style:   r.style,
		Text:    r.text,
		Probe:   r.probe,
		State:   r.state,
		Epsilon: r.epsilon,
		commit:  r.commit,
	}
}

// abandonDrag drops an in-progress provisional annotation without commit.
func (r *Router) abandonDrag() {
	if !r.state.Active {
		return
	}
	if a := r.state.Provisional; a != nil && r.active != KindSelect {
		r.store.Remove(a.ID)
	}
	r.state.Reset()
}
