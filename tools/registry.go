package tools

// Registry is the closed lookup from tool kind to implementation. New
// tools are added by registration alone; the router never switches on
// concrete types.
type Registry struct {
	tools map[Kind]Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[Kind]Tool)}
}

// Register adds or replaces the implementation for a kind.
func (r *Registry) Register(t Tool) {
	r.tools[t.Kind()] = t
}

// Resolve looks up the tool for a kind.
func (r *Registry) Resolve(k Kind) (Tool, bool) {
	t, ok := r.tools[k]
	return t, ok
}

// DefaultRegistry returns a registry with all built-in tools.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&freehandTool{})
	r.Register(&shapeTool{kind: KindRectangle, typ: annotationTypeFor(KindRectangle)})
	r.Register(&shapeTool{kind: KindCircle, typ: annotationTypeFor(KindCircle)})
	r.Register(&shapeTool{kind: KindLine, typ: annotationTypeFor(KindLine)})
	r.Register(&shapeTool{kind: KindHighlighter, typ: annotationTypeFor(KindHighlighter)})
	r.Register(&textTool{})
	r.Register(&eraserTool{})
	r.Register(&selectTool{})
	return r
}
