package annotation

// History is a linear, whole-snapshot undo/redo log over a Store.
// Annotation counts per session are small, so full copies are cheap and
// avoid diff/merge bugs. The cursor stays within [-1, len(snapshots)-1];
// -1 denotes the implicit empty state before the first commit.
type History struct {
	snapshots []*Store
	cursor    int
}

// NewHistory returns an empty history with the cursor at -1.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Commit truncates any snapshots past the cursor, then appends a deep copy
// of the current store state and advances the cursor to the new tail.
func (h *History) Commit(s *Store) {
	h.snapshots = append(h.snapshots[:h.cursor+1], s.Clone())
	h.cursor = len(h.snapshots) - 1
}

// Undo steps the cursor back and returns the snapshot to restore. Undoing
// the first commit returns an empty store. It returns nil when there is
// nothing to undo.
func (h *History) Undo() *Store {
	if h.cursor < 0 {
		return nil
	}
	h.cursor--
	if h.cursor < 0 {
		return NewStore()
	}
	return h.snapshots[h.cursor]
}

// Redo steps the cursor forward and returns the snapshot to restore.
// It returns nil when the cursor already sits at the tail.
func (h *History) Redo() *Store {
	if h.cursor >= len(h.snapshots)-1 {
		return nil
	}
	h.cursor++
	return h.snapshots[h.cursor]
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	return h.cursor >= 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cursor returns the current cursor position.
func (h *History) Cursor() int {
	return h.cursor
}
