package annotation

import (
	"sort"

	"github.com/pagemark/pagemark/geom"
)

// Store is the ordered, page-partitioned collection of annotations owned
// by one editing session. Slice order per page is z-order: later entries
// render on top. The store is mutated only through a tool's commit path.
type Store struct {
	pages map[int][]*Annotation
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{pages: make(map[int][]*Annotation)}
}

// Add appends a to the top of its page's z-order.
func (s *Store) Add(a *Annotation) {
	s.pages[a.Page] = append(s.pages[a.Page], a)
}

// Remove deletes the annotation with the given id. It reports whether an
// annotation was removed.
func (s *Store) Remove(id string) bool {
	for page, list := range s.pages {
		for i, a := range list {
			if a.ID == id {
				s.pages[page] = append(list[:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Page returns the annotations on a page in z-order. The slice is a copy;
// the pointed-to annotations are the live records.
func (s *Store) Page(page int) []*Annotation {
	return append([]*Annotation(nil), s.pages[page]...)
}

// Pages returns the page numbers holding at least one annotation, sorted.
func (s *Store) Pages() []int {
	nums := make([]int, 0, len(s.pages))
	for page, list := range s.pages {
		if len(list) > 0 {
			nums = append(nums, page)
		}
	}
	sort.Ints(nums)
	return nums
}

// Len returns the total annotation count across all pages.
func (s *Store) Len() int {
	n := 0
	for _, list := range s.pages {
		n += len(list)
	}
	return n
}

// TopmostAt returns the highest z-order annotation on page whose bounds
// contain p, or nil when nothing is hit.
func (s *Store) TopmostAt(page int, p geom.Point) *Annotation {
	list := s.pages[page]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Bounds().Contains(p) {
			return list[i]
		}
	}
	return nil
}

// ClearPage removes every annotation on page and returns how many were
// dropped.
func (s *Store) ClearPage(page int) int {
	n := len(s.pages[page])
	delete(s.pages, page)
	return n
}

// Clone returns a deep copy of the store, suitable as a history snapshot.
func (s *Store) Clone() *Store {
	dup := NewStore()
	for page, list := range s.pages {
		copied := make([]*Annotation, len(list))
		for i, a := range list {
			copied[i] = a.Clone()
		}
		dup.pages[page] = copied
	}
	return dup
}

// Restore replaces the store's contents with a deep copy of snapshot.
// The receiver pointer stays valid, so holders of the live store never
// need to be rewired after an undo or redo.
func (s *Store) Restore(snapshot *Store) {
	s.pages = snapshot.Clone().pages
}
