// Package selection tracks the insertion-ordered set of selected absolute
// paths.
package selection

// Selection is an ordered set: membership checks are constant time, iteration
// follows insertion order.
type Selection struct {
	order []string
	index map[string]struct{}
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{index: make(map[string]struct{})}
}

// Contains reports whether path is selected.
func (s *Selection) Contains(path string) bool {
	_, ok := s.index[path]
	return ok
}

// Add selects path; selecting an already selected path is a no-op.
func (s *Selection) Add(path string) {
	if s.Contains(path) {
		return
	}
	s.index[path] = struct{}{}
	s.order = append(s.order, path)
}

// Remove deselects path if selected.
func (s *Selection) Remove(path string) {
	if !s.Contains(path) {
		return
	}
	delete(s.index, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle flips the membership of path.
func (s *Selection) Toggle(path string) {
	if s.Contains(path) {
		s.Remove(path)
	} else {
		s.Add(path)
	}
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.order = nil
	s.index = make(map[string]struct{})
}

// Paths returns the selected paths in insertion order.
func (s *Selection) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of selected paths.
func (s *Selection) Len() int {
	return len(s.order)
}
