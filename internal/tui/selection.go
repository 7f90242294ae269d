package tui

import (
	"nanowhale/internal/docker"
)

// Selection tracks, per entity kind, one active index and the set of
// identities marked for batch actions. Marked identities that disappear from
// a poll are pruned the next time the marked set is read against the current
// list, so no dangling references survive.
type Selection struct {
	active map[docker.EntityKind]int
	marked map[docker.EntityKind]map[string]struct{}
}

// NewSelection creates an empty selection state.
func NewSelection() *Selection {
	return &Selection{
		active: make(map[docker.EntityKind]int),
		marked: make(map[docker.EntityKind]map[string]struct{}),
	}
}

// Active returns the active index for a kind.
func (s *Selection) Active(kind docker.EntityKind) int {
	return s.active[kind]
}

// Move shifts the active index by delta, clamped to [0, length).
func (s *Selection) Move(kind docker.EntityKind, delta, length int) {
	s.active[kind] = clampIndex(s.active[kind]+delta, length)
}

// Clamp re-bounds the active index after the list changed length. A shrunken
// list pins the cursor to the last valid row.
func (s *Selection) Clamp(kind docker.EntityKind, length int) {
	s.active[kind] = clampIndex(s.active[kind], length)
}

// Toggle flips one identity in or out of the marked set.
func (s *Selection) Toggle(kind docker.EntityKind, id string) {
	set := s.marked[kind]
	if set == nil {
		set = make(map[string]struct{})
		s.marked[kind] = set
	}
	if _, ok := set[id]; ok {
		delete(set, id)
		return
	}
	set[id] = struct{}{}
}

// ToggleAll marks every listed identity, unless all of them are already
// marked, in which case it clears the set instead. Repeating it is an
// idempotent toggle, never additive.
func (s *Selection) ToggleAll(kind docker.EntityKind, ids []string) {
	set := s.marked[kind]
	allMarked := len(ids) > 0
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			allMarked = false
			break
		}
	}
	if allMarked {
		s.ClearMarks(kind)
		return
	}
	set = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.marked[kind] = set
}

// IsMarked reports whether one identity is marked.
func (s *Selection) IsMarked(kind docker.EntityKind, id string) bool {
	_, ok := s.marked[kind][id]
	return ok
}

// Marked returns the marked identities intersected with the current list, in
// list order. Identities gone from the latest poll are dropped.
func (s *Selection) Marked(kind docker.EntityKind, current []string) []string {
	set := s.marked[kind]
	if len(set) == 0 {
		return nil
	}
	var out []string
	for _, id := range current {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// MarkedCount returns the marked-set size before pruning, for display.
func (s *Selection) MarkedCount(kind docker.EntityKind) int {
	return len(s.marked[kind])
}

// ClearMarks empties the marked set for a kind. Batch actions call this
// unconditionally after dispatch.
func (s *Selection) ClearMarks(kind docker.EntityKind) {
	delete(s.marked, kind)
}

// Targets resolves the batch dispatch rule: a non-empty marked set wins over
// the active identity; otherwise the single active identity (which may be
// empty when the list is empty) is the sole target.
func (s *Selection) Targets(kind docker.EntityKind, current []string) []string {
	if marked := s.Marked(kind, current); len(marked) > 0 {
		return marked
	}
	idx := s.active[kind]
	if idx < 0 || idx >= len(current) {
		return nil
	}
	return []string{current[idx]}
}

func clampIndex(i, length int) int {
	if length <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
