// Package editor implements the edit-mode and selection state machine
// that sits between the user and a positional collection: whether the
// records may be mutated, which are marked for batch operations, and
// when a destructive action needs confirmation.
package editor

import (
	"sort"

	"github.com/skyworks-mro/pirdesk/internal/collection"
)

// Mode is the editing state of a collection view.
type Mode int

const (
	// Viewing is the initial, read-only state.
	Viewing Mode = iota
	// Editing allows record mutation and maintains the selection set.
	Editing
)

// Session governs one collection's edit mode and selection set. The
// gate, when set, must pass before Viewing→Editing is allowed; it models
// upstream requirements such as "a finding must be chosen before its
// materials become editable".
type Session[T any] struct {
	ctrl        *collection.Controller[T]
	significant func(T) bool
	gate        func() error

	mode     Mode
	selected map[int]struct{}
	lastLen  int
}

// NewSession wires a session to its controller. significant decides
// whether a record's content warrants delete confirmation; gate may be
// nil when editing has no upstream precondition.
func NewSession[T any](ctrl *collection.Controller[T], significant func(T) bool, gate func() error) *Session[T] {
	return &Session[T]{
		ctrl:        ctrl,
		significant: significant,
		gate:        gate,
		selected:    make(map[int]struct{}),
		lastLen:     ctrl.Len(),
	}
}

// Mode returns the current mode after syncing with the collection.
func (s *Session[T]) Mode() Mode {
	s.syncLen()
	return s.mode
}

// Editing reports whether record mutation is currently allowed.
func (s *Session[T]) Editing() bool { return s.Mode() == Editing }

// BeginEdit transitions Viewing→Editing. The gate error, if any, is
// returned unchanged so the caller can surface the corrective prompt.
func (s *Session[T]) BeginEdit() error {
	if s.gate != nil {
		if err := s.gate(); err != nil {
			return err
		}
	}
	s.mode = Editing
	return nil
}

// Cancel leaves Editing without saving. Field edits already applied to
// the collection stay in memory; only the selection state is discarded.
func (s *Session[T]) Cancel() {
	s.mode = Viewing
	s.clearSelection()
}

// CompleteSave leaves Editing after a successful save.
func (s *Session[T]) CompleteSave() {
	s.mode = Viewing
	s.clearSelection()
}

// Toggle adds or removes a single index from the selection set.
// Out-of-range indices are ignored.
func (s *Session[T]) Toggle(index int) {
	s.syncLen()
	if index < 0 || index >= s.ctrl.Len() {
		return
	}
	if _, ok := s.selected[index]; ok {
		delete(s.selected, index)
	} else {
		s.selected[index] = struct{}{}
	}
}

// ToggleAll selects every record unless all are already selected, in
// which case the set is emptied. Partial selections become full.
func (s *Session[T]) ToggleAll() {
	s.syncLen()
	if len(s.selected) == s.ctrl.Len() {
		s.clearSelection()
		return
	}
	for i := 0; i < s.ctrl.Len(); i++ {
		s.selected[i] = struct{}{}
	}
}

// Selected returns the selection as a sorted index slice.
func (s *Session[T]) Selected() []int {
	s.syncLen()
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// IsSelected reports whether the given index is in the selection set.
func (s *Session[T]) IsSelected(index int) bool {
	s.syncLen()
	_, ok := s.selected[index]
	return ok
}

// NeedsConfirmation reports whether deleting the current selection must
// be confirmed: true as soon as any selected record has significant
// content. A selection of entirely empty records deletes silently.
func (s *Session[T]) NeedsConfirmation() bool {
	s.syncLen()
	for i := range s.selected {
		if rec, ok := s.ctrl.At(i); ok && s.significant(rec) {
			return true
		}
	}
	return false
}

// DeleteSelected removes every selected record in one batch and clears
// the selection. Returns the number of records removed. Confirmation is
// the caller's responsibility (see NeedsConfirmation).
func (s *Session[T]) DeleteSelected() int {
	s.syncLen()
	if len(s.selected) == 0 {
		return 0
	}
	indices := s.Selected()
	s.ctrl.RemoveMany(indices)
	s.clearSelection()
	s.lastLen = s.ctrl.Len()
	return len(indices)
}

// syncLen prunes the selection whenever the collection's length changed
// underneath us: indices beyond the new length are dropped, valid ones
// retained.
func (s *Session[T]) syncLen() {
	n := s.ctrl.Len()
	if n == s.lastLen {
		return
	}
	s.lastLen = n
	for i := range s.selected {
		if i >= n {
			delete(s.selected, i)
		}
	}
}

func (s *Session[T]) clearSelection() {
	s.selected = make(map[int]struct{})
}
