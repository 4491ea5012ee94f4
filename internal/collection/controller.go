// Package collection implements the positional collection engine: an
// ordered list of records whose only identity is their index plus a
// parent key. All mutation funnels through the Controller so derived
// labels can never go stale.
package collection

import "sort"

// Labeler recomputes a record's derived label from its zero-based
// position. Collections without per-record labels (material rows) use a
// nil Labeler.
type Labeler[T any] func(rec *T, pos int)

// Controller owns one ordered collection. It is not safe for concurrent
// use; all callers share the single UI goroutine.
type Controller[T any] struct {
	newRecord func() T
	label     Labeler[T]
	records   []T

	// persisted tracks, index-aligned with records, which records came
	// from the last wholesale Load. Locally appended records stay
	// unpersisted until the next Load.
	persisted []bool
}

// New builds a controller. newRecord produces the default-empty record
// used by Append and by the never-empty resting-state rule; label may be
// nil for unlabeled collections.
func New[T any](newRecord func() T, label Labeler[T]) *Controller[T] {
	if newRecord == nil {
		newRecord = func() (zero T) { return zero }
	}
	c := &Controller[T]{newRecord: newRecord, label: label}
	c.ensureNotEmpty()
	c.Renumber()
	return c
}

// Load replaces the list wholesale and recomputes every label. An empty
// load still yields the single-record resting state.
func (c *Controller[T]) Load(records []T) {
	c.records = make([]T, len(records))
	copy(c.records, records)
	c.persisted = make([]bool, len(records))
	for i := range c.persisted {
		c.persisted[i] = true
	}
	c.ensureNotEmpty()
	c.Renumber()
}

// Append inserts one record at the end. Without a seed a default-empty
// record is created. The new record's label is derived from its position.
func (c *Controller[T]) Append(seed ...T) {
	var rec T
	if len(seed) > 0 {
		rec = seed[0]
	} else {
		rec = c.newRecord()
	}
	c.records = append(c.records, rec)
	c.persisted = append(c.persisted, false)
	c.Renumber()
}

// RemoveAt removes the record at index and renumbers the remainder.
// Out-of-range indices are a no-op: the controller defends itself
// against a desynchronized caller instead of failing.
func (c *Controller[T]) RemoveAt(index int) {
	if index < 0 || index >= len(c.records) {
		return
	}
	c.records = append(c.records[:index], c.records[index+1:]...)
	c.persisted = append(c.persisted[:index], c.persisted[index+1:]...)
	c.ensureNotEmpty()
	c.Renumber()
}

// RemoveMany removes a batch of indices. Indices are processed from
// highest to lowest so earlier removals cannot invalidate later ones;
// duplicates and out-of-range values are ignored. A single renumber pass
// runs at the end.
func (c *Controller[T]) RemoveMany(indices []int) {
	if len(indices) == 0 {
		return
	}

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	prev := -1
	for _, i := range sorted {
		if i == prev {
			continue
		}
		prev = i
		if i < 0 || i >= len(c.records) {
			continue
		}
		c.records = append(c.records[:i], c.records[i+1:]...)
		c.persisted = append(c.persisted[:i], c.persisted[i+1:]...)
	}

	c.ensureNotEmpty()
	c.Renumber()
}

// Renumber recomputes every label from current position. Idempotent and
// safe to call redundantly.
func (c *Controller[T]) Renumber() {
	if c.label == nil {
		return
	}
	for i := range c.records {
		c.label(&c.records[i], i)
	}
}

// Clear resets the collection to the single-record resting state.
func (c *Controller[T]) Clear() {
	c.records = nil
	c.persisted = nil
	c.ensureNotEmpty()
	c.Renumber()
}

// Len returns the number of records.
func (c *Controller[T]) Len() int { return len(c.records) }

// Persisted reports whether the record at index came from the last
// wholesale Load, i.e. exists in the remote store. Locally appended
// records report false until a Load replaces the list. Out-of-range
// indices report false.
func (c *Controller[T]) Persisted(index int) bool {
	if index < 0 || index >= len(c.persisted) {
		return false
	}
	return c.persisted[index]
}

// At returns a copy of the record at index.
func (c *Controller[T]) At(index int) (T, bool) {
	if index < 0 || index >= len(c.records) {
		var zero T
		return zero, false
	}
	return c.records[index], true
}

// MutateAt applies fn to the record at index in place. Returns false for
// out-of-range indices.
func (c *Controller[T]) MutateAt(index int, fn func(*T)) bool {
	if index < 0 || index >= len(c.records) {
		return false
	}
	fn(&c.records[index])
	return true
}

// Records returns a copy of the ordered list. Presentations render from
// this snapshot; they never hold their own state.
func (c *Controller[T]) Records() []T {
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// ensureNotEmpty restores the one-record resting state. Removing the
// last record yields one fresh empty record, never zero records.
func (c *Controller[T]) ensureNotEmpty() {
	if len(c.records) == 0 {
		c.records = append(c.records, c.newRecord())
		c.persisted = append(c.persisted, false)
	}
}
