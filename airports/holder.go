package airports

import "sync/atomic"

// Holder publishes the current table to concurrent readers and lets it be
// replaced when overrides change.
type Holder struct {
	p atomic.Pointer[Table]
}

// NewHolder starts with t, or the built-in table when t is nil.
func NewHolder(t *Table) *Holder {
	if t == nil {
		t = Default()
	}
	h := &Holder{}
	h.p.Store(t)
	return h
}

// Table returns the current table.
func (h *Holder) Table() *Table {
	return h.p.Load()
}

// Store replaces the current table.
func (h *Holder) Store(t *Table) {
	h.p.Store(t)
}
