// Package table implements the open-addressed hash table used throughout
// funk: string interning, VM globals, call-frame locals, and the
// `require` module cache all share this one implementation (spec.md §4.2).
//
// Keys are always *object.String, compared by identity — interning is
// exactly what establishes that identity, so the one place that can't
// compare by pointer is FindString, which probes by length/hash/bytes
// instead.
package table

import "github.com/funk-lang/funk/pkg/object"

// maxLoad is the load-factor threshold past which Set grows the table.
const maxLoad = 0.75

type entry struct {
	key   *object.String // nil key + nil value: empty slot. nil key + non-nil value: tombstone.
	value object.Value
}

// Table is an open-addressed, linear-probing hash map from *object.String
// to object.Value, with tombstone deletion.
type Table struct {
	entries  []entry
	count    int // occupied slots, including tombstones
	capacity int
}

// New returns an empty table. The zero value is also ready to use.
func New() *Table {
	return &Table{}
}

// Len reports the number of occupied slots, tombstones included — the
// count that bounds growth through the load factor, not an exact count
// of live entries.
func (t *Table) Len() int { return t.count }

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}

// findEntry returns the slot a lookup or insertion for key should use:
// the first exact match, or (if none exists) the first tombstone seen,
// or else the first empty slot. Probing stops at the first empty slot —
// a tombstone never terminates a probe sequence.
func findEntry(entries []entry, capacity int, key *object.String) *entry {
	index := key.Hash % uint32(capacity)
	var tombstone *entry

	for {
		e := &entries[index]

		if e.key == nil {
			if e.value == nil {
				if tombstone != nil {
					return tombstone
				}
				return e
			}
			if tombstone == nil {
				tombstone = e
			}
		} else if e.key == key {
			return e
		}

		index = (index + 1) % uint32(capacity)
	}
}

func (t *Table) adjustCapacity(capacity int) {
	entries := make([]entry, capacity)

	t.count = 0
	for _, old := range t.entries {
		if old.key == nil {
			continue
		}
		dest := findEntry(entries, capacity, old.key)
		dest.key = old.key
		dest.value = old.value
		t.count++
	}

	t.entries = entries
	t.capacity = capacity
}

// Set binds key to value, growing the table first if doing so would push
// the load factor past 0.75. It reports whether key was not bound before
// (it landed in an empty slot or a reused tombstone), as opposed to
// overwriting an existing binding.
func (t *Table) Set(key *object.String, value object.Value) bool {
	if float64(t.count+1) > float64(t.capacity)*maxLoad {
		t.adjustCapacity(growCapacity(t.capacity))
	}

	e := findEntry(t.entries, t.capacity, key)
	isNew := e.key == nil

	if isNew && e.value == nil {
		t.count++
	}

	e.key = key
	e.value = value
	return isNew
}

// Get looks up key, returning the bound value and whether it was found.
func (t *Table) Get(key *object.String) (object.Value, bool) {
	if t.count == 0 {
		return nil, false
	}

	e := findEntry(t.entries, t.capacity, key)
	if e.key == nil {
		return nil, false
	}
	return e.value, true
}

// Delete converts key's slot into a tombstone, so later probes continue
// past it, without decrementing count.
func (t *Table) Delete(key *object.String) bool {
	if t.count == 0 {
		return false
	}

	e := findEntry(t.entries, t.capacity, key)
	if e.key == nil {
		return false
	}

	e.key = nil
	e.value = notNilTombstone
	return true
}

// notNilTombstone is a sentinel non-nil Value used to mark a tombstone's
// value slot. It is never dereferenced — its only job is to be non-nil.
var notNilTombstone object.Value = (*object.String)(nil)

// FindString probes for an already-interned string matching chars by
// length, hash, and byte content — not identity, since identity is
// exactly what string interning is trying to establish.
func (t *Table) FindString(chars string, hash uint32) *object.String {
	if t.count == 0 {
		return nil
	}

	index := hash % uint32(t.capacity)
	for {
		e := &t.entries[index]

		if e.key == nil {
			if e.value == nil {
				return nil
			}
		} else if e.key.Hash == hash && len(e.key.Chars) == len(chars) && e.key.Chars == chars {
			return e.key
		}

		index = (index + 1) % uint32(t.capacity)
	}
}
