package object

// Interner owns the arena and the process-wide string table, enforcing
// the interning invariant: for a given VM, intern(s) == intern(s) by
// pointer for any two calls with equal bytes, and distinct byte
// sequences never collide (spec.md §4.1, §8).
type Interner struct {
	arena   *Arena
	strings StringTable
}

// StringTable is the minimal surface Interner needs from pkg/table,
// expressed as an interface so pkg/object never imports pkg/table
// (which imports pkg/object, for its *String/Value types).
type StringTable interface {
	FindString(chars string, hash uint32) *String
	Set(key *String, value Value) bool
}

// NewInterner builds an Interner over arena, backed by strings (normally
// a *table.Table, injected to avoid an import cycle between pkg/object
// and pkg/table).
func NewInterner(arena *Arena, strings StringTable) *Interner {
	return &Interner{arena: arena, strings: strings}
}

// Intern returns the canonical String for chars, allocating and
// registering a new one on first sight.
func (in *Interner) Intern(chars string) *String {
	hash := HashBytes([]byte(chars))
	if existing := in.strings.FindString(chars, hash); existing != nil {
		return existing
	}

	s := in.arena.NewString(chars)
	in.strings.Set(s, s)
	return s
}
