// Package memo provides the explicit, instance-owned memoisation tables used
// by the visibility and option resolvers. Tables are not safe for concurrent
// use; each belongs to exactly one document session.
package memo

// Stats reports lookup counters since the table was created or last cleared.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Table is a plain map-backed memo with an explicit Clear entry point.
type Table[K comparable, V any] struct {
	entries map[K]V
	hits    int
	misses  int
}

// New returns an empty table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{entries: make(map[K]V)}
}

// Get returns the cached value for key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	value, ok := t.entries[key]
	if ok {
		t.hits++
	} else {
		t.misses++
	}
	return value, ok
}

// Put stores value under key.
func (t *Table[K, V]) Put(key K, value V) {
	if t.entries == nil {
		t.entries = make(map[K]V)
	}
	t.entries[key] = value
}

// Lookup returns the cached value for key, computing and storing it on a miss.
func (t *Table[K, V]) Lookup(key K, compute func() V) V {
	if value, ok := t.Get(key); ok {
		return value
	}
	value := compute()
	t.Put(key, value)
	return value
}

// Clear drops every entry and resets the counters.
func (t *Table[K, V]) Clear() {
	t.entries = make(map[K]V)
	t.hits = 0
	t.misses = 0
}

// Len returns the number of cached entries.
func (t *Table[K, V]) Len() int {
	return len(t.entries)
}

// Stats returns the current counters.
func (t *Table[K, V]) Stats() Stats {
	return Stats{Hits: t.hits, Misses: t.misses, Entries: len(t.entries)}
}
