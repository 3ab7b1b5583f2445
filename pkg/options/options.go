// Package options computes the valid choice list of dropdown fields, including
// vocabularies that depend on another field's current value.
package options

import (
	"github.com/goliatone/go-sampleform/internal/memo"
	"github.com/goliatone/go-sampleform/pkg/schema"
)

// Provider returns the ordered choices for a field given a value snapshot.
type Provider interface {
	OptionsFor(field schema.Field, values schema.Record) []string
}

type cacheKey struct {
	field   string
	basedOn string
	value   string
}

// Resolver resolves static and dynamic vocabularies, memoising dynamic
// lookups per (field, controlling field, controlling value).
type Resolver struct {
	cache *memo.Table[cacheKey, []string]
}

// NewResolver returns a resolver with an empty cache.
func NewResolver() *Resolver {
	return &Resolver{cache: memo.New[cacheKey, []string]()}
}

// OptionsFor returns the choices currently valid for field. Static options are
// returned verbatim. Dynamic options are looked up by the controlling field's
// value; an unmatched value yields an empty list. The returned slice is a
// copy and may be modified by the caller.
func (r *Resolver) OptionsFor(field schema.Field, values schema.Record) []string {
	if field.DynamicOptions == nil {
		return clone(field.Options)
	}

	dyn := field.DynamicOptions
	current := values.Get(dyn.BasedOn)
	if r == nil || r.cache == nil {
		return clone(dyn.OptionMap[current])
	}

	key := cacheKey{field: field.ID, basedOn: dyn.BasedOn, value: current}
	return clone(r.cache.Lookup(key, func() []string {
		return clone(dyn.OptionMap[current])
	}))
}

// Contains reports whether value is one of the choices currently valid for field.
func (r *Resolver) Contains(field schema.Field, values schema.Record, value string) bool {
	for _, option := range r.OptionsFor(field, values) {
		if option == value {
			return true
		}
	}
	return false
}

// Invalidate drops every memoised vocabulary.
func (r *Resolver) Invalidate() {
	if r == nil || r.cache == nil {
		return
	}
	r.cache.Clear()
}

// Stats exposes the cache counters.
func (r *Resolver) Stats() memo.Stats {
	if r == nil || r.cache == nil {
		return memo.Stats{}
	}
	return r.cache.Stats()
}

func clone(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
