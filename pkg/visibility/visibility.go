// Package visibility decides whether a field is currently shown, based on its
// show_condition and a snapshot of the values of the entity being edited.
package visibility

import (
	"github.com/goliatone/go-sampleform/internal/memo"
	"github.com/goliatone/go-sampleform/pkg/schema"
)

// Evaluator determines whether a field should be visible for the supplied
// value snapshot.
type Evaluator interface {
	ShouldShow(field schema.Field, values schema.Record) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(field schema.Field, values schema.Record) bool

// ShouldShow delegates to the underlying function.
func (fn EvaluatorFunc) ShouldShow(field schema.Field, values schema.Record) bool {
	return fn(field, values)
}

// Always is an Evaluator that shows every field.
var Always Evaluator = EvaluatorFunc(func(schema.Field, schema.Record) bool { return true })

type cacheKey struct {
	field     string
	condField string
	value     string
}

// Resolver evaluates show_conditions and memoises the outcome per
// (field, condition field, condition field value). Call Invalidate whenever
// the catalog changes.
type Resolver struct {
	cache *memo.Table[cacheKey, bool]
}

// NewResolver returns a resolver with an empty cache.
func NewResolver() *Resolver {
	return &Resolver{cache: memo.New[cacheKey, bool]()}
}

// ShouldShow reports whether field is visible given values. Fields without a
// show_condition are always visible.
func (r *Resolver) ShouldShow(field schema.Field, values schema.Record) bool {
	if !field.Conditional() {
		return true
	}
	cond := *field.ShowCondition
	current := values.Get(cond.Field)
	if r == nil || r.cache == nil {
		return Compare(cond.Operator, current, cond.Value)
	}

	key := cacheKey{field: field.ID, condField: cond.Field, value: current}
	return r.cache.Lookup(key, func() bool {
		return Compare(cond.Operator, current, cond.Value)
	})
}

// Invalidate drops every memoised decision.
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

// Holds evaluates cond against values without caching.
func Holds(cond schema.ShowCondition, values schema.Record) bool {
	return Compare(cond.Operator, values.Get(cond.Field), cond.Value)
}
