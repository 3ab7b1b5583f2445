// Package dragfill implements the fill-by-drag interaction over a sample
// store: pick a source cell, drag along its column, and copy the source value
// into every visible cell of the covered rows.
package dragfill

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-sampleform/pkg/samples"
	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/visibility"
)

// State is the controller's interaction state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// ErrNotDragging is returned by Commit when no drag is in progress.
var ErrNotDragging = errors.New("dragfill: no drag in progress")

// Cell addresses a grid cell by 1-based row and field id.
type Cell struct {
	Row   int
	Field string
}

// Source is the cell a drag started from, with the value being propagated.
type Source struct {
	Row   int
	Field string
	Value string
}

// Selection is the ephemeral state of an in-progress drag.
type Selection struct {
	Source  Source
	Targets []Cell
}

// Controller drives Idle -> Dragging -> Idle transitions. It is owned by one
// document session and is not safe for concurrent use.
type Controller struct {
	store      *samples.Store
	catalog    *schema.Catalog
	visibility visibility.Evaluator

	state     State
	selection Selection
}

// New returns an idle controller writing through store. A nil evaluator
// treats every cell as visible.
func New(store *samples.Store, catalog *schema.Catalog, evaluator visibility.Evaluator) *Controller {
	if evaluator == nil {
		evaluator = visibility.Always
	}
	return &Controller{store: store, catalog: catalog, visibility: evaluator}
}

// State returns the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// Selection returns a copy of the current drag selection.
func (c *Controller) Selection() Selection {
	out := Selection{Source: c.selection.Source}
	out.Targets = append([]Cell(nil), c.selection.Targets...)
	return out
}

// Start begins a drag from the given cell, discarding any previous drag. A
// source row outside the store leaves the controller Idle.
func (c *Controller) Start(row int, field, value string) {
	if row < 1 || row > c.store.Len() {
		c.reset()
		return
	}
	c.state = Dragging
	c.selection = Selection{
		Source:  Source{Row: row, Field: field, Value: value},
		Targets: []Cell{},
	}
}

// Extend recomputes the targets for the pointer now over (row, field). It is a
// no-op unless a drag is in progress on the same column. Targets are the
// contiguous rows between the source and row inclusive, minus the source row
// and minus rows where the column is currently hidden for that row's values.
func (c *Controller) Extend(row int, field string) {
	if c.state != Dragging || field != c.selection.Source.Field {
		return
	}

	def, ok := c.catalog.Field(field)
	source := c.selection.Source.Row
	lo, hi := source, row
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 1 {
		lo = 1
	}
	if hi > c.store.Len() {
		hi = c.store.Len()
	}
	if lo > hi {
		c.selection.Targets = []Cell{}
		return
	}

	targets := make([]Cell, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		if r == source {
			continue
		}
		if ok && def.Conditional() {
			values, err := c.store.Row(r)
			if err != nil || !c.visibility.ShouldShow(def, values) {
				continue
			}
		}
		targets = append(targets, Cell{Row: r, Field: field})
	}
	c.selection.Targets = targets
}

// Commit writes the source value into every target and returns to Idle. It
// returns the number of cells written.
func (c *Controller) Commit() (int, error) {
	if c.state != Dragging {
		return 0, ErrNotDragging
	}
	sel := c.selection
	c.reset()

	written := 0
	var errs []error
	for _, target := range sel.Targets {
		if err := c.store.SetCell(target.Row, target.Field, sel.Source.Value); err != nil {
			errs = append(errs, fmt.Errorf("dragfill: row %d: %w", target.Row, err))
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}

// Cancel discards the drag and returns to Idle.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.selection = Selection{}
}
