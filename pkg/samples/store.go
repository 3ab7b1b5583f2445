// Package samples owns the ordered, in-memory sample rows of a document and
// the grid's row-selection state. Rows are addressed by 1-based position.
package samples

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

// DefaultInitialRows is the number of empty rows a new store pre-allocates.
const DefaultInitialRows = 100

var (
	ErrRowOutOfRange = errors.New("samples: row out of range")
	ErrUnknownField  = errors.New("samples: unknown sample field")
)

// Option configures a Store.
type Option func(*Store)

// WithInitialRows overrides the number of pre-allocated rows.
func WithInitialRows(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.initialRows = n
		}
	}
}

// Row pairs a 1-based row number with its record.
type Row struct {
	Index  int
	Record schema.Record
}

// ImportSummary describes where BulkImport wrote.
type ImportSummary struct {
	FirstRow int
	Rows     int
	Grown    int
}

// Store holds the sample rows. It is owned by a single document session and
// is not safe for concurrent use.
type Store struct {
	catalog     *schema.Catalog
	fieldIDs    []string
	rows        []schema.Record
	selected    map[int]struct{}
	clipboard   schema.Record
	initialRows int
}

// New creates a store with every row pre-populated with an empty value for
// each sample field.
func New(catalog *schema.Catalog, opts ...Option) *Store {
	s := &Store{
		catalog:     catalog,
		fieldIDs:    catalog.IDs(schema.ScopeSample),
		selected:    make(map[int]struct{}),
		initialRows: DefaultInitialRows,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.rows = make([]schema.Record, 0, s.initialRows)
	s.Append(s.initialRows)
	return s
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// FieldIDs returns the sample field ids in catalog order.
func (s *Store) FieldIDs() []string {
	return append([]string(nil), s.fieldIDs...)
}

// Append grows the store by n empty rows.
func (s *Store) Append(n int) {
	for i := 0; i < n; i++ {
		s.rows = append(s.rows, s.catalog.NewRecord(schema.ScopeSample))
	}
}

// Row returns a copy of the record at the 1-based row.
func (s *Store) Row(row int) (schema.Record, error) {
	if err := s.checkRow(row); err != nil {
		return nil, err
	}
	return s.rows[row-1].Clone(), nil
}

// Cell returns the value of field_id at row.
func (s *Store) Cell(row int, fieldID string) (string, error) {
	if err := s.checkCell(row, fieldID); err != nil {
		return "", err
	}
	return s.rows[row-1][fieldID], nil
}

// SetCell replaces a single value. It never triggers validation.
func (s *Store) SetCell(row int, fieldID, value string) error {
	if err := s.checkCell(row, fieldID); err != nil {
		return err
	}
	s.rows[row-1][fieldID] = value
	return nil
}

// Records returns copies of every row in order.
func (s *Store) Records() []schema.Record {
	out := make([]schema.Record, len(s.rows))
	for i, record := range s.rows {
		out[i] = record.Clone()
	}
	return out
}

// RowsWithData returns the rows holding at least one non-empty value.
func (s *Store) RowsWithData() []Row {
	var out []Row
	for i, record := range s.rows {
		if !record.IsEmpty() {
			out = append(out, Row{Index: i + 1, Record: record.Clone()})
		}
	}
	return out
}

// HasData reports whether any row holds data.
func (s *Store) HasData() bool {
	for _, record := range s.rows {
		if !record.IsEmpty() {
			return true
		}
	}
	return false
}

// Select adds rows to the selection; out-of-range rows are ignored.
func (s *Store) Select(rows ...int) {
	for _, row := range rows {
		if s.checkRow(row) == nil {
			s.selected[row] = struct{}{}
		}
	}
}

// Deselect removes rows from the selection.
func (s *Store) Deselect(rows ...int) {
	for _, row := range rows {
		delete(s.selected, row)
	}
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.selected = make(map[int]struct{})
}

// SelectedRows returns the selected rows in ascending order.
func (s *Store) SelectedRows() []int {
	out := make([]int, 0, len(s.selected))
	for row := range s.selected {
		out = append(out, row)
	}
	sort.Ints(out)
	return out
}

// CopySelectedRow snapshots the selected row. It is a no-op unless exactly one
// row is selected; the return value reports whether a snapshot was taken.
func (s *Store) CopySelectedRow() bool {
	if len(s.selected) != 1 {
		return false
	}
	for row := range s.selected {
		s.clipboard = s.rows[row-1].Clone()
	}
	return true
}

// Clipboard returns a copy of the last snapshot, or nil.
func (s *Store) Clipboard() schema.Record {
	return s.clipboard.Clone()
}

// PasteToSelectedRows merges the snapshot into every selected row: only the
// fields whose snapshot value is non-empty are overwritten. It returns the
// number of rows written.
func (s *Store) PasteToSelectedRows() int {
	if s.clipboard == nil || len(s.selected) == 0 {
		return 0
	}
	rows := s.SelectedRows()
	for _, row := range rows {
		target := s.rows[row-1]
		for _, id := range s.fieldIDs {
			if value := s.clipboard[id]; strings.TrimSpace(value) != "" {
				target[id] = value
			}
		}
	}
	return len(rows)
}

// ClearSelectedRows zeroes every sample field on the selected rows. Rows are
// never removed. It returns the number of rows cleared.
func (s *Store) ClearSelectedRows() int {
	rows := s.SelectedRows()
	for _, row := range rows {
		s.rows[row-1] = s.catalog.NewRecord(schema.ScopeSample)
	}
	return len(rows)
}

// BulkImport writes records into the empty rows from the first entirely empty
// row onward, skipping rows that already hold data. When fewer empty rows
// remain than records, the store grows by exactly the shortfall. Only sample
// fields of the catalog are copied; unknown columns are dropped.
func (s *Store) BulkImport(records []schema.Record) ImportSummary {
	start := len(s.rows)
	for i, record := range s.rows {
		if record.IsEmpty() {
			start = i
			break
		}
	}

	var targets []int
	for i := start; i < len(s.rows) && len(targets) < len(records); i++ {
		if s.rows[i].IsEmpty() {
			targets = append(targets, i)
		}
	}

	grown := 0
	if len(targets) < len(records) {
		grown = len(records) - len(targets)
		first := len(s.rows)
		s.Append(grown)
		for i := first; i < len(s.rows); i++ {
			targets = append(targets, i)
		}
	}

	for i, values := range records {
		s.rows[targets[i]] = s.catalog.Conform(schema.ScopeSample, values)
	}
	return ImportSummary{FirstRow: start + 1, Rows: len(records), Grown: grown}
}

// Reset replaces every row with an empty one, restoring the initial size.
func (s *Store) Reset() {
	s.rows = s.rows[:0]
	s.Append(s.initialRows)
	s.ClearSelection()
	s.clipboard = nil
}

func (s *Store) checkRow(row int) error {
	if row < 1 || row > len(s.rows) {
		return fmt.Errorf("%w: %d (rows 1-%d)", ErrRowOutOfRange, row, len(s.rows))
	}
	return nil
}

func (s *Store) checkCell(row int, fieldID string) error {
	if err := s.checkRow(row); err != nil {
		return err
	}
	field, ok := s.catalog.Field(fieldID)
	if !ok || field.Scope != schema.ScopeSample {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	return nil
}
