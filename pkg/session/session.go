package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-sampleform/pkg/dragfill"
	"github.com/goliatone/go-sampleform/pkg/options"
	"github.com/goliatone/go-sampleform/pkg/report"
	"github.com/goliatone/go-sampleform/pkg/samples"
	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/validation"
	"github.com/goliatone/go-sampleform/pkg/visibility"
	"github.com/goliatone/go-sampleform/pkg/workbook"
)

const projectUUIDField = "project_uuid"

// ErrUnknownProjectField is returned when writing a field that is not a
// project field of the catalog.
var ErrUnknownProjectField = errors.New("session: unknown project field")

// Session owns the mutable state of one document.
type Session struct {
	cfg    config
	logger *slog.Logger

	catalog    *schema.Catalog
	project    schema.Record
	store      *samples.Store
	visibility *visibility.Resolver
	options    *options.Resolver
	validator  *validation.Validator
	drag       *dragfill.Controller
	importer   *workbook.Importer
	exporter   *workbook.Exporter
}

// New builds a session for catalog with an empty project and grid.
func New(catalog *schema.Catalog, opts ...Option) (*Session, error) {
	if catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Session{
		cfg:        cfg,
		logger:     cfg.logger,
		visibility: visibility.NewResolver(),
		options:    options.NewResolver(),
	}
	if err := s.bind(catalog); err != nil {
		return nil, err
	}
	s.project = catalog.NewRecord(schema.ScopeProject)
	s.store = s.newStore(catalog)
	s.drag = dragfill.New(s.store, catalog, s.visibility)
	return s, nil
}

// bind compiles the validator and workbook codecs for catalog.
func (s *Session) bind(catalog *schema.Catalog) error {
	vopts := append([]validation.Option{validation.WithClock(s.cfg.clock)}, s.cfg.validation...)
	vopts = append(vopts, validation.WithVisibility(s.visibility), validation.WithOptions(s.options))
	validator, err := validation.Compile(catalog, vopts...)
	if err != nil {
		return fmt.Errorf("session: compile rules: %w", err)
	}

	wopts := append([]workbook.Option{workbook.WithClock(s.cfg.clock)}, s.cfg.workbook...)
	s.catalog = catalog
	s.validator = validator
	s.importer = workbook.NewImporter(catalog, wopts...)
	s.exporter = workbook.NewExporter(catalog, wopts...)
	return nil
}

func (s *Session) newStore(catalog *schema.Catalog) *samples.Store {
	var opts []samples.Option
	if s.cfg.initialRows > 0 {
		opts = append(opts, samples.WithInitialRows(s.cfg.initialRows))
	}
	return samples.New(catalog, opts...)
}

// Catalog returns the active field catalog.
func (s *Session) Catalog() *schema.Catalog { return s.catalog }

// Store returns the sample grid.
func (s *Session) Store() *samples.Store { return s.store }

// DragFill returns the drag-fill controller bound to the grid.
func (s *Session) DragFill() *dragfill.Controller { return s.drag }

// Validator returns the compiled validator sharing the session caches.
func (s *Session) Validator() *validation.Validator { return s.validator }

// Project returns a copy of the project metadata.
func (s *Session) Project() schema.Record { return s.project.Clone() }

// SetProjectValue writes one project field.
func (s *Session) SetProjectValue(fieldID, value string) error {
	field, ok := s.catalog.Field(fieldID)
	if !ok || field.Scope != schema.ScopeProject {
		return fmt.Errorf("%w: %q", ErrUnknownProjectField, fieldID)
	}
	s.project[fieldID] = value
	return nil
}

// Visible reports whether field is shown for values, through the shared cache.
func (s *Session) Visible(field schema.Field, values schema.Record) bool {
	return s.visibility.ShouldShow(field, values)
}

// OptionsFor returns the current dropdown choices, through the shared cache.
func (s *Session) OptionsFor(field schema.Field, values schema.Record) []string {
	return s.options.OptionsFor(field, values)
}

// EnsureProjectUUID assigns a random UUID to the project when the catalog has
// a project_uuid field that is still empty, and returns the current value.
func (s *Session) EnsureProjectUUID() string {
	if field, ok := s.catalog.Field(projectUUIDField); !ok || field.Scope != schema.ScopeProject {
		return ""
	}
	if current := strings.TrimSpace(s.project[projectUUIDField]); current != "" {
		return current
	}
	id := s.cfg.newUUID()
	s.project[projectUUIDField] = id
	s.logger.Debug("project uuid assigned", "uuid", id)
	return id
}

// Samples returns the records of rows holding data, in grid order. Indices in
// validation results refer to positions in this slice.
func (s *Session) Samples() []schema.Record {
	rows := s.store.RowsWithData()
	out := make([]schema.Record, len(rows))
	for i, row := range rows {
		out[i] = row.Record
	}
	return out
}

// Validate runs whole-form validation over the project and Samples.
func (s *Session) Validate() validation.Result {
	result := s.validator.Validate(s.project, s.Samples())
	s.logger.Info("document validated", "valid", result.IsValid, "errors", result.ErrorCount)
	return result
}

// Report validates and groups the outcome for display.
func (s *Session) Report() report.Report {
	records := s.Samples()
	return report.Build(s.catalog, s.validator.Validate(s.project, records), records)
}

// PasteToSelectedRows merges the clipboard into the selected rows.
func (s *Session) PasteToSelectedRows() int {
	n := s.store.PasteToSelectedRows()
	s.invalidate()
	s.logger.Debug("clipboard pasted", "rows", n)
	return n
}

// ClearSelectedRows empties the selected rows.
func (s *Session) ClearSelectedRows() int {
	n := s.store.ClearSelectedRows()
	s.invalidate()
	s.logger.Debug("rows cleared", "rows", n)
	return n
}

// Import parses a workbook and applies it on success. A structural failure
// leaves the session untouched and is returned both in the result and as
// the error.
func (s *Session) Import(filename string, data []byte) (workbook.ImportResult, samples.ImportSummary, error) {
	result := s.importer.Import(filename, data)
	if !result.Success {
		s.logger.Warn("workbook rejected", "file", filename, "kind", string(result.Kind), "errors", result.Errors)
		return result, samples.ImportSummary{}, result.Err()
	}
	summary, err := s.ApplyImport(result)
	if err != nil {
		return result, summary, err
	}
	s.logger.Info("workbook imported",
		"file", filename,
		"sheet", result.SheetName,
		"samples", summary.Rows,
		"first_row", summary.FirstRow,
		"grown", summary.Grown,
		"unmatched", len(result.UnmatchedColumns),
	)
	return result, summary, nil
}

// ApplyImport merges a successful import: non-empty project values overwrite
// the current ones and sample records are bulk-imported into the grid.
func (s *Session) ApplyImport(result workbook.ImportResult) (samples.ImportSummary, error) {
	if !result.Success {
		return samples.ImportSummary{}, result.Err()
	}

	project := s.project.Clone()
	for id, value := range result.ProjectMetadata {
		if field, ok := s.catalog.Field(id); ok && field.Scope == schema.ScopeProject && value != "" {
			project[id] = value
		}
	}

	summary := s.store.BulkImport(result.SampleData)
	s.project = project
	s.invalidate()
	return summary, nil
}

// Export renders the document as an xlsx workbook. It assigns a project UUID
// first via EnsureProjectUUID, so an empty project_uuid is filled in the
// session as well as in the exported file.
func (s *Session) Export() ([]byte, error) {
	s.EnsureProjectUUID()
	records := s.Samples()
	data, err := s.exporter.Export(s.project, records)
	if err != nil {
		return nil, fmt.Errorf("session: export: %w", err)
	}
	s.logger.Info("workbook exported", "samples", len(records), "bytes", len(data))
	return data, nil
}

// Template renders an empty workbook carrying the current project metadata.
func (s *Session) Template() ([]byte, error) {
	data, err := s.exporter.Template(s.project)
	if err != nil {
		return nil, fmt.Errorf("session: template: %w", err)
	}
	return data, nil
}

// ExportCSV writes the samples as CSV.
func (s *Session) ExportCSV(w io.Writer) error {
	records := s.Samples()
	if err := workbook.ExportCSV(w, s.catalog, records); err != nil {
		return fmt.Errorf("session: export csv: %w", err)
	}
	s.logger.Info("csv exported", "samples", len(records))
	return nil
}

// Reset clears the project and the grid.
func (s *Session) Reset() {
	s.project = s.catalog.NewRecord(schema.ScopeProject)
	s.store.Reset()
	s.drag.Cancel()
	s.invalidate()
}

// SwapCatalog rebinds the session to catalog. Existing values are carried
// over for fields the new catalog still defines.
func (s *Session) SwapCatalog(catalog *schema.Catalog) error {
	if catalog == nil {
		return errors.New("session: catalog is required")
	}
	previous := s.Samples()
	project := s.project
	if err := s.bind(catalog); err != nil {
		return err
	}

	s.project = catalog.Conform(schema.ScopeProject, project)
	s.store = s.newStore(catalog)
	s.store.BulkImport(previous)
	s.drag = dragfill.New(s.store, catalog, s.visibility)
	s.invalidate()
	s.logger.Info("catalog swapped", "fields", catalog.Len(), "samples", len(previous))
	return nil
}

func (s *Session) invalidate() {
	s.visibility.Invalidate()
	s.options.Invalidate()
}
