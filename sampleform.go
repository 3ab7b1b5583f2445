// Package sampleform is the top-level entry point: load a field catalog,
// validate documents, move them in and out of workbooks, or open a Session
// for interactive editing.
package sampleform

import (
	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/session"
	"github.com/goliatone/go-sampleform/pkg/validation"
	"github.com/goliatone/go-sampleform/pkg/workbook"
)

// Catalog aliases schema.Catalog.
type Catalog = schema.Catalog

// Record aliases schema.Record.
type Record = schema.Record

// Result aliases validation.Result.
type Result = validation.Result

// ImportResult aliases workbook.ImportResult.
type ImportResult = workbook.ImportResult

// Session aliases session.Session.
type Session = session.Session

// LoadCatalog reads a JSON or YAML field catalog from disk.
func LoadCatalog(path string) (*Catalog, error) {
	return schema.Load(path)
}

// NewSession opens an editing session for catalog.
func NewSession(catalog *Catalog, options ...session.Option) (*Session, error) {
	return session.New(catalog, options...)
}

// Validate compiles the catalog rules and validates a document in one call.
func Validate(catalog *Catalog, project Record, samples []Record, options ...validation.Option) (Result, error) {
	validator, err := validation.Compile(catalog, options...)
	if err != nil {
		return Result{}, err
	}
	return validator.Validate(project, samples), nil
}

// ImportWorkbook parses an xlsx payload against catalog.
func ImportWorkbook(catalog *Catalog, filename string, data []byte, options ...workbook.Option) ImportResult {
	return workbook.NewImporter(catalog, options...).Import(filename, data)
}

// ExportWorkbook renders project and samples into an xlsx payload.
func ExportWorkbook(catalog *Catalog, project Record, samples []Record, options ...workbook.Option) ([]byte, error) {
	return workbook.NewExporter(catalog, options...).Export(project, samples)
}
