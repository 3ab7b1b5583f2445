package workbook

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

// ImportResult is either a success carrying the extracted data or a failure
// carrying human-readable errors. UnmatchedColumns is populated in both cases
// once a header row was located.
type ImportResult struct {
	Success bool

	ProjectMetadata  schema.Record
	SampleData       []schema.Record
	MatchedColumns   []string
	UnmatchedColumns []string
	Warnings         []string

	Errors []string
	Kind   ErrorKind

	SheetName string
	HeaderRow int
}

// Err returns the structural failure as an error, or nil on success.
func (r ImportResult) Err() error {
	if r.Success {
		return nil
	}
	return &StructuralError{Kind: r.Kind, Messages: append([]string(nil), r.Errors...)}
}

// Importer reads workbooks against a field catalog.
type Importer struct {
	catalog *schema.Catalog
	cfg     config
	known   map[string]bool
	columns map[string]schema.Field
}

// NewImporter builds an importer for catalog.
func NewImporter(catalog *schema.Catalog, opts ...Option) *Importer {
	im := &Importer{
		catalog: catalog,
		cfg:     newConfig(opts),
		known:   map[string]bool{schema.SampleIDColumn: true},
		columns: map[string]schema.Field{},
	}
	im.columns[schema.SampleIDColumn] = schema.Field{ID: schema.SampleIDColumn, InputType: schema.InputTypeText, Scope: schema.ScopeSample}
	for _, field := range catalog.Fields() {
		im.known[field.ID] = true
		if field.Scope == schema.ScopeSample {
			im.columns[strings.ToLower(field.ID)] = field
		}
	}
	return im
}

// Import parses an xlsx/xls payload named filename.
func (im *Importer) Import(filename string, data []byte) ImportResult {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return failure(KindUnsupportedExtension,
			fmt.Sprintf("Unsupported file type %q: please upload an Excel workbook (.xlsx or .xls)", filename))
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return failure(KindUnreadable, fmt.Sprintf("Could not read workbook %q: %v", filename, err))
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return failure(KindUnreadable, fmt.Sprintf("Workbook %q contains no sheets", filename))
	}
	sheet := sheets[0]
	for _, name := range sheets {
		if name == im.cfg.sheetName {
			sheet = name
			break
		}
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return failure(KindUnreadable, fmt.Sprintf("Could not read sheet %q: %v", sheet, err))
	}

	reader := cellReader{file: file, sheet: sheet}
	result := ImportResult{SheetName: sheet}

	header, headerAt := im.locateHeader(rows)
	if headerAt == 0 {
		result.Kind = KindNoHeader
		result.Errors = []string{fmt.Sprintf(
			"No header row found in rows %d or %d. Expected column names such as: %s",
			headerRow, fallbackHeaderRow, strings.Join(im.expectedSample(), ", "))}
		return result
	}
	result.HeaderRow = headerAt

	type column struct {
		index int
		field schema.Field
	}
	var matched []column
	for idx, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		field, ok := im.columns[strings.ToLower(name)]
		if !ok {
			result.UnmatchedColumns = append(result.UnmatchedColumns, name)
			continue
		}
		matched = append(matched, column{index: idx + 1, field: field})
		result.MatchedColumns = append(result.MatchedColumns, field.ID)
	}

	if len(matched) == 0 {
		result.Kind = KindNoMatchedColumns
		result.Errors = []string{fmt.Sprintf(
			"None of the columns in row %d match a known field. Expected column names such as: %s",
			headerAt, strings.Join(im.expectedSample(), ", "))}
		return result
	}

	for _, name := range result.UnmatchedColumns {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Column %q does not match any field and was ignored", name))
	}

	result.ProjectMetadata = im.projectMetadata(reader)

	result.SampleData = []schema.Record{}
	for rowNum := headerAt + 1; rowNum <= len(rows); rowNum++ {
		record := schema.Record{}
		hasData := false
		for _, col := range matched {
			axis, err := excelize.CoordinatesToCellName(col.index, rowNum)
			if err != nil {
				continue
			}
			value := reader.value(axis, col.field.IsDate())
			if value != "" {
				hasData = true
				record[col.field.ID] = value
			}
		}
		if hasData {
			result.SampleData = append(result.SampleData, record)
		}
	}

	result.Success = true
	return result
}

// locateHeader tries the primary header row then the fallback one. A row
// naming a known sample column wins; otherwise the first non-empty candidate
// is returned so its columns can be reported as unmatched.
func (im *Importer) locateHeader(rows [][]string) ([]string, int) {
	var firstRow []string
	firstAt := 0
	for _, candidate := range []int{headerRow, fallbackHeaderRow} {
		if candidate > len(rows) {
			continue
		}
		row := rows[candidate-1]
		for _, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name == "" {
				continue
			}
			if _, ok := im.columns[name]; ok {
				return row, candidate
			}
			if firstAt == 0 {
				firstRow, firstAt = row, candidate
			}
		}
	}
	return firstRow, firstAt
}

func (im *Importer) projectMetadata(reader cellReader) schema.Record {
	project := schema.Record{}
	for _, cell := range projectLayout {
		field, ok := im.catalog.Field(cell.field)
		if !ok || field.Scope != schema.ScopeProject {
			continue
		}
		value := reader.value(cell.value, field.IsDate())
		if value == "" || im.known[value] {
			continue
		}
		project[field.ID] = value
	}
	return project
}

func (im *Importer) expectedSample() []string {
	ids := append([]string{schema.SampleIDColumn}, im.catalog.IDs(schema.ScopeSample)...)
	if len(ids) > expectedIDSample {
		ids = ids[:expectedIDSample]
	}
	return ids
}

func failure(kind ErrorKind, message string) ImportResult {
	return ImportResult{Kind: kind, Errors: []string{message}}
}
