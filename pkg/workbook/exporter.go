package workbook

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

// Exporter writes (project, samples) into the fixed workbook layout. Output is
// deterministic for a fixed clock.
type Exporter struct {
	catalog *schema.Catalog
	cfg     config
}

// NewExporter builds an exporter for catalog.
func NewExporter(catalog *schema.Catalog, opts ...Option) *Exporter {
	return &Exporter{catalog: catalog, cfg: newConfig(opts)}
}

// Export renders the workbook and returns its bytes.
func (e *Exporter) Export(project schema.Record, samples []schema.Record) ([]byte, error) {
	file, err := e.build(project, samples)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("workbook: write: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the workbook into w.
func (e *Exporter) Write(w io.Writer, project schema.Record, samples []schema.Record) error {
	file, err := e.build(project, samples)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("workbook: write: %w", err)
	}
	return nil
}

// Template renders an empty workbook carrying the project block and header.
func (e *Exporter) Template(project schema.Record) ([]byte, error) {
	return e.Export(project, nil)
}

// Headers returns the header row: sample_id followed by sample field ids in
// catalog order.
func (e *Exporter) Headers() []string {
	return append([]string{schema.SampleIDColumn}, e.catalog.IDs(schema.ScopeSample)...)
}

// SampleID formats the generated identifier of the zero-based sample index.
func (e *Exporter) SampleID(index int) string {
	return fmt.Sprintf("%s-%03d", e.cfg.samplePrefix, index+1)
}

type styles struct {
	title  int
	label  int
	block  int
	header int
}

func (e *Exporter) build(project schema.Record, samples []schema.Record) (*excelize.File, error) {
	file := excelize.NewFile()
	sheet := e.cfg.sheetName
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		file.Close()
		return nil, fmt.Errorf("workbook: rename sheet: %w", err)
	}

	st, err := newStyles(file)
	if err == nil {
		err = e.writeTitle(file, sheet, st)
	}
	if err == nil {
		err = e.writeProject(file, sheet, st, project)
	}
	if err == nil {
		err = e.writeSamples(file, sheet, st, samples)
	}
	if err == nil {
		err = file.SetDocProps(&excelize.DocProperties{
			Title:   e.cfg.title,
			Creator: "go-sampleform",
			Created: e.cfg.clock().UTC().Format(time.RFC3339),
		})
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("workbook: build: %w", err)
	}
	return file, nil
}

func newStyles(file *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var st styles
	var err error
	if st.title, err = file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, err
	}
	if st.label, err = file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	if st.block, err = file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"EDEDED"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, err
	}
	if st.header, err = file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return st, err
	}
	return st, nil
}

func (e *Exporter) writeTitle(file *excelize.File, sheet string, st styles) error {
	columns := len(e.Headers())
	if columns < minTitleColumns {
		columns = minTitleColumns
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := file.SetCellStr(sheet, titleCell, e.cfg.title); err != nil {
		return err
	}
	if err := file.MergeCell(sheet, titleCell, last); err != nil {
		return err
	}
	return file.SetCellStyle(sheet, titleCell, last, st.title)
}

func (e *Exporter) writeProject(file *excelize.File, sheet string, st styles, project schema.Record) error {
	for _, cell := range projectLayout {
		label := cell.label
		if field, ok := e.catalog.Field(cell.field); ok && field.Name != "" && !isContactField(cell.field) {
			label = field.Name
		}
		if err := file.SetCellStr(sheet, cell.labelCell, label); err != nil {
			return err
		}
		if err := file.SetCellStyle(sheet, cell.labelCell, cell.labelCell, st.label); err != nil {
			return err
		}
		if err := file.SetCellStr(sheet, cell.value, project.Get(cell.field)); err != nil {
			return err
		}
		if cell.mergeEnd != "" {
			if err := file.MergeCell(sheet, cell.value, cell.mergeEnd); err != nil {
				return err
			}
		}
	}

	for _, block := range contactBlocks {
		if err := file.SetCellStr(sheet, block.titleStart, block.title); err != nil {
			return err
		}
		if err := file.MergeCell(sheet, block.titleStart, block.titleEnd); err != nil {
			return err
		}
		if err := file.SetCellStyle(sheet, block.titleStart, block.titleEnd, st.block); err != nil {
			return err
		}
	}

	if err := file.SetCellStr(sheet, generatedLabel, "Generated"); err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, generatedLabel, generatedLabel, st.label); err != nil {
		return err
	}
	return file.SetCellStr(sheet, generatedCell, e.cfg.clock().UTC().Format("2006-01-02 15:04:05 UTC"))
}

func (e *Exporter) writeSamples(file *excelize.File, sheet string, st styles, samples []schema.Record) error {
	headers := e.Headers()
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	start, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(headers), headerRow)
	if err != nil {
		return err
	}
	if err := file.SetSheetRow(sheet, start, &row); err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, start, end, st.header); err != nil {
		return err
	}

	for i, h := range headers {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(len(h) + 2)
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if i == 0 && width < labelColumnWidth {
			width = labelColumnWidth
		}
		if err := file.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}

	for idx, sample := range samples {
		values := make([]any, len(headers))
		values[0] = e.SampleID(idx)
		for col, id := range headers[1:] {
			values[col+1] = sample.Get(id)
		}
		axis, err := excelize.CoordinatesToCellName(1, headerRow+1+idx)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, axis, &values); err != nil {
			return err
		}
	}
	return nil
}

func isContactField(id string) bool {
	for _, block := range []string{"primary_contact_", "secondary_contact_", "sequencing_contact_"} {
		if strings.HasPrefix(id, block) {
			return true
		}
	}
	return false
}
