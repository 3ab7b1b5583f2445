package workbook

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

// ExportCSV writes one header row of sample field ids followed by one row per
// sample. Every field is double-quoted and embedded quotes are doubled.
func ExportCSV(w io.Writer, catalog *schema.Catalog, samples []schema.Record) error {
	ids := catalog.IDs(schema.ScopeSample)
	out := bufio.NewWriter(w)

	if err := writeQuotedRow(out, ids); err != nil {
		return err
	}
	values := make([]string, len(ids))
	for _, sample := range samples {
		for i, id := range ids {
			values[i] = sample.Get(id)
		}
		if err := writeQuotedRow(out, values); err != nil {
			return err
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("workbook: csv: %w", err)
	}
	return nil
}

func writeQuotedRow(w *bufio.Writer, values []string) error {
	for i, value := range values {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return fmt.Errorf("workbook: csv: %w", err)
			}
		}
		if _, err := w.WriteString(quoteCSV(value)); err != nil {
			return fmt.Errorf("workbook: csv: %w", err)
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("workbook: csv: %w", err)
	}
	return nil
}

func quoteCSV(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
