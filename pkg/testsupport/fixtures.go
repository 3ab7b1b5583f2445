// Package testsupport holds fixtures shared by the package tests: an embedded
// catalog describing a typical environmental sampling submission, canned
// project/sample records, and helpers for building ad-hoc workbooks.
package testsupport

import (
	"bytes"
	"embed"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

//go:embed testdata/catalog.yaml
var fixtures embed.FS

// CatalogPath is the location of the fixture catalog inside CatalogFS.
const CatalogPath = "testdata/catalog.yaml"

// CatalogFS exposes the embedded fixture filesystem.
func CatalogFS() fs.FS {
	return fixtures
}

// Catalog parses the fixture catalog, failing the test on error.
func Catalog(t testing.TB) *schema.Catalog {
	t.Helper()

	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

// LoadCatalog returns the fixture catalog without requiring testing.T, so
// callers can wire fixtures in setup functions.
func LoadCatalog() (*schema.Catalog, error) {
	return schema.LoadFS(fixtures, CatalogPath)
}

// Project returns fully populated, valid project metadata.
func Project(catalog *schema.Catalog) schema.Record {
	return catalog.Conform(schema.ScopeProject, map[string]string{
		"project_name":                   "Coastal Sediment Survey",
		"project_uuid":                   "4b0c7a36-1f59-4c55-9d8e-3f2f0c1d2a11",
		"project_description":            "Seasonal sampling of estuary sediments",
		"primary_contact_name":           "Ada Lovelace",
		"primary_contact_email":          "ada@example.org",
		"primary_contact_institution":    "Analytical Engines Lab",
		"secondary_contact_name":         "Grace Hopper",
		"secondary_contact_email":        "grace@example.org",
		"secondary_contact_institution":  "Compiler Institute",
		"sequencing_contact_name":        "Rosalind Franklin",
		"sequencing_contact_email":       "rosalind@example.org",
		"sequencing_contact_institution": "Sequencing Core",
	})
}

// Sample returns a sample record conforming to the catalog with values applied.
func Sample(catalog *schema.Catalog, values map[string]string) schema.Record {
	return catalog.Conform(schema.ScopeSample, values)
}

// Samples returns three valid sample records.
func Samples(catalog *schema.Catalog) []schema.Record {
	return []schema.Record{
		Sample(catalog, map[string]string{
			"samp_name":       "EST-01",
			"sample_type":     "water",
			"collection_date": "2024-03-01",
			"geo_loc_name":    "Portugal: Tagus estuary",
			"env_medium":      "water",
			"env_material":    "brackish water",
			"depth":           "2.5",
		}),
		Sample(catalog, map[string]string{
			"samp_name":           "EST-02",
			"sample_type":         "sediment",
			"collection_date":     "2024-03-02",
			"collection_date_end": "2024-03-04",
			"geo_loc_name":        "Portugal: Tagus estuary",
			"env_medium":          "sediment",
			"env_material":        "mud",
			"notes":               `core "A" top layer`,
		}),
		Sample(catalog, map[string]string{
			"samp_name":       "EST-03",
			"sample_type":     "host-associated",
			"collection_date": "2024-03-05",
			"geo_loc_name":    "Portugal: Lisbon",
			"host_taxid":      "9606",
		}),
	}
}

// Workbook builds an in-memory xlsx by letting build populate the named sheet.
func Workbook(t testing.TB, sheet string, build func(f *excelize.File, sheet string)) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			t.Fatalf("close workbook: %v", err)
		}
	}()
	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	} else {
		sheet = "Sheet1"
	}
	build(f, sheet)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// SetRow writes values into consecutive cells of row starting at column A.
func SetRow(t testing.TB, f *excelize.File, sheet string, row int, values ...any) {
	t.Helper()

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		t.Fatalf("cell name: %v", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		t.Fatalf("set row %d: %v", row, err)
	}
}

// Diff returns a go-cmp diff of want and got.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}
