package sampleform_test

import (
	"testing"

	sampleform "github.com/goliatone/go-sampleform"
	"github.com/goliatone/go-sampleform/pkg/testsupport"
)

func TestFacadeRoundTrip(t *testing.T) {
	t.Parallel()

	catalog := testsupport.Catalog(t)
	project := testsupport.Project(catalog)
	samples := testsupport.Samples(catalog)

	result, err := sampleform.Validate(catalog, project, samples)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.IsValid {
		t.Fatalf("expected fixtures to be valid, got %v", result.Errors)
	}

	data, err := sampleform.ExportWorkbook(catalog, project, samples)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	imported := sampleform.ImportWorkbook(catalog, "facade.xlsx", data)
	if !imported.Success || len(imported.SampleData) != len(samples) {
		t.Fatalf("unexpected import %+v", imported)
	}

	s, err := sampleform.NewSession(catalog)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if _, err := s.ApplyImport(imported); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !s.Validate().IsValid {
		t.Fatalf("expected the session document to be valid")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := sampleform.LoadCatalog("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected an error for a missing catalog")
	}
}
