package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-sampleform/pkg/report"
	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/testsupport"
	"github.com/goliatone/go-sampleform/pkg/validation"
)

func invalidResult(t *testing.T) (*schema.Catalog, validation.Result, []schema.Record) {
	t.Helper()

	catalog := testsupport.Catalog(t)
	project := testsupport.Project(catalog)
	project["project_name"] = ""
	samples := testsupport.Samples(catalog)
	samples[1]["collection_date"] = "2024-02-30"
	samples[1]["notes"] = `<script>alert("x")</script>`
	samples[2]["host_taxid"] = "human"

	result := validation.MustCompile(catalog).Validate(project, samples)
	if result.IsValid {
		t.Fatalf("expected the fixture to be invalid")
	}
	return catalog, result, samples
}

func TestBuildGroupsByEntity(t *testing.T) {
	t.Parallel()

	catalog, result, samples := invalidResult(t)
	rep := report.Build(catalog, result, samples)

	if rep.Valid || rep.ErrorCount != result.ErrorCount {
		t.Fatalf("unexpected header %+v", rep)
	}
	if len(rep.Project) != 1 || rep.Project[0].Field != "project_name" || rep.Project[0].Label != "Project Name" {
		t.Fatalf("unexpected project entries %+v", rep.Project)
	}

	var rows []int
	var names []string
	for _, group := range rep.Samples {
		rows = append(rows, group.Row)
		names = append(names, group.Name)
	}
	if diff := testsupport.Diff([]int{2, 3}, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if diff := testsupport.Diff([]string{"EST-02", "EST-03"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDatasetError(t *testing.T) {
	t.Parallel()

	catalog := testsupport.Catalog(t)
	result := validation.MustCompile(catalog).Validate(testsupport.Project(catalog), nil)
	rep := report.Build(catalog, result, nil)
	if len(rep.Dataset) != 1 || len(rep.Project) != 0 || len(rep.Samples) != 0 {
		t.Fatalf("expected only the dataset error, got %+v", rep)
	}
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	catalog, result, samples := invalidResult(t)
	var buf bytes.Buffer
	if err := report.WriteText(&buf, report.Build(catalog, result, samples)); err != nil {
		t.Fatalf("write text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Validation report",
		"Status: INVALID",
		"Project Name: Project Name is required",
		"Row 2 (EST-02)",
		"Collection Date: Collection Date must be a valid date in YYYY-MM-DD format",
		"Row 3 (EST-03)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape sequences when writing to a buffer")
	}

	buf.Reset()
	if err := report.WriteText(&buf, report.Report{Valid: true}); err != nil {
		t.Fatalf("write text: %v", err)
	}
	if !strings.Contains(buf.String(), "Status: VALID") {
		t.Fatalf("expected a valid status, got %q", buf.String())
	}
}

func TestRenderHTMLEscapesValues(t *testing.T) {
	t.Parallel()

	rep := report.Report{
		ErrorCount: 2,
		Project:    []report.Entry{{Field: "project_name", Label: "Project Name", Messages: []string{"Project Name is required"}}},
		Samples: []report.SampleEntry{{
			Index: 0, Row: 1, Name: `<img src=x onerror=alert(1)>`,
			Entries: []report.Entry{{Field: "notes", Label: "Notes", Messages: []string{`Notes must be one of the allowed options (got "<script>")`}}},
		}},
	}

	out, err := report.RenderHTML(rep)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	for _, want := range []string{`class="validation-report is-invalid"`, "2 errors found.", "<strong>Project Name</strong>", "<td>1</td>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	for _, banned := range []string{"<script>", "<img"} {
		if strings.Contains(out, banned) {
			t.Fatalf("unexpected %q in output:\n%s", banned, out)
		}
	}
}
