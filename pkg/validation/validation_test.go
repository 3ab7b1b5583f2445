package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/testsupport"
	"github.com/goliatone/go-sampleform/pkg/validation"
)

func newValidator(t *testing.T, opts ...validation.Option) (*validation.Validator, *schema.Catalog) {
	t.Helper()

	catalog := testsupport.Catalog(t)
	v, err := validation.Compile(catalog, opts...)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return v, catalog
}

func TestValidateFixtureIsValid(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	result := v.Validate(testsupport.Project(catalog), testsupport.Samples(catalog))
	if !result.IsValid {
		t.Fatalf("expected fixture to be valid, got %v", result.Errors)
	}
	if result.ErrorCount != 0 {
		t.Fatalf("expected zero errors, got %d", result.ErrorCount)
	}
}

func TestValidateWithoutSampleData(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	project := catalog.NewRecord(schema.ScopeProject) // invalid, but must not be reported
	samples := []schema.Record{catalog.NewRecord(schema.ScopeSample), catalog.NewRecord(schema.ScopeSample)}

	result := v.Validate(project, samples)
	if result.IsValid || result.ErrorCount != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", result.ErrorCount, result.Errors)
	}
	if diff := cmp.Diff([]string{validation.PathDataset}, result.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSkipsEmptyRowsButKeepsIndices(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	bad := testsupport.Sample(catalog, map[string]string{"samp_name": "only-name"})
	samples := []schema.Record{catalog.NewRecord(schema.ScopeSample), catalog.NewRecord(schema.ScopeSample), bad}

	result := v.Validate(testsupport.Project(catalog), samples)
	for _, path := range result.Paths() {
		if !strings.HasPrefix(path, "samples[2].") {
			t.Fatalf("unexpected error path %q", path)
		}
	}
	if got := result.Messages("samples[2].collection_date"); len(got) != 1 || got[0] != "Collection Date is required" {
		t.Fatalf("unexpected collection_date messages %v", got)
	}
}

func TestValidDate(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"2024-02-29": true,
		"2024-02-30": false,
		"2023-02-29": false,
		"2024-13-01": false,
		"2024-1-01":  false,
		"24-01-01":   false,
		"1899-12-31": false,
		"1900-01-01": true,
		"2100-12-31": true,
		"2101-01-01": false,
		"2024-01-01T00:00:00": false,
	}
	for raw, want := range cases {
		if got := validation.ValidDate(raw); got != want {
			t.Fatalf("ValidDate(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestDateFormatRule(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	samples := testsupport.Samples(catalog)
	samples[0]["collection_date"] = "2024-02-30"
	samples[1]["collection_date"] = "2024-02-29"
	samples[1]["collection_date_end"] = ""
	samples[2]["collection_date"] = "2023-02-29"

	result := v.ValidateSamples(samples)
	want := "Collection Date must be a valid date in YYYY-MM-DD format"
	if diff := cmp.Diff([]string{want}, result.Messages("samples[0].collection_date")); diff != "" {
		t.Fatalf("2024-02-30 (-want +got):\n%s", diff)
	}
	if got := result.Messages("samples[1].collection_date"); len(got) != 0 {
		t.Fatalf("expected leap day to pass, got %v", got)
	}
	if diff := cmp.Diff([]string{want}, result.Messages("samples[2].collection_date")); diff != "" {
		t.Fatalf("2023-02-29 (-want +got):\n%s", diff)
	}
}

func TestCrossFieldCollectionDate(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	sample := testsupport.Samples(catalog)[1]
	sample["collection_date"] = "2024-01-05"
	sample["collection_date_end"] = "2024-01-01"

	result := v.ValidateSamples([]schema.Record{sample})
	got := result.Messages("samples[0].collection_date_end")
	if len(got) != 1 || !strings.HasSuffix(got[0], "must be on or after Collection Date") {
		t.Fatalf("expected cross-field date error, got %v", got)
	}

	sample["collection_date"] = "not-a-date"
	result = v.ValidateSamples([]schema.Record{sample})
	if got := result.Messages("samples[0].collection_date_end"); len(got) != 0 {
		t.Fatalf("expected rule to be vacuous with an invalid collection_date, got %v", got)
	}
}

func TestUniqueProducesOneErrorPerRecord(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	samples := testsupport.Samples(catalog)
	samples[2]["samp_name"] = samples[0]["samp_name"]

	result := v.Validate(testsupport.Project(catalog), samples)
	if result.ErrorCount != 2 {
		t.Fatalf("expected exactly 2 errors, got %d: %v", result.ErrorCount, result.Errors)
	}
	if diff := cmp.Diff([]string{"samples[0].samp_name", "samples[2].samp_name"}, result.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestUniqueIgnoresEmptyValues(t *testing.T) {
	t.Parallel()

	catalog := schema.MustCatalog([]schema.Field{
		{ID: "barcode", Scope: schema.ScopeSample, Validation: schema.Validation{Unique: true}},
		{ID: "note", Scope: schema.ScopeSample},
	})
	v := validation.MustCompile(catalog)
	samples := []schema.Record{
		{"barcode": "", "note": "a"},
		{"barcode": " ", "note": "b"},
	}
	if result := v.ValidateSamples(samples); !result.IsValid {
		t.Fatalf("expected empty values to be ignored, got %v", result.Errors)
	}
}

func TestHiddenFieldsAreExempt(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	sample := testsupport.Samples(catalog)[2] // host-associated
	sample["env_medium"] = "lava"
	sample["depth"] = "deep"

	result := v.ValidateSamples([]schema.Record{sample})
	if !result.IsValid {
		t.Fatalf("expected hidden fields to be skipped, got %v", result.Errors)
	}
}

func TestConditionalRequired(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	samples := testsupport.Samples(catalog)
	samples[0]["depth"] = ""      // water: depth shown and required
	samples[2]["host_taxid"] = "" // host-associated: host_taxid shown and required
	samples[1]["depth"] = ""      // sediment: depth hidden

	result := v.ValidateSamples(samples)
	want := map[string][]string{
		"samples[0].depth":      {"Depth (m) is required"},
		"samples[2].host_taxid": {"Host Taxonomy ID is required"},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDropdownEnumUsesDynamicOptions(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	samples := testsupport.Samples(catalog)
	samples[1]["env_material"] = "seawater" // sediment vocabulary is mud/silt
	samples[1]["sample_type"] = "magma"

	result := v.ValidateSamples(samples)
	if got := result.Messages("samples[1].env_material"); len(got) != 1 {
		t.Fatalf("expected enum error for env_material, got %v", got)
	}
	if got := result.Messages("samples[1].sample_type"); len(got) != 1 {
		t.Fatalf("expected enum error for sample_type, got %v", got)
	}
}

func TestProjectRules(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	project := testsupport.Project(catalog)
	project["project_name"] = "ab"
	project["primary_contact_email"] = "not-an-email"
	project["primary_contact_name"] = "   "

	result := v.ValidateProject(project)
	want := []string{"primary_contact_email", "primary_contact_name", "project_name"}
	if diff := cmp.Diff(want, result.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if got := result.Messages("project_name"); len(got) != 1 || got[0] != "Project Name must be at least 3 characters" {
		t.Fatalf("unexpected project_name messages %v", got)
	}
}

func TestErrorOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	v, catalog := newValidator(t)
	samples := make([]schema.Record, 12)
	for i := range samples {
		samples[i] = testsupport.Sample(catalog, map[string]string{"notes": "x"})
	}

	first := v.ValidateSamples(samples).Paths()
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, v.ValidateSamples(samples).Paths()); diff != "" {
			t.Fatalf("non-deterministic order (-first +again):\n%s", diff)
		}
	}
	if first[0] != "samples[0].collection_date" {
		t.Fatalf("expected field_id ascending within the first sample, got %q", first[0])
	}
	last := first[len(first)-1]
	if idx, _, ok := validation.ParseSamplePath(last); !ok || idx != 11 {
		t.Fatalf("expected sample index ascending, last path %q", last)
	}
}

func TestInternalFailureIsDowngraded(t *testing.T) {
	t.Parallel()

	catalog := schema.MustCatalog([]schema.Field{
		{ID: "code", Scope: schema.ScopeSample, Validation: schema.Validation{CustomRules: []string{"explode"}}},
	})
	v := validation.MustCompile(catalog, validation.WithCustomRule("explode", func(validation.CustomContext) string {
		panic("boom")
	}))

	result := v.Validate(nil, []schema.Record{{"code": "x"}})
	if result.IsValid || result.ErrorCount != 1 {
		t.Fatalf("expected one generic error, got %v", result.Errors)
	}
	if len(result.Messages(validation.PathForm)) != 1 {
		t.Fatalf("expected error at %s, got %v", validation.PathForm, result.Errors)
	}
	if msgs := v.ValidateField(schema.ScopeSample, "code", schema.Record{"code": "x"}); len(msgs) != 1 {
		t.Fatalf("expected ValidateField to downgrade the panic, got %v", msgs)
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]schema.Field{
		"invalid pattern": {ID: "a", Validation: schema.Validation{Pattern: "("}},
		"unknown custom":  {ID: "a", Validation: schema.Validation{CustomRules: []string{"nope"}}},
	}
	for name, field := range cases {
		if _, err := validation.Compile(schema.MustCatalog([]schema.Field{field})); err == nil {
			t.Fatalf("%s: expected compile error", name)
		}
	}
	if _, err := validation.Compile(nil); err == nil {
		t.Fatalf("expected error for nil catalog")
	}
}

func TestNotInFutureUsesClock(t *testing.T) {
	t.Parallel()

	catalog := schema.MustCatalog([]schema.Field{
		{ID: "collected", InputType: schema.InputTypeDate, Validation: schema.Validation{CustomRules: []string{validation.CustomNotInFuture}}},
	})
	clock := func() time.Time { return time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC) }
	v := validation.MustCompile(catalog, validation.WithClock(clock))

	if msgs := v.ValidateField(schema.ScopeSample, "collected", schema.Record{"collected": "2024-06-01"}); len(msgs) != 0 {
		t.Fatalf("expected today to pass, got %v", msgs)
	}
	msgs := v.ValidateField(schema.ScopeSample, "collected", schema.Record{"collected": "2024-06-02"})
	if diff := cmp.Diff([]string{"Collected must not be in the future"}, msgs); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleSetInspection(t *testing.T) {
	t.Parallel()

	v, _ := newValidator(t)
	set := v.RuleSet(schema.ScopeSample)
	if set.Scope() != schema.ScopeSample {
		t.Fatalf("unexpected scope %q", set.Scope())
	}
	ids := set.FieldIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("rule set not ordered by field_id: %v", ids)
		}
	}

	var kinds []string
	for _, rule := range set.Rules("samp_name") {
		kinds = append(kinds, rule.Kind)
	}
	want := []string{validation.RuleRequired, validation.RuleMaxLength, validation.RuleUnique}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("samp_name rules (-want +got):\n%s", diff)
	}
}

func TestParseSamplePath(t *testing.T) {
	t.Parallel()

	idx, field, ok := validation.ParseSamplePath(validation.SamplePath(7, "samp_name"))
	if !ok || idx != 7 || field != "samp_name" {
		t.Fatalf("round trip failed: %d %q %v", idx, field, ok)
	}
	for _, bad := range []string{"samp_name", "samples[].x", "samples[x].y", "samples[1].", validation.PathDataset} {
		if _, _, ok := validation.ParseSamplePath(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
