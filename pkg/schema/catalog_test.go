package schema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

func intPtr(v int) *int { return &v }

func TestNewCatalogRejectsInvalidFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		fields []schema.Field
		want   string
	}{
		{
			name: "no fields",
			want: "defines no fields",
		},
		{
			name:   "empty id",
			fields: []schema.Field{{ID: "  "}},
			want:   "empty field_id",
		},
		{
			name:   "reserved sample id column",
			fields: []schema.Field{{ID: schema.SampleIDColumn}},
			want:   "is reserved",
		},
		{
			name:   "duplicate id",
			fields: []schema.Field{{ID: "samp_name"}, {ID: "depth"}, {ID: " samp_name "}},
			want:   `duplicate field_id "samp_name"`,
		},
		{
			name:   "unsupported scope",
			fields: []schema.Field{{ID: "samp_name", Scope: "dataset"}},
			want:   "unsupported scope",
		},
		{
			name:   "unsupported input type",
			fields: []schema.Field{{ID: "samp_name", InputType: "checkbox"}},
			want:   "unsupported input_type",
		},
		{
			name: "show_condition references unknown field",
			fields: []schema.Field{{
				ID:            "env_material",
				ShowCondition: &schema.ShowCondition{Field: "env_medium", Operator: schema.OpEqual, Value: "water"},
			}},
			want: `show_condition references unknown field "env_medium"`,
		},
		{
			name: "show_condition references itself",
			fields: []schema.Field{{
				ID:            "env_medium",
				ShowCondition: &schema.ShowCondition{Field: "env_medium", Operator: schema.OpEqual},
			}},
			want: "references itself",
		},
		{
			name: "show_condition without operator",
			fields: []schema.Field{
				{ID: "env_medium"},
				{ID: "env_material", ShowCondition: &schema.ShowCondition{Field: "env_medium"}},
			},
			want: "invalid operator",
		},
		{
			name: "dynamic options reference unknown field",
			fields: []schema.Field{{
				ID:             "env_material",
				DynamicOptions: &schema.DynamicOptions{BasedOn: "env_medium"},
			}},
			want: `dynamic_options references unknown field "env_medium"`,
		},
		{
			name: "dynamic options without based_on",
			fields: []schema.Field{{
				ID:             "env_material",
				DynamicOptions: &schema.DynamicOptions{},
			}},
			want: "requires based_on",
		},
		{
			name: "options and dynamic options",
			fields: []schema.Field{
				{ID: "env_medium", Options: []string{"water"}},
				{
					ID:             "env_material",
					Options:        []string{"mud"},
					DynamicOptions: &schema.DynamicOptions{BasedOn: "env_medium"},
				},
			},
			want: "both options and dynamic_options",
		},
		{
			name:   "negative minLength",
			fields: []schema.Field{{ID: "samp_name", Validation: schema.Validation{MinLength: intPtr(-1)}}},
			want:   "must not be negative",
		},
		{
			name: "minLength above maxLength",
			fields: []schema.Field{{
				ID:         "samp_name",
				Validation: schema.Validation{MinLength: intPtr(8), MaxLength: intPtr(4)},
			}},
			want: "minLength exceeds maxLength",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			catalog, err := schema.NewCatalog(tc.fields)
			if err == nil {
				t.Fatalf("expected error, got catalog with %d fields", catalog.Len())
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestNewCatalogNormalisesFields(t *testing.T) {
	t.Parallel()

	catalog, err := schema.NewCatalog([]schema.Field{
		{ID: "project_name", Scope: schema.ScopeProject},
		{ID: " samp_name ", Validation: schema.Validation{MinLength: intPtr(2), MaxLength: intPtr(2)}},
		{ID: "env_medium", Options: []string{"water", "soil"}},
		{ID: "env_material", DynamicOptions: &schema.DynamicOptions{BasedOn: "env_medium"}},
		{ID: "collection_date", InputType: schema.InputTypeDate},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	if diff := cmp.Diff([]string{"samp_name", "env_medium", "env_material", "collection_date"}, catalog.IDs(schema.ScopeSample)); diff != "" {
		t.Fatalf("sample ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"project_name"}, catalog.IDs(schema.ScopeProject)); diff != "" {
		t.Fatalf("project ids mismatch (-want +got):\n%s", diff)
	}

	medium, _ := catalog.Field("env_medium")
	material, _ := catalog.Field("env_material")
	name, _ := catalog.Field("samp_name")
	date, _ := catalog.Field("collection_date")
	if medium.InputType != schema.InputTypeDropdown || material.InputType != schema.InputTypeDropdown {
		t.Fatalf("vocabulary fields should default to dropdown, got %q and %q", medium.InputType, material.InputType)
	}
	if name.InputType != schema.InputTypeText || name.Scope != schema.ScopeSample {
		t.Fatalf("expected text sample field, got %q/%q", name.InputType, name.Scope)
	}
	if !date.IsDate() || name.IsDate() {
		t.Fatalf("date detection mismatch")
	}
}

func TestCatalogIsIsolatedFromInput(t *testing.T) {
	t.Parallel()

	options := []string{"water", "soil"}
	catalog := schema.MustCatalog([]schema.Field{{ID: "env_medium", Options: options}})
	options[0] = "mutated"

	field, _ := catalog.Field("env_medium")
	if field.Options[0] != "water" {
		t.Fatalf("catalog must copy option lists, got %v", field.Options)
	}
}

func TestCatalogRecords(t *testing.T) {
	t.Parallel()

	catalog := schema.MustCatalog([]schema.Field{
		{ID: "project_name", Scope: schema.ScopeProject},
		{ID: "samp_name"},
		{ID: "depth"},
	})

	if diff := cmp.Diff(schema.Record{"samp_name": "", "depth": ""}, catalog.NewRecord(schema.ScopeSample)); diff != "" {
		t.Fatalf("new record mismatch (-want +got):\n%s", diff)
	}

	got := catalog.Conform(schema.ScopeSample, map[string]string{"samp_name": "S1", "project_name": "P", "extra": "x"})
	if diff := cmp.Diff(schema.Record{"samp_name": "S1", "depth": ""}, got); diff != "" {
		t.Fatalf("conform mismatch (-want +got):\n%s", diff)
	}
	if !catalog.NewRecord(schema.ScopeSample).IsEmpty() || got.IsEmpty() {
		t.Fatalf("IsEmpty mismatch")
	}
}

func TestDefaultLabeler(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":               "",
		"project_name":   "Project Name",
		"samp_name":      "Sample Name",
		"host_taxid":     "Host Taxonomy ID",
		"project_uuid":   "Project UUID",
		"geo_loc_name":   "Geographic Location Name",
		"env_medium":     "Environmental Medium",
		"collectionDate": "Collection Date",
		"depth-2m":       "Depth 2 M",
	}
	for id, want := range cases {
		if got := schema.DefaultLabeler(id); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", id, got, want)
		}
	}
}
