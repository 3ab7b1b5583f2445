package schema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

func TestParseCondition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  schema.ShowCondition
	}{
		{
			name:  "double quoted literal",
			input: `env_medium != "water"`,
			want:  schema.ShowCondition{Field: "env_medium", Operator: schema.OpNotEqual, Value: "water"},
		},
		{
			name:  "bare numeric value",
			input: "depth >= 10",
			want:  schema.ShowCondition{Field: "depth", Operator: schema.OpGreaterEqual, Value: "10"},
		},
		{
			name:  "no spaces around operator",
			input: "sample_type='soil'",
			want:  schema.ShowCondition{Field: "sample_type", Operator: schema.OpEqual, Value: "soil"},
		},
		{
			name:  "word operator",
			input: "depth gte 10",
			want:  schema.ShowCondition{Field: "depth", Operator: schema.OpGreaterEqual, Value: "10"},
		},
		{
			name:  "word operator is case insensitive",
			input: "depth LT 3.5",
			want:  schema.ShowCondition{Field: "depth", Operator: schema.OpLess, Value: "3.5"},
		},
		{
			name:  "angle not equal",
			input: "depth <> 5",
			want:  schema.ShowCondition{Field: "depth", Operator: schema.OpNotEqual, Value: "5"},
		},
		{
			name:  "escaped quotes",
			input: `notes == "core \"A\""`,
			want:  schema.ShowCondition{Field: "notes", Operator: schema.OpEqual, Value: `core "A"`},
		},
		{
			name:  "missing value compares against empty",
			input: "env_medium eq",
			want:  schema.ShowCondition{Field: "env_medium", Operator: schema.OpEqual, Value: ""},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := schema.ParseCondition(tc.input)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.input, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("condition mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseConditionErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "   ", want: "empty condition"},
		{name: "missing field", input: `== "water"`, want: "missing a field"},
		{name: "unknown operator", input: "depth ~ 10", want: "unsupported operator"},
		{name: "unterminated double quote", input: `env_medium = "water`, want: "unterminated string literal"},
		{name: "lone single quote", input: "env_medium = '", want: "unterminated string literal"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := schema.ParseCondition(tc.input)
			if err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestOperatorTextRoundTrip(t *testing.T) {
	t.Parallel()

	for _, op := range schema.Operators() {
		text, err := op.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", op, err)
		}
		var decoded schema.Operator
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %q: %v", text, err)
		}
		if decoded != op {
			t.Fatalf("expected %v, got %v", op, decoded)
		}
	}

	if _, err := schema.OpInvalid.MarshalText(); err == nil {
		t.Fatalf("expected invalid operator to fail marshalling")
	}
}
