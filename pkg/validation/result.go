package validation

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// PathDataset carries the synthetic error reported when no sample holds data.
	PathDataset = "samples"
	// PathForm carries the generic error reported when validation itself fails.
	PathForm = "_form"
)

const (
	messageNoSamples = "At least one sample with data is required"
	messageInternal  = "Validation could not be completed due to an unexpected error"
)

// Result is the outcome of a validation run.
type Result struct {
	IsValid    bool                `json:"isValid"`
	ErrorCount int                 `json:"errorCount"`
	Errors     map[string][]string `json:"errors"`

	order []string
}

// Paths returns the paths carrying errors in deterministic order: project
// fields by field_id, then samples by index and field_id.
func (r Result) Paths() []string {
	return append([]string(nil), r.order...)
}

// Messages returns the messages recorded for path.
func (r Result) Messages(path string) []string {
	return append([]string(nil), r.Errors[path]...)
}

// SampleErrors returns the errors of the sample at idx keyed by field_id.
func (r Result) SampleErrors(idx int) map[string][]string {
	out := make(map[string][]string)
	for _, path := range r.order {
		sample, field, ok := ParseSamplePath(path)
		if !ok || sample != idx {
			continue
		}
		out[field] = append(out[field], r.Errors[path]...)
	}
	return out
}

// SamplePath builds the error path for a sample field.
func SamplePath(idx int, fieldID string) string {
	return fmt.Sprintf("samples[%d].%s", idx, fieldID)
}

// ParseSamplePath splits a `samples[idx].field_id` path.
func ParseSamplePath(path string) (int, string, bool) {
	rest, ok := strings.CutPrefix(path, "samples[")
	if !ok {
		return 0, "", false
	}
	end := strings.Index(rest, "].")
	if end <= 0 {
		return 0, "", false
	}
	idx, err := strconv.Atoi(rest[:end])
	if err != nil || idx < 0 {
		return 0, "", false
	}
	field := rest[end+2:]
	if field == "" {
		return 0, "", false
	}
	return idx, field, true
}

type resultBuilder struct {
	errors map[string][]string
	order  []string
	count  int
}

func newResultBuilder() *resultBuilder {
	return &resultBuilder{errors: make(map[string][]string)}
}

func (b *resultBuilder) add(path string, messages ...string) {
	for _, message := range messages {
		if message == "" {
			continue
		}
		if _, seen := b.errors[path]; !seen {
			b.order = append(b.order, path)
		}
		b.errors[path] = append(b.errors[path], message)
		b.count++
	}
}

func (b *resultBuilder) result() Result {
	return Result{
		IsValid:    b.count == 0,
		ErrorCount: b.count,
		Errors:     b.errors,
		order:      b.order,
	}
}

func singleError(path, message string) Result {
	b := newResultBuilder()
	b.add(path, message)
	return b.result()
}
