// Package report turns a validation.Result into grouped, human-readable
// summaries: a terminal rendering styled with lipgloss and a sanitised HTML
// fragment for embedding in web pages.
package report

import (
	"sort"

	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/validation"
)

// Entry holds the messages reported for one field.
type Entry struct {
	Field    string
	Label    string
	Messages []string
}

// SampleEntry groups the entries of one sample. Row is 1-based.
type SampleEntry struct {
	Index   int
	Row     int
	Name    string
	Entries []Entry
}

// Report is a grouped view of a validation result.
type Report struct {
	Valid      bool
	ErrorCount int
	Project    []Entry
	Samples    []SampleEntry
	Dataset    []string
	Form       []string
}

// Build groups result by entity. samples, when supplied, provide display
// names for sample groups (the samp_name value if present).
func Build(catalog *schema.Catalog, result validation.Result, samples []schema.Record) Report {
	rep := Report{Valid: result.IsValid, ErrorCount: result.ErrorCount}
	bySample := map[int]*SampleEntry{}

	for _, path := range result.Paths() {
		messages := result.Messages(path)
		switch path {
		case validation.PathDataset:
			rep.Dataset = append(rep.Dataset, messages...)
			continue
		case validation.PathForm:
			rep.Form = append(rep.Form, messages...)
			continue
		}

		if idx, fieldID, ok := validation.ParseSamplePath(path); ok {
			group, exists := bySample[idx]
			if !exists {
				group = &SampleEntry{Index: idx, Row: idx + 1, Name: sampleName(samples, idx)}
				bySample[idx] = group
			}
			group.Entries = append(group.Entries, entry(catalog, fieldID, messages))
			continue
		}
		rep.Project = append(rep.Project, entry(catalog, path, messages))
	}

	indices := make([]int, 0, len(bySample))
	for idx := range bySample {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		rep.Samples = append(rep.Samples, *bySample[idx])
	}
	return rep
}

func entry(catalog *schema.Catalog, fieldID string, messages []string) Entry {
	label := schema.DefaultLabeler(fieldID)
	if field, ok := catalog.Field(fieldID); ok {
		label = field.Label()
	}
	return Entry{Field: fieldID, Label: label, Messages: append([]string(nil), messages...)}
}

func sampleName(samples []schema.Record, idx int) string {
	if idx < 0 || idx >= len(samples) {
		return ""
	}
	return samples[idx].Get("samp_name")
}
