package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/testsupport"
	"github.com/goliatone/go-sampleform/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message+" "+strings.Join(cfg.Options, "|"))
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newFiller(t *testing.T, driver PromptDriver) *Filler {
	t.Helper()
	catalog := testsupport.Catalog(t)
	f, err := NewFiller(catalog, validation.MustCompile(catalog), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}
	return f
}

func TestFillWaterSampleRepromptsInvalidAnswers(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs: []string{
			"EST-9",
			"2024-02-30", "2024-02-29",
			"",
			"Portugal",
			"", "abc", "3",
			"",
		},
		selectIdx: []int{1, 2, 1},
	}
	f := newFiller(t, driver)

	record, err := f.Fill(context.Background(), schema.ScopeSample, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := schema.Record{
		"samp_name":           "EST-9",
		"sample_type":         "water",
		"collection_date":     "2024-02-29",
		"collection_date_end": "",
		"geo_loc_name":        "Portugal",
		"env_medium":          "water",
		"env_material":        "freshwater",
		"depth":               "3",
		"host_taxid":          "",
		"notes":               "",
	}
	if diff := testsupport.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 3 {
		t.Fatalf("expected three rejected answers, got %v", driver.infoMessages)
	}
	if !strings.Contains(driver.infoMessages[0], "valid date") {
		t.Fatalf("expected a date message first, got %q", driver.infoMessages[0])
	}
	if !strings.Contains(driver.prompts[len(driver.prompts)-5], "(none)|freshwater|seawater|brackish water") {
		t.Fatalf("expected dynamic choices for water, got %v", driver.prompts)
	}
}

func TestFillSkipsHiddenFieldsAndEmptyVocabularies(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs:    []string{"HOST-1", "2024-01-05", "", "Lisbon", "9606", "swab"},
		selectIdx: []int{3},
	}
	f := newFiller(t, driver)

	record, err := f.Fill(context.Background(), schema.ScopeSample, schema.Record{"unknown": "dropped"})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if record["sample_type"] != "host-associated" || record["host_taxid"] != "9606" || record["notes"] != "swab" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["unknown"]; ok {
		t.Fatalf("unknown keys must not survive")
	}
	for _, prompt := range driver.prompts {
		if strings.HasPrefix(prompt, "Environmental Medium") || strings.HasPrefix(prompt, "Depth") {
			t.Fatalf("hidden field was prompted: %q", prompt)
		}
	}
	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "Environmental Material") {
		t.Fatalf("expected env_material to be skipped with a notice, got %v", driver.infoMessages)
	}
}

func TestFillPropagatesDriverErrors(t *testing.T) {
	t.Parallel()

	f := newFiller(t, &stubDriver{})
	if _, err := f.Fill(context.Background(), schema.ScopeProject, nil); err == nil {
		t.Fatalf("expected the exhausted driver to abort filling")
	}
}

func TestNewFillerRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := NewFiller(nil, nil); err == nil {
		t.Fatalf("expected an error without a catalog")
	}
	catalog := testsupport.Catalog(t)
	if _, err := NewFiller(catalog, nil); err == nil {
		t.Fatalf("expected an error without a validator")
	}
}
