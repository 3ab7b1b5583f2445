// Package tui fills project metadata and sample records interactively,
// prompting field by field in catalog order. Dropdowns offer the currently
// valid choices, hidden fields are skipped and every answer is checked with
// the compiled field rules before it is accepted.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-sampleform/pkg/options"
	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/validation"
	"github.com/goliatone/go-sampleform/pkg/visibility"
)

const noneOption = "(none)"

// Option configures the Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithVisibility overrides the evaluator deciding which fields are prompted.
func WithVisibility(evaluator visibility.Evaluator) Option {
	return func(f *Filler) {
		if evaluator != nil {
			f.visibility = evaluator
		}
	}
}

// WithOptions overrides the dropdown choice provider.
func WithOptions(provider options.Provider) Option {
	return func(f *Filler) {
		if provider != nil {
			f.options = provider
		}
	}
}

// Filler drives prompts for one record at a time.
type Filler struct {
	catalog    *schema.Catalog
	validator  *validation.Validator
	driver     PromptDriver
	visibility visibility.Evaluator
	options    options.Provider
}

// NewFiller constructs a Filler. The survey driver is used unless another is
// supplied.
func NewFiller(catalog *schema.Catalog, validator *validation.Validator, opts ...Option) (*Filler, error) {
	if catalog == nil {
		return nil, errors.New("tui: catalog is required")
	}
	if validator == nil {
		return nil, errors.New("tui: validator is required")
	}
	f := &Filler{
		catalog:    catalog,
		validator:  validator,
		visibility: visibility.NewResolver(),
		options:    options.NewResolver(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver()
	}
	return f, nil
}

// Fill prompts for every visible field of scope and returns the completed
// record. Values already present in seed are offered as defaults.
func (f *Filler) Fill(ctx context.Context, scope schema.Scope, seed schema.Record) (schema.Record, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	record := f.catalog.Conform(scope, seed)
	for _, field := range f.catalog.FieldsIn(scope) {
		if !f.visibility.ShouldShow(field, record) {
			continue
		}
		var err error
		if field.IsDropdown() {
			err = f.promptChoice(ctx, scope, field, record)
		} else {
			err = f.promptText(ctx, scope, field, record)
		}
		if errors.Is(err, ErrNoOptions) {
			if infoErr := f.driver.Info(ctx, fmt.Sprintf("%s: no options available yet, skipped", field.Label())); infoErr != nil {
				return nil, infoErr
			}
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return record, nil
}

// More asks whether another record should be entered.
func (f *Filler) More(ctx context.Context, message string) (bool, error) {
	return f.driver.Confirm(ctx, ConfirmConfig{Message: message})
}

func (f *Filler) promptText(ctx context.Context, scope schema.Scope, field schema.Field, record schema.Record) error {
	help := field.Description
	if field.IsDate() && help == "" {
		help = "YYYY-MM-DD"
	}
	for {
		response, err := f.driver.Input(ctx, InputConfig{
			Message: field.Label(),
			Default: record[field.ID],
			Help:    help,
		})
		if err != nil {
			return err
		}
		if ok, err := f.accept(ctx, scope, field, record, strings.TrimSpace(response)); ok || err != nil {
			return err
		}
	}
}

func (f *Filler) promptChoice(ctx context.Context, scope schema.Scope, field schema.Field, record schema.Record) error {
	choices := f.options.OptionsFor(field, record)
	if len(choices) == 0 {
		return ErrNoOptions
	}
	if !field.Required {
		choices = append([]string{noneOption}, choices...)
	}
	for {
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      field.Label(),
			Options:      choices,
			DefaultIndex: indexOf(choices, record[field.ID]),
			Help:         field.Description,
		})
		if err != nil {
			return err
		}
		value := ""
		if idx >= 0 && idx < len(choices) && choices[idx] != noneOption {
			value = choices[idx]
		}
		if ok, err := f.accept(ctx, scope, field, record, value); ok || err != nil {
			return err
		}
	}
}

// accept stores value when the field rules pass, otherwise reports the
// messages and asks for another attempt.
func (f *Filler) accept(ctx context.Context, scope schema.Scope, field schema.Field, record schema.Record, value string) (bool, error) {
	previous := record[field.ID]
	record[field.ID] = value
	messages := f.validator.ValidateField(scope, field.ID, record)
	if len(messages) == 0 {
		return true, nil
	}
	record[field.ID] = previous
	return false, f.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", field.ID, strings.Join(messages, "; ")))
}
