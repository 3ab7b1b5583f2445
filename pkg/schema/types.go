package schema

import "strings"

// InputType enumerates the editors a field can be rendered with.
type InputType string

const (
	InputTypeText     InputType = "text"
	InputTypeDropdown InputType = "dropdown"
	InputTypeDate     InputType = "date"
)

// Scope identifies whether a field is entered once per document or per sample.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeSample  Scope = "sample"
)

const (
	// FormatDate marks a text field that must hold a YYYY-MM-DD date.
	FormatDate = "date"

	// SampleIDColumn is the synthetic workbook column carrying generated
	// sample identifiers. It is not part of any catalog.
	SampleIDColumn = "sample_id"
)

// Field describes one data column: its identity, editor, scope, vocabulary and
// validation constraints.
type Field struct {
	ID             string          `json:"field_id" yaml:"field_id"`
	Name           string          `json:"field_name,omitempty" yaml:"field_name,omitempty"`
	InputType      InputType       `json:"input_type" yaml:"input_type"`
	Required       bool            `json:"required" yaml:"required"`
	Scope          Scope           `json:"scope" yaml:"scope"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Options        []string        `json:"options,omitempty" yaml:"options,omitempty"`
	DynamicOptions *DynamicOptions `json:"dynamic_options,omitempty" yaml:"dynamic_options,omitempty"`
	Validation     Validation      `json:"validation,omitempty" yaml:"validation,omitempty"`
	ShowCondition  *ShowCondition  `json:"show_condition,omitempty" yaml:"show_condition,omitempty"`
}

// DynamicOptions maps the value of a controlling field onto the choice list
// of the dependent field.
type DynamicOptions struct {
	BasedOn   string              `json:"based_on" yaml:"based_on"`
	OptionMap map[string][]string `json:"option_map" yaml:"option_map"`
}

// Validation captures the declarative constraints attached to a field.
type Validation struct {
	MinLength           *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength           *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern             string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Format              string   `json:"format,omitempty" yaml:"format,omitempty"`
	Unique              bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	ConditionalRequired bool     `json:"conditional_required,omitempty" yaml:"conditional_required,omitempty"`
	CustomRules         []string `json:"custom_rules,omitempty" yaml:"custom_rules,omitempty"`
}

// ShowCondition gates a field's visibility on another field's current value.
type ShowCondition struct {
	Field    string   `json:"field" yaml:"field"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    string   `json:"value" yaml:"value"`
}

// Label returns the human-facing name, deriving one from the id when the
// catalog leaves field_name blank.
func (f Field) Label() string {
	if name := strings.TrimSpace(f.Name); name != "" {
		return name
	}
	return DefaultLabeler(f.ID)
}

// IsDate reports whether values must be YYYY-MM-DD dates.
func (f Field) IsDate() bool {
	return f.InputType == InputTypeDate || strings.EqualFold(strings.TrimSpace(f.Validation.Format), FormatDate)
}

// IsDropdown reports whether the field draws its value from a vocabulary.
func (f Field) IsDropdown() bool {
	return f.InputType == InputTypeDropdown || len(f.Options) > 0 || f.DynamicOptions != nil
}

// Conditional reports whether the field carries a show_condition.
func (f Field) Conditional() bool {
	return f.ShowCondition != nil && strings.TrimSpace(f.ShowCondition.Field) != ""
}

func cloneField(f Field) Field {
	out := f
	if len(f.Options) > 0 {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.DynamicOptions != nil {
		dyn := DynamicOptions{BasedOn: f.DynamicOptions.BasedOn}
		if len(f.DynamicOptions.OptionMap) > 0 {
			dyn.OptionMap = make(map[string][]string, len(f.DynamicOptions.OptionMap))
			for key, values := range f.DynamicOptions.OptionMap {
				dyn.OptionMap[key] = append([]string(nil), values...)
			}
		}
		out.DynamicOptions = &dyn
	}
	if f.ShowCondition != nil {
		cond := *f.ShowCondition
		out.ShowCondition = &cond
	}
	if f.Validation.MinLength != nil {
		v := *f.Validation.MinLength
		out.Validation.MinLength = &v
	}
	if f.Validation.MaxLength != nil {
		v := *f.Validation.MaxLength
		out.Validation.MaxLength = &v
	}
	if len(f.Validation.CustomRules) > 0 {
		out.Validation.CustomRules = append([]string(nil), f.Validation.CustomRules...)
	}
	return out
}
