package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Catalog is the immutable, ordered Schema Model. It is safe for concurrent
// readers; nothing mutates it after NewCatalog returns.
type Catalog struct {
	fields []Field
	index  map[string]int
}

// NewCatalog validates and indexes the supplied field definitions. Field ids
// must be unique; conditions and dynamic vocabularies must reference fields
// that exist in the catalog.
func NewCatalog(fields []Field) (*Catalog, error) {
	if len(fields) == 0 {
		return nil, errors.New("schema: catalog defines no fields")
	}

	catalog := &Catalog{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for idx, raw := range fields {
		field := cloneField(raw)
		field.ID = strings.TrimSpace(field.ID)
		if field.ID == "" {
			return nil, fmt.Errorf("schema: field at index %d has an empty field_id", idx)
		}
		if field.ID == SampleIDColumn {
			return nil, fmt.Errorf("schema: field id %q is reserved", SampleIDColumn)
		}
		if _, exists := catalog.index[field.ID]; exists {
			return nil, fmt.Errorf("schema: duplicate field_id %q", field.ID)
		}
		if err := normaliseField(&field); err != nil {
			return nil, err
		}
		catalog.index[field.ID] = len(catalog.fields)
		catalog.fields = append(catalog.fields, field)
	}

	for _, field := range catalog.fields {
		if field.Conditional() {
			if _, ok := catalog.index[field.ShowCondition.Field]; !ok {
				return nil, fmt.Errorf("schema: field %q show_condition references unknown field %q", field.ID, field.ShowCondition.Field)
			}
		}
		if field.DynamicOptions != nil {
			if _, ok := catalog.index[field.DynamicOptions.BasedOn]; !ok {
				return nil, fmt.Errorf("schema: field %q dynamic_options references unknown field %q", field.ID, field.DynamicOptions.BasedOn)
			}
		}
	}

	return catalog, nil
}

// MustCatalog panics if the catalog cannot be created. Useful for tests.
func MustCatalog(fields []Field) *Catalog {
	catalog, err := NewCatalog(fields)
	if err != nil {
		panic(err)
	}
	return catalog
}

func normaliseField(field *Field) error {
	switch field.Scope {
	case ScopeProject, ScopeSample:
	case "":
		field.Scope = ScopeSample
	default:
		return fmt.Errorf("schema: field %q has unsupported scope %q", field.ID, field.Scope)
	}

	switch field.InputType {
	case InputTypeText, InputTypeDropdown, InputTypeDate:
	case "":
		field.InputType = InputTypeText
		if len(field.Options) > 0 || field.DynamicOptions != nil {
			field.InputType = InputTypeDropdown
		}
	default:
		return fmt.Errorf("schema: field %q has unsupported input_type %q", field.ID, field.InputType)
	}

	if len(field.Options) > 0 && field.DynamicOptions != nil {
		return fmt.Errorf("schema: field %q declares both options and dynamic_options", field.ID)
	}
	if field.DynamicOptions != nil && strings.TrimSpace(field.DynamicOptions.BasedOn) == "" {
		return fmt.Errorf("schema: field %q dynamic_options requires based_on", field.ID)
	}

	if field.ShowCondition != nil {
		field.ShowCondition.Field = strings.TrimSpace(field.ShowCondition.Field)
		if field.ShowCondition.Field == "" {
			return fmt.Errorf("schema: field %q show_condition requires a field", field.ID)
		}
		if !field.ShowCondition.Operator.Valid() {
			return fmt.Errorf("schema: field %q show_condition has an invalid operator", field.ID)
		}
		if field.ShowCondition.Field == field.ID {
			return fmt.Errorf("schema: field %q show_condition references itself", field.ID)
		}
	}

	v := field.Validation
	if v.MinLength != nil && *v.MinLength < 0 {
		return fmt.Errorf("schema: field %q minLength must not be negative", field.ID)
	}
	if v.MinLength != nil && v.MaxLength != nil && *v.MinLength > *v.MaxLength {
		return fmt.Errorf("schema: field %q minLength exceeds maxLength", field.ID)
	}
	return nil
}

// Len returns the number of fields in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fields)
}

// Fields returns every field in catalog order.
func (c *Catalog) Fields() []Field {
	if c == nil {
		return nil
	}
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Field returns the definition for id.
func (c *Catalog) Field(id string) (Field, bool) {
	if c == nil {
		return Field{}, false
	}
	idx, ok := c.index[id]
	if !ok {
		return Field{}, false
	}
	return c.fields[idx], true
}

// Has reports whether id is a catalog field.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[id]
	return ok
}

// FieldsIn returns the fields of the given scope in catalog order.
func (c *Catalog) FieldsIn(scope Scope) []Field {
	if c == nil {
		return nil
	}
	var out []Field
	for _, field := range c.fields {
		if field.Scope == scope {
			out = append(out, field)
		}
	}
	return out
}

// SampleFields returns the per-sample fields in catalog order.
func (c *Catalog) SampleFields() []Field { return c.FieldsIn(ScopeSample) }

// ProjectFields returns the project-wide fields in catalog order.
func (c *Catalog) ProjectFields() []Field { return c.FieldsIn(ScopeProject) }

// IDs returns the field ids of the given scope in catalog order.
func (c *Catalog) IDs(scope Scope) []string {
	fields := c.FieldsIn(scope)
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = field.ID
	}
	return out
}

// NewRecord returns a record holding an empty value for every field of scope.
func (c *Catalog) NewRecord(scope Scope) Record {
	fields := c.FieldsIn(scope)
	out := make(Record, len(fields))
	for _, field := range fields {
		out[field.ID] = ""
	}
	return out
}

// Conform copies the values of scope's fields from values into a fresh
// record, filling absent fields with "" and dropping unknown keys.
func (c *Catalog) Conform(scope Scope, values map[string]string) Record {
	out := c.NewRecord(scope)
	for id := range out {
		if value, ok := values[id]; ok {
			out[id] = value
		}
	}
	return out
}
