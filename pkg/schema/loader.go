package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a JSON or YAML catalog document from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	doc, err := NewDocument(SourceFromFile(path), data)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// LoadFS reads a catalog document from fsys.
func LoadFS(fsys fs.FS, name string) (*Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("schema: nil filesystem for %s", name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", name, err)
	}
	doc, err := NewDocument(SourceFromFS(name), data)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// ParseBytes is a convenience wrapper around Parse for in-memory payloads.
func ParseBytes(name string, data []byte) (*Catalog, error) {
	doc, err := NewDocument(SourceFromBytes(name), data)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// Parse decodes a catalog document. JSON is attempted first, then YAML.
// show_condition may be a mapping ({field, operator, value}) or the
// shorthand string form accepted by ParseCondition.
func Parse(doc Document) (*Catalog, error) {
	raw, err := parseDocument(doc.Raw(), doc.Location())
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(raw.Fields))
	for idx, entry := range raw.Fields {
		field, err := entry.toField()
		if err != nil {
			return nil, fmt.Errorf("schema: %s field %d (%s): %w", doc.Location(), idx, entry.ID, err)
		}
		fields = append(fields, field)
	}

	catalog, err := NewCatalog(fields)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, doc.Location())
	}
	return catalog, nil
}

type documentFile struct {
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	ID             string          `json:"field_id" yaml:"field_id"`
	Name           string          `json:"field_name" yaml:"field_name"`
	InputType      InputType       `json:"input_type" yaml:"input_type"`
	Required       bool            `json:"required" yaml:"required"`
	Scope          Scope           `json:"scope" yaml:"scope"`
	Description    string          `json:"description" yaml:"description"`
	Options        []string        `json:"options" yaml:"options"`
	DynamicOptions *DynamicOptions `json:"dynamic_options" yaml:"dynamic_options"`
	Validation     Validation      `json:"validation" yaml:"validation"`
	ShowCondition  any             `json:"show_condition" yaml:"show_condition"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
}

func (f fieldFile) toField() (Field, error) {
	field := Field{
		ID:             f.ID,
		Name:           f.Name,
		InputType:      InputType(strings.ToLower(strings.TrimSpace(string(f.InputType)))),
		Required:       f.Required,
		Scope:          Scope(strings.ToLower(strings.TrimSpace(string(f.Scope)))),
		Description:    f.Description,
		Options:        f.Options,
		DynamicOptions: f.DynamicOptions,
		Validation:     f.Validation,
	}
	cond, err := decodeCondition(f.ShowCondition)
	if err != nil {
		return Field{}, err
	}
	field.ShowCondition = cond
	return field, nil
}

func decodeCondition(raw any) (*ShowCondition, error) {
	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(typed) == "" {
			return nil, nil
		}
		cond, err := ParseCondition(typed)
		if err != nil {
			return nil, err
		}
		return &cond, nil
	case map[string]any:
		field := scalarString(typed["field"])
		opRaw := scalarString(typed["operator"])
		if opRaw == "" {
			opRaw = "="
		}
		op, err := ParseOperator(opRaw)
		if err != nil {
			return nil, err
		}
		return &ShowCondition{Field: field, Operator: op, Value: scalarString(typed["value"])}, nil
	default:
		return nil, fmt.Errorf("unsupported show_condition type %T", raw)
	}
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
