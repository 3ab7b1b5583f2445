package schema

import "strings"

// Record holds the values of one entity (project metadata or a sample row)
// keyed by field_id.
type Record map[string]string

// Get returns the value for id, or "" when absent.
func (r Record) Get(id string) string {
	if r == nil {
		return ""
	}
	return r[id]
}

// IsEmpty reports whether every value is blank after trimming.
func (r Record) IsEmpty() bool {
	for _, value := range r {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}
