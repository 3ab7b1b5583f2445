package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-sampleform/pkg/options"
	"github.com/goliatone/go-sampleform/pkg/schema"
)

const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleDate      = "date"
	RuleEnum      = "enum"
	RuleUnique    = "unique"
	RuleCustom    = "custom"
)

// Rule is one compiled constraint. Params mirrors the declarative source
// (e.g. Params["value"] for length bounds, Params["pattern"] for regexes,
// Params["name"] for custom rules) so rule sets can be inspected.
type Rule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`

	check checkFunc
}

// checkFunc returns a message when the rule is violated, "" otherwise.
type checkFunc func(c *checkContext) string

type checkContext struct {
	field   schema.Field
	value   string
	values  schema.Record
	options options.Provider
	unique  uniqueIndex
	catalog *schema.Catalog
	now     time.Time
}

func requiredRule() Rule {
	return Rule{
		Kind: RuleRequired,
		check: func(c *checkContext) string {
			if c.value == "" {
				return fmt.Sprintf("%s is required", c.field.Label())
			}
			return ""
		},
	}
}

func minLengthRule(limit int) Rule {
	return Rule{
		Kind:   RuleMinLength,
		Params: map[string]string{"value": strconv.Itoa(limit)},
		check: func(c *checkContext) string {
			if c.value == "" || utf8.RuneCountInString(c.value) >= limit {
				return ""
			}
			return fmt.Sprintf("%s must be at least %d characters", c.field.Label(), limit)
		},
	}
}

func maxLengthRule(limit int) Rule {
	return Rule{
		Kind:   RuleMaxLength,
		Params: map[string]string{"value": strconv.Itoa(limit)},
		check: func(c *checkContext) string {
			if utf8.RuneCountInString(c.value) <= limit {
				return ""
			}
			return fmt.Sprintf("%s must be at most %d characters", c.field.Label(), limit)
		},
	}
}

func patternRule(raw string) (Rule, error) {
	re, err := regexp.Compile(raw)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Kind:   RulePattern,
		Params: map[string]string{"pattern": raw},
		check: func(c *checkContext) string {
			if c.value == "" || re.MatchString(c.value) {
				return ""
			}
			return fmt.Sprintf("%s has an invalid format", c.field.Label())
		},
	}, nil
}

func dateRule() Rule {
	return Rule{
		Kind:   RuleDate,
		Params: map[string]string{"layout": "YYYY-MM-DD"},
		check: func(c *checkContext) string {
			if c.value == "" || ValidDate(c.value) {
				return ""
			}
			return fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", c.field.Label())
		},
	}
}

func enumRule() Rule {
	return Rule{
		Kind: RuleEnum,
		check: func(c *checkContext) string {
			if c.value == "" {
				return ""
			}
			for _, option := range c.options.OptionsFor(c.field, c.values) {
				if option == c.value {
					return ""
				}
			}
			return fmt.Sprintf("%s must be one of the allowed options (got %q)", c.field.Label(), c.value)
		},
	}
}

func uniqueRule() Rule {
	return Rule{
		Kind: RuleUnique,
		check: func(c *checkContext) string {
			if c.value == "" || c.unique == nil {
				return ""
			}
			if c.unique.count(c.field.ID, c.value) <= 1 {
				return ""
			}
			return fmt.Sprintf("%s must be unique (%q appears more than once)", c.field.Label(), c.value)
		},
	}
}

func customRule(name string, fn CustomRule) Rule {
	return Rule{
		Kind:   RuleCustom,
		Params: map[string]string{"name": name},
		check: func(c *checkContext) string {
			if c.value == "" {
				return ""
			}
			return fn(CustomContext{
				Field:   c.field,
				Value:   c.value,
				Values:  c.values,
				Catalog: c.catalog,
				Now:     c.now,
			})
		},
	}
}

// uniqueIndex counts trimmed non-empty values per unique field.
type uniqueIndex map[string]map[string]int

func (u uniqueIndex) count(fieldID, value string) int {
	return u[fieldID][value]
}

func (u uniqueIndex) add(fieldID, value string) {
	if value == "" {
		return
	}
	counts, ok := u[fieldID]
	if !ok {
		counts = make(map[string]int)
		u[fieldID] = counts
	}
	counts[value]++
}

func isRequired(field schema.Field) bool {
	return field.Required || (field.Validation.ConditionalRequired && field.Conditional())
}

func normaliseValue(raw string) string {
	return strings.TrimSpace(raw)
}
