package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-sampleform/pkg/options"
	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/visibility"
)

// Option configures the validator.
type Option func(*config)

type config struct {
	visibility visibility.Evaluator
	options    options.Provider
	clock      func() time.Time
	custom     map[string]CustomRule
}

// WithVisibility shares a visibility evaluator (typically a session's cached
// resolver) instead of the validator's private one.
func WithVisibility(evaluator visibility.Evaluator) Option {
	return func(cfg *config) {
		if evaluator != nil {
			cfg.visibility = evaluator
		}
	}
}

// WithOptions shares an option provider instead of the validator's private one.
func WithOptions(provider options.Provider) Option {
	return func(cfg *config) {
		if provider != nil {
			cfg.options = provider
		}
	}
}

// WithClock overrides the time source used by date-relative custom rules.
func WithClock(clock func() time.Time) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithCustomRule registers (or replaces) a named custom rule referenced from
// validation.custom_rules.
func WithCustomRule(name string, rule CustomRule) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || rule == nil {
			return
		}
		cfg.custom[name] = rule
	}
}

// RuleSet is the compiled rule list of one scope, ordered by field_id.
type RuleSet struct {
	scope  schema.Scope
	fields []fieldRules
}

type fieldRules struct {
	field schema.Field
	rules []Rule
}

// Scope returns the scope the rule set was compiled for.
func (s *RuleSet) Scope() schema.Scope {
	return s.scope
}

// FieldIDs returns the ids covered by the rule set in evaluation order.
func (s *RuleSet) FieldIDs() []string {
	out := make([]string, len(s.fields))
	for i, fr := range s.fields {
		out[i] = fr.field.ID
	}
	return out
}

// Rules returns the compiled rules of fieldID.
func (s *RuleSet) Rules(fieldID string) []Rule {
	for _, fr := range s.fields {
		if fr.field.ID == fieldID {
			return append([]Rule(nil), fr.rules...)
		}
	}
	return nil
}

func (s *RuleSet) lookup(fieldID string) (fieldRules, bool) {
	for _, fr := range s.fields {
		if fr.field.ID == fieldID {
			return fr, true
		}
	}
	return fieldRules{}, false
}

// Validator executes compiled rule sets. It holds no per-run state; the
// resolvers it uses may memoise decisions.
type Validator struct {
	catalog    *schema.Catalog
	project    *RuleSet
	sample     *RuleSet
	visibility visibility.Evaluator
	options    options.Provider
	clock      func() time.Time
}

// Compile builds the project and sample rule sets from catalog. Invalid
// patterns and unknown custom rule names are reported here rather than at
// validation time.
func Compile(catalog *schema.Catalog, opts ...Option) (*Validator, error) {
	if catalog == nil {
		return nil, errors.New("validation: catalog is required")
	}

	cfg := config{
		visibility: visibility.NewResolver(),
		options:    options.NewResolver(),
		clock:      time.Now,
		custom:     builtinCustomRules(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	project, err := compileScope(catalog, schema.ScopeProject, cfg.custom)
	if err != nil {
		return nil, err
	}
	sample, err := compileScope(catalog, schema.ScopeSample, cfg.custom)
	if err != nil {
		return nil, err
	}

	return &Validator{
		catalog:    catalog,
		project:    project,
		sample:     sample,
		visibility: cfg.visibility,
		options:    cfg.options,
		clock:      cfg.clock,
	}, nil
}

// MustCompile panics if Compile fails. Useful for tests.
func MustCompile(catalog *schema.Catalog, opts ...Option) *Validator {
	v, err := Compile(catalog, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func compileScope(catalog *schema.Catalog, scope schema.Scope, custom map[string]CustomRule) (*RuleSet, error) {
	fields := catalog.FieldsIn(scope)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].ID < fields[j].ID })

	set := &RuleSet{scope: scope, fields: make([]fieldRules, 0, len(fields))}
	for _, field := range fields {
		rules, err := compileField(field, custom)
		if err != nil {
			return nil, fmt.Errorf("validation: field %q: %w", field.ID, err)
		}
		set.fields = append(set.fields, fieldRules{field: field, rules: rules})
	}
	return set, nil
}

func compileField(field schema.Field, custom map[string]CustomRule) ([]Rule, error) {
	var rules []Rule
	v := field.Validation

	if isRequired(field) {
		rules = append(rules, requiredRule())
	}
	if v.MinLength != nil && *v.MinLength > 0 {
		rules = append(rules, minLengthRule(*v.MinLength))
	}
	if v.MaxLength != nil {
		rules = append(rules, maxLengthRule(*v.MaxLength))
	}
	if pattern := strings.TrimSpace(v.Pattern); pattern != "" {
		rule, err := patternRule(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		rules = append(rules, rule)
	}
	if field.IsDate() {
		rules = append(rules, dateRule())
	}
	if field.IsDropdown() {
		rules = append(rules, enumRule())
	}
	if v.Unique {
		rules = append(rules, uniqueRule())
	}
	for _, name := range v.CustomRules {
		name = strings.TrimSpace(name)
		fn, ok := custom[name]
		if !ok {
			return nil, fmt.Errorf("unknown custom rule %q", name)
		}
		rules = append(rules, customRule(name, fn))
	}
	return rules, nil
}

// RuleSet returns the compiled rules for scope.
func (v *Validator) RuleSet(scope schema.Scope) *RuleSet {
	if scope == schema.ScopeProject {
		return v.project
	}
	return v.sample
}
