package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Operator is the closed set of relational operators a show_condition may use.
type Operator uint8

const (
	OpInvalid Operator = iota
	OpEqual
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
)

// Operators lists every valid operator in declaration order.
func Operators() []Operator {
	return []Operator{OpEqual, OpNotEqual, OpGreater, OpLess, OpGreaterEqual, OpLessEqual}
}

// ParseOperator accepts the symbolic spellings (`=`, `==`, `!=`, `>`, `<`,
// `>=`, `<=`) and their short word aliases (`eq`, `ne`, `gt`, `lt`, `gte`, `lte`).
func ParseOperator(raw string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "=", "==", "eq":
		return OpEqual, nil
	case "!=", "<>", "ne", "neq":
		return OpNotEqual, nil
	case ">", "gt":
		return OpGreater, nil
	case "<", "lt":
		return OpLess, nil
	case ">=", "gte", "ge":
		return OpGreaterEqual, nil
	case "<=", "lte", "le":
		return OpLessEqual, nil
	default:
		return OpInvalid, fmt.Errorf("schema: unsupported operator %q", raw)
	}
}

// Valid reports whether o is one of the six relational operators.
func (o Operator) Valid() bool {
	return o >= OpEqual && o <= OpLessEqual
}

func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	default:
		return "?"
	}
}

// MarshalText encodes the operator using its symbolic spelling.
func (o Operator) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, errors.New("schema: invalid operator")
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes any spelling accepted by ParseOperator.
func (o *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseCondition parses the shorthand `field <op> value` form, e.g.
// `env_medium != "water"` or `depth >= 10`. Values may be bare or quoted.
func ParseCondition(raw string) (ShowCondition, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return ShowCondition{}, errors.New("schema: empty condition")
	}

	i := 0
	for i < len(input) && !isOperatorByte(input[i]) && !isSpace(input[i]) {
		i++
	}
	field := input[:i]
	if field == "" {
		return ShowCondition{}, fmt.Errorf("schema: condition %q is missing a field", raw)
	}
	for i < len(input) && isSpace(input[i]) {
		i++
	}

	start := i
	for i < len(input) && isOperatorByte(input[i]) {
		i++
	}
	opRaw := input[start:i]
	if opRaw == "" {
		// word operators: `depth gte 10`
		for i < len(input) && !isSpace(input[i]) {
			i++
		}
		opRaw = input[start:i]
	}
	op, err := ParseOperator(opRaw)
	if err != nil {
		return ShowCondition{}, fmt.Errorf("schema: condition %q: %w", raw, err)
	}

	value, err := parseConditionValue(strings.TrimSpace(input[i:]))
	if err != nil {
		return ShowCondition{}, fmt.Errorf("schema: condition %q: %w", raw, err)
	}
	return ShowCondition{Field: field, Operator: op, Value: value}, nil
}

func parseConditionValue(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	quote := raw[0]
	if quote != '"' && quote != '\'' {
		return raw, nil
	}
	if len(raw) < 2 || raw[len(raw)-1] != quote {
		return "", errors.New("unterminated string literal")
	}
	if quote == '\'' {
		return raw[1 : len(raw)-1], nil
	}
	value, err := strconv.Unquote(raw)
	if err != nil {
		return "", fmt.Errorf("invalid string literal: %w", err)
	}
	return value, nil
}

func (c ShowCondition) String() string {
	return fmt.Sprintf("%s %s %q", c.Field, c.Operator, c.Value)
}

func isOperatorByte(ch byte) bool {
	return ch == '=' || ch == '!' || ch == '<' || ch == '>'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
