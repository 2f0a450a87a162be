package preprocessor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"rgehrsitz/switchmatch/internal/table"
	"rgehrsitz/switchmatch/pkg/rules"
)

// Format is the encoding of a rule table.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that is
// not .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadTable reads and parses a table file. A table without a name is named
// after its file.
func LoadTable(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	t, err := ParseTable(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, nil
}

// ParseTable decodes a table. Numbers are normalized to float64 so JSON and
// YAML tables behave the same.
func ParseTable(data []byte, format Format) (*table.Table, error) {
	log.Debug().Str("format", string(format)).Msg("Started parsing table...")

	var t table.Table
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal table JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal table YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported table format '%s'", format)
	}

	for i := range t.Rules {
		t.Rules[i].When = Normalize(t.Rules[i].When)
		t.Rules[i].Then = Normalize(t.Rules[i].Then)
	}
	t.Else = Normalize(t.Else)
	return &t, nil
}

// ParseSubject decodes a single subject written as JSON or YAML. Bare words
// are strings.
func ParseSubject(text string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("failed to parse subject %q: %w", text, err)
	}
	return Normalize(v), nil
}

// Normalize converts every integer to float64 and every map key to a
// string, recursively.
func Normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case []any:
		for i := range x {
			x[i] = Normalize(x[i])
		}
		return x
	case map[string]any:
		for k, e := range x {
			x[k] = Normalize(e)
		}
		return x
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = Normalize(e)
		}
		return m
	}
	return v
}

// ValidateTable checks every rule and fails on the first problem.
func ValidateTable(t *table.Table) error {
	log.Debug().Str("table", t.Name).Int("rules", len(t.Rules)).Msg("Started validating table...")

	defaults := 0
	for i, rule := range t.Rules {
		if err := validateRule(rule); err != nil {
			return &TableError{Table: t.Name, Rule: i, Err: err}
		}
		if rule.Kind() == table.TypeDefault {
			defaults++
			if defaults > 1 {
				return &TableError{Table: t.Name, Rule: i, Err: rules.ErrDuplicateDefault}
			}
		}
	}
	return nil
}

func validateRule(rule table.Rule) error {
	kind := rule.Kind()
	if !table.IsValidType(kind) {
		return fmt.Errorf("invalid type '%s'", kind)
	}

	switch kind {
	case table.TypeBreak:
		if rule.When != nil || rule.Operator != "" || rule.Then != nil {
			return errors.New("break takes no when, operator or then")
		}
	case table.TypeDefault:
		if rule.When != nil || rule.Operator != "" {
			return errors.New("default takes no when or operator")
		}
	case table.TypeCase:
		if rule.When == nil {
			return errors.New("case needs a when value")
		}
		if !table.IsValidOperator(rule.Op()) {
			return fmt.Errorf("invalid operator '%s'", rule.Operator)
		}
		return validateOperand(rule)
	}
	return nil
}

// validateOperand checks the when value against what the operator can
// compare. Ordering works on numbers and strings. Membership takes a string
// (substring or key) or any scalar (list element).
func validateOperand(rule table.Rule) error {
	op := rule.Op()
	switch {
	case table.IsOrdering(op):
		switch rule.When.(type) {
		case float64, string:
			return nil
		}
		return fmt.Errorf("expected numeric or string value for operator '%s'", op)
	case op == table.OperatorContains || op == table.OperatorNotContains:
		switch rule.When.(type) {
		case string, float64, bool:
			return nil
		}
		return fmt.Errorf("expected string or scalar value for operator '%s'", op)
	}
	return nil
}
