package qb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Serajian/go-query-builder/dialect"
)

// formatLiteral is the Value Formatter (C6): it maps one bound value to its
// dialect-safe literal text for non-prepared rendering. Strings are run
// through the Injection Validator before escaping; any value that cannot be
// formatted (array, map, or other unsupported type) fails with
// UnsupportedBindingType.
func formatLiteral(v interface{}, strat dialect.Strategy, stmt dialect.StatementKind) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		return strat.FormatBoolean(val, stmt), nil
	case int:
		return strconv.Itoa(val), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val), nil
	case float32, float64:
		return fmt.Sprintf("%v", val), nil
	case string:
		if err := validateSafe(val); err != nil {
			return "", err
		}
		return "'" + escapeStringLiteral(val) + "'", nil
	case *SelectBuilder:
		sub, _, err := val.compile(strat, false)
		if err != nil {
			return "", err
		}
		return "(" + sub + ")", nil
	default:
		return "", newError(UnsupportedBindingType, "value of type %T cannot be formatted as a SQL literal", v)
	}
}

// escapeStringLiteral doubles backslashes then single quotes, per spec §4.6.
func escapeStringLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `''`)
	return s
}

// replaceAll is the Placeholder Replacer's raw-mode path: it walks sql
// left-to-right, replacing each '?' with the formatted literal of the next
// binding. An unmatched '?' with no corresponding binding is an
// InvalidStructure error (spec §4.6, §4.9 "binding missing").
func replaceAll(sql string, bindings []interface{}, strat dialect.Strategy, stmt dialect.StatementKind) (string, error) {
	var out strings.Builder
	i := 0
	for _, r := range sql {
		if r != '?' {
			out.WriteRune(r)
			continue
		}
		if i >= len(bindings) {
			return "", newError(InvalidStructure, "no binding found for '?' at position %d", i)
		}
		lit, err := formatLiteral(bindings[i], strat, stmt)
		if err != nil {
			return "", err
		}
		out.WriteString(lit)
		i++
	}
	return out.String(), nil
}

// replaceSubqueries is the Placeholder Replacer's prepared-mode subquery
// splice (spec §4.6): for each binding that is a *SelectBuilder, the
// leftmost remaining '?' in sql is replaced with "(sub_sql)" and the
// subquery's own bindings are spliced into the vector at that position. All
// other bindings are left untouched and keep occupying one placeholder.
func replaceSubqueries(sql string, bindings []interface{}, strat dialect.Strategy) (string, []interface{}, error) {
	var out strings.Builder
	result := make([]interface{}, 0, len(bindings))
	bi := 0
	for _, r := range sql {
		if r != '?' {
			out.WriteRune(r)
			continue
		}
		if bi >= len(bindings) {
			return "", nil, newError(InvalidStructure, "no binding found for '?' at position %d", bi)
		}
		v := bindings[bi]
		bi++
		if sub, ok := v.(*SelectBuilder); ok {
			subSQL, subBindings, err := sub.compile(strat, true)
			if err != nil {
				return "", nil, err
			}
			out.WriteString("(")
			out.WriteString(subSQL)
			out.WriteString(")")
			result = append(result, subBindings...)
			continue
		}
		out.WriteString("?")
		result = append(result, v)
	}
	return out.String(), result, nil
}
