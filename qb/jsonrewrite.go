package qb

import (
	"regexp"
	"strings"

	"github.com/Serajian/go-query-builder/dialect"
)

// jsonSentinel matches one JSON sentinel token plus the bare column token
// immediately to its left (spec §4.3: "Column extraction is the identifier
// token immediately to the left of the sentinel"). Column tokens are bare
// identifiers — letters, digits, underscore, dot (for qualified columns).
var jsonSentinel = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.]*)\{\{(JSON_EXTRACT|JSON_CONTAINS|JSON_NOT_CONTAINS|JSON_LENGTH)(?:::([^}]*))?\}\}`)

// rewriteJSONSentinels is the JSON Placeholder Processor (C8). It runs over
// one already-composed condition fragment, replacing every sentinel with
// its dialect-specific rendering. The value behind a JSON_CONTAINS /
// JSON_NOT_CONTAINS sentinel was already pushed onto the Collector in
// commit order when the condition was built (§4.1), so the rewritten
// expression always carries a plain "?" at that position — the generated
// name in the sentinel only disambiguates one sentinel from another in the
// fragment text, it is never used for binding lookup. The ordinary
// placeholder replacer (replaceAll / replaceSubqueries) consumes it like
// any other binding, in raw mode and prepared mode alike.
func rewriteJSONSentinels(fragment string, strat dialect.Strategy, stmt dialect.StatementKind) string {
	return jsonSentinel.ReplaceAllStringFunc(fragment, func(match string) string {
		groups := jsonSentinel.FindStringSubmatch(match)
		col, kind, payload := groups[1], groups[2], groups[3]
		switch kind {
		case "JSON_EXTRACT":
			return strat.JSONExtract(col, payload)
		case "JSON_LENGTH":
			return strat.JSONLength(col, payload)
		case "JSON_CONTAINS":
			_, path := splitValueAndPath(payload)
			return strat.JSONContains(col, "?", path, stmt)
		case "JSON_NOT_CONTAINS":
			_, path := splitValueAndPath(payload)
			return strat.JSONNotContains(col, "?", path, stmt)
		default:
			return match
		}
	})
}

// splitValueAndPath separates a JSON_CONTAINS/JSON_NOT_CONTAINS payload
// "<valueName>[::<path>]" into its two parts.
func splitValueAndPath(payload string) (name, path string) {
	parts := strings.SplitN(payload, "::", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
