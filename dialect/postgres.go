package dialect

import (
	"fmt"
	"strings"
)

// postgresStrategy renders PostgreSQL SQL.
type postgresStrategy struct{}

func (postgresStrategy) Name() Name { return PostgreSQL }

func (postgresStrategy) QuoteIdentifier(raw string) string {
	return `"` + strings.ReplaceAll(raw, `"`, `""`) + `"`
}

func (postgresStrategy) FormatBoolean(b bool, _ StatementKind) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (postgresStrategy) SkipJoinKind(_ JoinKind, stmt StatementKind) bool {
	// PostgreSQL UPDATE/DELETE never render JOIN at all; SELECT supports
	// every join kind this library models.
	return stmt == StatementUpdate || stmt == StatementDelete
}

func (postgresStrategy) SupportsOrderByLimitJoin(stmt StatementKind) bool {
	return stmt != StatementUpdate && stmt != StatementDelete
}

// pgPathSegments strips a leading "$." or "$" and splits the remainder into
// dot-separated hops, per the Open Question decision recorded in DESIGN.md.
func pgPathSegments(path string) []string {
	p := strings.TrimPrefix(path, "$.")
	p = strings.TrimPrefix(p, "$")
	p = strings.TrimPrefix(p, ".")
	if p == "" {
		return nil
	}
	return strings.Split(p, ".")
}

func (p postgresStrategy) JSONExtract(col, path string) string {
	quoted := p.QuoteIdentifier(col)
	segs := pgPathSegments(path)
	if len(segs) == 0 {
		return quoted
	}
	var b strings.Builder
	b.WriteString(quoted)
	for i, seg := range segs {
		if i == len(segs)-1 {
			b.WriteString("->>'")
		} else {
			b.WriteString("->'")
		}
		b.WriteString(seg)
		b.WriteString("'")
	}
	return b.String()
}

// pgJSONBPath renders a jsonb-preserving traversal (every hop via "->", no
// final "->>"), used by JSONContains/JSONLength where the result must stay
// jsonb rather than being cast down to text.
func (p postgresStrategy) pgJSONBPath(col, path string) string {
	quoted := p.QuoteIdentifier(col)
	segs := pgPathSegments(path)
	var b strings.Builder
	b.WriteString(quoted)
	for _, seg := range segs {
		b.WriteString("->'")
		b.WriteString(seg)
		b.WriteString("'")
	}
	return b.String()
}

func (p postgresStrategy) JSONContains(col, valuePlaceholder, path string, stmt StatementKind) string {
	target := p.pgJSONBPath(col, path)
	if stmt == StatementUpdate {
		return fmt.Sprintf("%s @> to_jsonb(%s)", target, valuePlaceholder)
	}
	return fmt.Sprintf("%s @> %s::jsonb", target, valuePlaceholder)
}

func (p postgresStrategy) JSONNotContains(col, valuePlaceholder, path string, stmt StatementKind) string {
	return "NOT ( " + p.JSONContains(col, valuePlaceholder, path, stmt) + " )"
}

func (p postgresStrategy) JSONLength(col, path string) string {
	if path == "" {
		return fmt.Sprintf("jsonb_array_length(%s)", p.QuoteIdentifier(col))
	}
	return fmt.Sprintf("jsonb_array_length(%s)", p.pgJSONBPath(col, path))
}
