package dialect

import (
	"fmt"
	"strings"
)

// sqliteStrategy renders SQLite SQL.
type sqliteStrategy struct{}

func (sqliteStrategy) Name() Name { return SQLite }

func (sqliteStrategy) QuoteIdentifier(raw string) string {
	return "`" + strings.ReplaceAll(raw, "`", "``") + "`"
}

func (sqliteStrategy) FormatBoolean(b bool, _ StatementKind) string {
	if b {
		return "1"
	}
	return "0"
}

func (sqliteStrategy) SkipJoinKind(kind JoinKind, stmt StatementKind) bool {
	if stmt == StatementUpdate || stmt == StatementDelete {
		return true
	}
	return kind == FullOuterJoin || kind == RightJoin
}

func (sqliteStrategy) SupportsOrderByLimitJoin(stmt StatementKind) bool {
	return stmt != StatementUpdate && stmt != StatementDelete
}

func (s sqliteStrategy) JSONExtract(col, path string) string {
	return fmt.Sprintf("json_extract(%s, '%s')", s.QuoteIdentifier(col), path)
}

func (s sqliteStrategy) JSONContains(col, valuePlaceholder, path string, _ StatementKind) string {
	target := s.QuoteIdentifier(col)
	if path != "" {
		target = fmt.Sprintf("json_extract(%s, '%s')", target, path)
	}
	return fmt.Sprintf("%s LIKE '%%' || %s || '%%'", target, valuePlaceholder)
}

func (s sqliteStrategy) JSONNotContains(col, valuePlaceholder, path string, stmt StatementKind) string {
	return "NOT ( " + s.JSONContains(col, valuePlaceholder, path, stmt) + " )"
}

func (s sqliteStrategy) JSONLength(col, path string) string {
	if path == "" {
		return fmt.Sprintf("json_array_length(%s)", s.QuoteIdentifier(col))
	}
	return fmt.Sprintf("json_array_length(%s, '%s')", s.QuoteIdentifier(col), path)
}
