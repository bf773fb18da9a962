package dialect

import (
	"fmt"
	"strings"
)

// mysqlStrategy renders MySQL and MariaDB SQL. MariaDB shares this strategy
// verbatim per spec §3 ("MariaDB is rendered identically to MySQL").
type mysqlStrategy struct{}

func (mysqlStrategy) Name() Name { return MySQL }

func (mysqlStrategy) QuoteIdentifier(raw string) string {
	return "`" + strings.ReplaceAll(raw, "`", "``") + "`"
}

func (mysqlStrategy) FormatBoolean(b bool, _ StatementKind) string {
	if b {
		return "1"
	}
	return "0"
}

func (mysqlStrategy) SkipJoinKind(kind JoinKind, _ StatementKind) bool {
	return kind == FullOuterJoin
}

func (mysqlStrategy) SupportsOrderByLimitJoin(_ StatementKind) bool { return true }

func (mysqlStrategy) JSONExtract(col, path string) string {
	return fmt.Sprintf("JSON_EXTRACT(%s, '%s')", mysqlQuoteCol(col), path)
}

func (mysqlStrategy) JSONContains(col, valuePlaceholder, path string, _ StatementKind) string {
	if path == "" {
		return fmt.Sprintf("JSON_CONTAINS(%s, CAST(%s AS JSON))", mysqlQuoteCol(col), valuePlaceholder)
	}
	return fmt.Sprintf("JSON_CONTAINS(%s, CAST(%s AS JSON), '%s')", mysqlQuoteCol(col), valuePlaceholder, path)
}

func (s mysqlStrategy) JSONNotContains(col, valuePlaceholder, path string, stmt StatementKind) string {
	return "NOT ( " + s.JSONContains(col, valuePlaceholder, path, stmt) + " )"
}

func (mysqlStrategy) JSONLength(col, path string) string {
	if path == "" {
		return fmt.Sprintf("JSON_LENGTH(%s)", mysqlQuoteCol(col))
	}
	return fmt.Sprintf("JSON_LENGTH(%s, '%s')", mysqlQuoteCol(col), path)
}

func mysqlQuoteCol(col string) string {
	return (mysqlStrategy{}).QuoteIdentifier(col)
}
