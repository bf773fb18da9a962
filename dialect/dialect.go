// Package dialect declares the per-database rendering policy (identifier
// quoting, boolean literal shape, JSON expressions, clause suppression) that
// the qb compiler delegates to once a target database has been chosen.
package dialect

import (
	"strings"

	"github.com/pkg/errors"
)

// Name identifies one of the supported SQL dialect families.
type Name string

const (
	MySQL      Name = "mysql"
	MariaDB    Name = "mariadb"
	PostgreSQL Name = "postgres"
	SQLite     Name = "sqlite"
)

// ErrUnsupportedDialect is returned by Parse for any name outside the closed set.
var ErrUnsupportedDialect = errors.New("dialect: unsupported dialect name")

// Parse normalizes a caller-supplied dialect string (case-insensitive, with a
// handful of common aliases) into a recognized Name. MariaDB is kept as its
// own Name so the result can be echoed back to the caller, but
// Registry.Resolve always resolves it to the MySQL rendering policy.
func Parse(raw string) (Name, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mysql":
		return MySQL, nil
	case "mariadb":
		return MariaDB, nil
	case "postgres", "postgresql", "pgsql":
		return PostgreSQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedDialect, "%q", raw)
	}
}

// family collapses MariaDB into MySQL; every other Name maps to itself.
func (n Name) family() Name {
	if n == MariaDB {
		return MySQL
	}
	return n
}

// DefaultVersion returns the default version string tracked for a dialect.
func DefaultVersion(n Name) string {
	switch n.family() {
	case MySQL:
		return "8.0"
	case PostgreSQL:
		return "16"
	case SQLite:
		return "3.45"
	default:
		return ""
	}
}

// RecognizedVersions lists the versions a dialect is known to support. The
// list is informational: Registry.Resolve does not consult it, so an unknown
// version is accepted silently and resolves to a dialect-wide override or the
// base strategy.
func RecognizedVersions(n Name) []string {
	switch n.family() {
	case MySQL:
		return []string{"5.7", "8.0", "8.4"}
	case PostgreSQL:
		return []string{"13", "14", "15", "16"}
	case SQLite:
		return []string{"3.35", "3.40", "3.45"}
	default:
		return nil
	}
}

// JoinKind enumerates the SQL JOIN types the statement state can record.
type JoinKind string

const (
	InnerJoin     JoinKind = "INNER JOIN"
	LeftJoin      JoinKind = "LEFT JOIN"
	RightJoin     JoinKind = "RIGHT JOIN"
	FullOuterJoin JoinKind = "FULL OUTER JOIN"
	CrossJoin     JoinKind = "CROSS JOIN"
)

// StatementKind distinguishes the four statement shapes a Strategy must
// render differently (mainly for ORDER BY/LIMIT/JOIN suppression and the
// PostgreSQL JSON-contains shape, which differs between UPDATE and DELETE).
type StatementKind int

const (
	StatementSelect StatementKind = iota
	StatementInsert
	StatementUpdate
	StatementDelete
)

// Strategy is the per-dialect rendering policy (C9). Every method is pure
// and stateless; implementations are safe to share across goroutines and are
// memoized by Registry.
type Strategy interface {
	Name() Name

	// QuoteIdentifier quotes a bare identifier (table, alias, JSON column),
	// doubling any embedded quote character so repeated quoting is idempotent.
	QuoteIdentifier(raw string) string

	// FormatBoolean renders a boolean literal for the given statement kind.
	FormatBoolean(b bool, stmt StatementKind) string

	// SkipJoinKind reports whether a join of this kind is silently dropped
	// for this dialect and statement kind (e.g. FULL JOIN on MySQL, or any
	// join at all in a PostgreSQL/SQLite UPDATE/DELETE).
	SkipJoinKind(kind JoinKind, stmt StatementKind) bool

	// SupportsOrderByLimitJoin reports whether ORDER BY, LIMIT and JOIN are
	// rendered at all for the given statement kind (false for PostgreSQL and
	// SQLite UPDATE/DELETE).
	SupportsOrderByLimitJoin(stmt StatementKind) bool

	// JSONExtract renders a path extraction expression. col is already a
	// bare (unquoted) identifier; the implementation quotes it.
	JSONExtract(col, path string) string

	// JSONContains renders a "does this JSON column contain this value"
	// expression. valuePlaceholder is the already-rendered right-hand side
	// token; the qb compiler always passes "?" and, in raw mode, inlines the
	// bound value at that position afterwards.
	JSONContains(col, valuePlaceholder, path string, stmt StatementKind) string

	// JSONNotContains is the negated form; dialects may override the naive
	// "NOT (...)" wrapper.
	JSONNotContains(col, valuePlaceholder, path string, stmt StatementKind) string

	// JSONLength renders an array/object length expression.
	JSONLength(col, path string) string
}
