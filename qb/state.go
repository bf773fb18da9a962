package qb

import "github.com/Serajian/go-query-builder/dialect"

// KV is one ordered field/value pair, used wherever the spec calls for an
// "ordered map" (INSERT value rows' field list, UPDATE SET data, ON
// DUPLICATE KEY UPDATE, ON CONFLICT DO UPDATE) — a plain slice preserves
// insertion order without reaching for a map type that would need a second
// side-channel to remember it.
type KV struct {
	Field string
	Value interface{}
}

// JoinSource is a JOIN's right-hand side: either a bare table name or a
// subquery builder, optionally aliased.
type JoinSource struct {
	Table string
	Sub   *SelectBuilder
	Alias string
}

// JoinRecord is one entry of a statement's ordered join list. Constraint is
// the raw text rendered after " ON "; HasConstraint records whether that text
// is non-empty. A record without one (a CROSS JOIN, or any join given an
// empty on-string) renders no ON clause.
type JoinRecord struct {
	Kind         dialect.JoinKind
	Source       JoinSource
	Constraint   string
	HasConstraint bool
}

// FromSource is a SELECT's FROM clause target: a table (optionally aliased)
// or a subquery builder (required alias).
type FromSource struct {
	Table    string
	Alias    string
	Sub      *SelectBuilder
	SubAlias string
}

// CTERecord is one entry of a SELECT's WITH preamble. The original spec
// models CTEs as two parallel ordered maps (ctes, cte_recursive); this
// keeps the same insertion-order-plus-per-entry-recursive-flag semantics
// in a single ordered slice instead, which is the idiomatic Go shape for
// "ordered map" and avoids the two maps ever disagreeing on key set.
type CTERecord struct {
	Name      string
	Sub       *SelectBuilder
	Recursive bool
}

// SelectSubqueryRecord is one entry of select_subqueries: a subquery
// rendered as `(sub) AS alias` inside the SELECT projection list.
type SelectSubqueryRecord struct {
	Alias string
	Sub   *SelectBuilder
}

// UnionBranch is one UNION/UNION ALL branch appended after the main body.
type UnionBranch struct {
	All bool
	Sub *SelectBuilder
}

// SelectState is the mutable, unordered intermediate representation behind
// a SelectBuilder (spec §3 "SelectState").
type SelectState struct {
	Fields   string
	Distinct bool

	From FromSource

	Joins []JoinRecord

	GroupBy []string

	OrderBy []OrderItem
	Limit   *int
	Offset  *int

	Unions []UnionBranch

	CTEs []CTERecord

	SelectSubqueries []SelectSubqueryRecord

	WindowCalls   []WindowCall
	NamedWindows  []NamedWindowRecord
}

func newSelectState() *SelectState {
	return &SelectState{Fields: "*"}
}

// InsertState is the mutable intermediate representation behind an
// InsertBuilder.
type InsertState struct {
	Table     string
	Fields    []string
	ValueRows [][]interface{}

	SelectQuery *SelectBuilder

	OrIgnore bool
	Replace  bool

	OnDuplicateKeyUpdate []KV
	OnConflictColumns    []string
	DoUpdateFields       []KV
	DoNothing            bool
}

// UpdateState is the mutable intermediate representation behind an
// UpdateBuilder. It has no Offset: UPDATE never takes one (spec §3).
type UpdateState struct {
	Table   string
	Alias   string
	SetData []KV
	Joins   []JoinRecord
	OrderBy []OrderItem
	Limit   *int
	Ignore  bool
}

// DeleteState is the mutable intermediate representation behind a
// DeleteBuilder. Like UpdateState, it has no Offset field at all.
type DeleteState struct {
	Table   string
	Alias   string
	Joins   []JoinRecord
	OrderBy []OrderItem
	Limit   *int
}
