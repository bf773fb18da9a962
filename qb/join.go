package qb

import "github.com/Serajian/go-query-builder/dialect"

// appendJoin appends one JoinRecord to joins. An empty on-string is treated
// as "intentionally no constraint" only for CROSS JOIN; other kinds with an
// empty on still render without an ON clause (a caller error at the SQL
// level, not something this library validates — matching spec §1's "does
// not validate column or table existence").
func appendJoin(joins *[]JoinRecord, kind dialect.JoinKind, table, alias, on string) {
	*joins = append(*joins, JoinRecord{
		Kind:          kind,
		Source:        JoinSource{Table: table, Alias: alias},
		Constraint:    on,
		HasConstraint: on != "",
	})
}

func appendJoinSubquery(joins *[]JoinRecord, kind dialect.JoinKind, sub *SelectBuilder, alias, on string) {
	*joins = append(*joins, JoinRecord{
		Kind:          kind,
		Source:        JoinSource{Sub: sub, Alias: alias},
		Constraint:    on,
		HasConstraint: on != "",
	})
}

// InnerJoin appends an INNER JOIN against a table.
func (b *SelectBuilder) InnerJoin(table, alias, on string) *SelectBuilder {
	appendJoin(&b.state.Joins, dialect.InnerJoin, table, alias, on)
	return b
}

// LeftJoin appends a LEFT JOIN.
func (b *SelectBuilder) LeftJoin(table, alias, on string) *SelectBuilder {
	appendJoin(&b.state.Joins, dialect.LeftJoin, table, alias, on)
	return b
}

// RightJoin appends a RIGHT JOIN.
func (b *SelectBuilder) RightJoin(table, alias, on string) *SelectBuilder {
	appendJoin(&b.state.Joins, dialect.RightJoin, table, alias, on)
	return b
}

// FullJoin appends a FULL OUTER JOIN.
func (b *SelectBuilder) FullJoin(table, alias, on string) *SelectBuilder {
	appendJoin(&b.state.Joins, dialect.FullOuterJoin, table, alias, on)
	return b
}

// CrossJoin appends a CROSS JOIN (no ON clause).
func (b *SelectBuilder) CrossJoin(table, alias string) *SelectBuilder {
	appendJoin(&b.state.Joins, dialect.CrossJoin, table, alias, "")
	return b
}

// JoinSubquery appends a join whose right-hand side is a derived table.
func (b *SelectBuilder) JoinSubquery(kind dialect.JoinKind, sub *SelectBuilder, alias, on string) *SelectBuilder {
	appendJoinSubquery(&b.state.Joins, kind, sub, alias, on)
	return b
}

// InnerJoin appends an INNER JOIN to an UPDATE statement (MySQL-family only;
// suppressed entirely for PostgreSQL/SQLite per dialect policy).
func (u *UpdateBuilder) InnerJoin(table, alias, on string) *UpdateBuilder {
	appendJoin(&u.state.Joins, dialect.InnerJoin, table, alias, on)
	return u
}

// LeftJoin appends a LEFT JOIN to an UPDATE statement.
func (u *UpdateBuilder) LeftJoin(table, alias, on string) *UpdateBuilder {
	appendJoin(&u.state.Joins, dialect.LeftJoin, table, alias, on)
	return u
}

// InnerJoin appends an INNER JOIN to a DELETE statement.
func (d *DeleteBuilder) InnerJoin(table, alias, on string) *DeleteBuilder {
	appendJoin(&d.state.Joins, dialect.InnerJoin, table, alias, on)
	return d
}

// LeftJoin appends a LEFT JOIN to a DELETE statement.
func (d *DeleteBuilder) LeftJoin(table, alias, on string) *DeleteBuilder {
	appendJoin(&d.state.Joins, dialect.LeftJoin, table, alias, on)
	return d
}
