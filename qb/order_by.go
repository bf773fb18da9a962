package qb

// OrderBy appends one ORDER BY entry to an UPDATE statement. Suppressed at
// render time for PostgreSQL/SQLite (dialect policy), never mutating state.
func (u *UpdateBuilder) OrderBy(column, direction string) *UpdateBuilder {
	u.state.OrderBy = append(u.state.OrderBy, OrderItem{Column: column, Direction: direction})
	return u
}

// OrderBy appends one ORDER BY entry to a DELETE statement.
func (d *DeleteBuilder) OrderBy(column, direction string) *DeleteBuilder {
	d.state.OrderBy = append(d.state.OrderBy, OrderItem{Column: column, Direction: direction})
	return d
}
