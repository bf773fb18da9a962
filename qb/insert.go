package qb

import (
	"time"
)

// InsertBuilder accumulates an INSERT statement's state (spec §3
// InsertState, §6 INSERT surface).
type InsertBuilder struct {
	state     *InsertState
	debug     bool
	lastDebug *DebugInfo
}

// Insert starts an INSERT statement targeting table.
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{state: &InsertState{Table: table}}
}

// Fields declares the ordered column list for Values rows.
func (b *InsertBuilder) Fields(fields ...string) *InsertBuilder {
	b.state.Fields = fields
	return b
}

// Values appends one value row. Its length must match Fields; a mismatch
// fails at compile time with InvalidConfig (spec §4.9).
func (b *InsertBuilder) Values(values ...interface{}) *InsertBuilder {
	row := make([]interface{}, len(values))
	copy(row, values)
	b.state.ValueRows = append(b.state.ValueRows, row)
	return b
}

// FromSelect sources the inserted rows from a SELECT instead of literal
// value rows.
func (b *InsertBuilder) FromSelect(sub *SelectBuilder) *InsertBuilder {
	b.state.SelectQuery = sub
	return b
}

// OrIgnore marks the statement INSERT IGNORE (MySQL-family).
func (b *InsertBuilder) OrIgnore() *InsertBuilder {
	b.state.OrIgnore = true
	return b
}

// Replace marks the statement REPLACE INTO (MySQL-family).
func (b *InsertBuilder) Replace() *InsertBuilder {
	b.state.Replace = true
	return b
}

// OnDuplicateKeyUpdate appends one field/value assignment for MySQL's
// ON DUPLICATE KEY UPDATE clause.
func (b *InsertBuilder) OnDuplicateKeyUpdate(field string, value interface{}) *InsertBuilder {
	b.state.OnDuplicateKeyUpdate = append(b.state.OnDuplicateKeyUpdate, KV{Field: field, Value: value})
	return b
}

// OnConflict declares the PostgreSQL/SQLite ON CONFLICT target columns.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.state.OnConflictColumns = columns
	return b
}

// DoNothing sets the ON CONFLICT action to DO NOTHING.
func (b *InsertBuilder) DoNothing() *InsertBuilder {
	b.state.DoNothing = true
	return b
}

// DoUpdate appends one field/value assignment for ON CONFLICT ... DO UPDATE.
func (b *InsertBuilder) DoUpdate(field string, value interface{}) *InsertBuilder {
	b.state.DoUpdateFields = append(b.state.DoUpdateFields, KV{Field: field, Value: value})
	return b
}

// Debug enables capture of the next compile's DebugInfo.
func (b *InsertBuilder) Debug() *InsertBuilder {
	b.debug = true
	return b
}

// LastDebugInfo returns the DebugInfo captured by the most recent Sql call.
func (b *InsertBuilder) LastDebugInfo() *DebugInfo { return b.lastDebug }

// Sql compiles the statement for dialectName (spec §6).
func (b *InsertBuilder) Sql(dialectName string, prepared bool, version ...string) (Result, error) {
	start := time.Now()
	strat, resolved, err := resolveStrategy(dialectName, version...)
	if err != nil {
		return Result{}, err
	}
	sql, bindings, err := compileInsertState(b.state, strat, prepared)
	if err != nil {
		return Result{}, err
	}
	res := Result{SQL: sql, Bindings: bindings, Dialect: resolved}
	if b.debug {
		b.lastDebug = &DebugInfo{SQL: sql, Bindings: bindings, Dialect: resolved, Duration: time.Since(start)}
	}
	return res, nil
}
