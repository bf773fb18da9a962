package qb

import "time"

// DeleteBuilder accumulates a DELETE statement's state (spec §3
// DeleteState, §6 DELETE surface).
type DeleteBuilder struct {
	state     *DeleteState
	coll      *Collector
	debug     bool
	lastDebug *DebugInfo
}

// Delete starts a DELETE statement.
func Delete() *DeleteBuilder {
	return &DeleteBuilder{state: &DeleteState{}, coll: NewCollector(false)}
}

func (d *DeleteBuilder) collector() *Collector { return d.coll }

// From sets the target table, optionally aliased.
func (d *DeleteBuilder) From(table string, alias ...string) *DeleteBuilder {
	d.state.Table = table
	if len(alias) > 0 {
		d.state.Alias = alias[0]
	}
	return d
}

// Where begins a WHERE condition.
func (d *DeleteBuilder) Where(field string, openBracket ...string) *Cond[*DeleteBuilder] {
	return startWhere[*DeleteBuilder](d, d.coll, field, closeBracketArg(openBracket))
}

// And continues the current WHERE chain with AND.
func (d *DeleteBuilder) And(field string, openBracket ...string) *Cond[*DeleteBuilder] {
	return startAnd[*DeleteBuilder](d, d.coll, field, closeBracketArg(openBracket))
}

// Or continues the current WHERE chain with OR.
func (d *DeleteBuilder) Or(field string, openBracket ...string) *Cond[*DeleteBuilder] {
	return startOr[*DeleteBuilder](d, d.coll, field, closeBracketArg(openBracket))
}

// WhereJSON begins a JSON WHERE condition.
func (d *DeleteBuilder) WhereJSON(column string, openBracket ...string) *JSONCond[*DeleteBuilder] {
	return startWhereJSON[*DeleteBuilder](d, d.coll, column, closeBracketArg(openBracket))
}

// AndJSON continues with a JSON condition joined by AND.
func (d *DeleteBuilder) AndJSON(column string, openBracket ...string) *JSONCond[*DeleteBuilder] {
	return startAndJSON[*DeleteBuilder](d, d.coll, column, closeBracketArg(openBracket))
}

// OrJSON continues with a JSON condition joined by OR.
func (d *DeleteBuilder) OrJSON(column string, openBracket ...string) *JSONCond[*DeleteBuilder] {
	return startOrJSON[*DeleteBuilder](d, d.coll, column, closeBracketArg(openBracket))
}

// Exists appends a top-level EXISTS condition.
func (d *DeleteBuilder) Exists(sub *SelectBuilder, openBracket ...string) *DeleteBuilder {
	return startExists[*DeleteBuilder](d, d.coll, closeBracketArg(openBracket)).Exists(sub)
}

// NotExists appends a top-level NOT EXISTS condition.
func (d *DeleteBuilder) NotExists(sub *SelectBuilder, openBracket ...string) *DeleteBuilder {
	return startExists[*DeleteBuilder](d, d.coll, closeBracketArg(openBracket)).NotExists(sub)
}

// Limit sets LIMIT rows. DELETE has no OFFSET field at all (spec §3).
func (d *DeleteBuilder) Limit(rows int) *DeleteBuilder {
	d.state.Limit = &rows
	return d
}

// Debug enables capture of the next compile's DebugInfo.
func (d *DeleteBuilder) Debug() *DeleteBuilder {
	d.debug = true
	return d
}

// LastDebugInfo returns the DebugInfo captured by the most recent Sql call.
func (d *DeleteBuilder) LastDebugInfo() *DebugInfo { return d.lastDebug }

// Sql compiles the statement for dialectName (spec §6).
func (d *DeleteBuilder) Sql(dialectName string, prepared bool, version ...string) (Result, error) {
	start := time.Now()
	strat, resolved, err := resolveStrategy(dialectName, version...)
	if err != nil {
		return Result{}, err
	}
	sql, bindings, err := compileDeleteState(d.state, d.coll, strat, prepared)
	if err != nil {
		return Result{}, err
	}
	res := Result{SQL: sql, Bindings: bindings, Dialect: resolved}
	if d.debug {
		d.lastDebug = &DebugInfo{SQL: sql, Bindings: bindings, Dialect: resolved, Duration: time.Since(start)}
	}
	return res, nil
}
