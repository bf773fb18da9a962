package qb

import "time"

// UpdateBuilder accumulates an UPDATE statement's state (spec §3
// UpdateState, §6 UPDATE surface). It implements conditionParent so the
// generic Cond/JSONCond continuations can hand control back to it.
type UpdateBuilder struct {
	state     *UpdateState
	coll      *Collector
	debug     bool
	lastDebug *DebugInfo
}

// Update starts an UPDATE statement targeting table.
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{state: &UpdateState{Table: table}, coll: NewCollector(false)}
}

func (u *UpdateBuilder) collector() *Collector { return u.coll }

// Alias sets the table alias.
func (u *UpdateBuilder) Alias(alias string) *UpdateBuilder {
	u.state.Alias = alias
	return u
}

// Set appends one column assignment. value may be a scalar, an Expression
// (rendered literally), or a *SelectBuilder (rendered as a scalar subquery).
func (u *UpdateBuilder) Set(field string, value interface{}) *UpdateBuilder {
	u.state.SetData = append(u.state.SetData, KV{Field: field, Value: value})
	return u
}

// Ignore marks the statement UPDATE IGNORE (MySQL-family).
func (u *UpdateBuilder) Ignore() *UpdateBuilder {
	u.state.Ignore = true
	return u
}

// Where begins a WHERE condition.
func (u *UpdateBuilder) Where(field string, openBracket ...string) *Cond[*UpdateBuilder] {
	return startWhere[*UpdateBuilder](u, u.coll, field, closeBracketArg(openBracket))
}

// And continues the current WHERE chain with AND.
func (u *UpdateBuilder) And(field string, openBracket ...string) *Cond[*UpdateBuilder] {
	return startAnd[*UpdateBuilder](u, u.coll, field, closeBracketArg(openBracket))
}

// Or continues the current WHERE chain with OR.
func (u *UpdateBuilder) Or(field string, openBracket ...string) *Cond[*UpdateBuilder] {
	return startOr[*UpdateBuilder](u, u.coll, field, closeBracketArg(openBracket))
}

// WhereJSON begins a JSON WHERE condition.
func (u *UpdateBuilder) WhereJSON(column string, openBracket ...string) *JSONCond[*UpdateBuilder] {
	return startWhereJSON[*UpdateBuilder](u, u.coll, column, closeBracketArg(openBracket))
}

// AndJSON continues with a JSON condition joined by AND.
func (u *UpdateBuilder) AndJSON(column string, openBracket ...string) *JSONCond[*UpdateBuilder] {
	return startAndJSON[*UpdateBuilder](u, u.coll, column, closeBracketArg(openBracket))
}

// OrJSON continues with a JSON condition joined by OR.
func (u *UpdateBuilder) OrJSON(column string, openBracket ...string) *JSONCond[*UpdateBuilder] {
	return startOrJSON[*UpdateBuilder](u, u.coll, column, closeBracketArg(openBracket))
}

// Exists appends a top-level EXISTS condition.
func (u *UpdateBuilder) Exists(sub *SelectBuilder, openBracket ...string) *UpdateBuilder {
	return startExists[*UpdateBuilder](u, u.coll, closeBracketArg(openBracket)).Exists(sub)
}

// NotExists appends a top-level NOT EXISTS condition.
func (u *UpdateBuilder) NotExists(sub *SelectBuilder, openBracket ...string) *UpdateBuilder {
	return startExists[*UpdateBuilder](u, u.coll, closeBracketArg(openBracket)).NotExists(sub)
}

// Limit sets LIMIT rows. UPDATE has no OFFSET field at all (spec §3).
func (u *UpdateBuilder) Limit(rows int) *UpdateBuilder {
	u.state.Limit = &rows
	return u
}

// Debug enables capture of the next compile's DebugInfo.
func (u *UpdateBuilder) Debug() *UpdateBuilder {
	u.debug = true
	return u
}

// LastDebugInfo returns the DebugInfo captured by the most recent Sql call.
func (u *UpdateBuilder) LastDebugInfo() *DebugInfo { return u.lastDebug }

// Sql compiles the statement for dialectName (spec §6).
func (u *UpdateBuilder) Sql(dialectName string, prepared bool, version ...string) (Result, error) {
	start := time.Now()
	strat, resolved, err := resolveStrategy(dialectName, version...)
	if err != nil {
		return Result{}, err
	}
	sql, bindings, err := compileUpdateState(u.state, u.coll, strat, prepared)
	if err != nil {
		return Result{}, err
	}
	res := Result{SQL: sql, Bindings: bindings, Dialect: resolved}
	if u.debug {
		u.lastDebug = &DebugInfo{SQL: sql, Bindings: bindings, Dialect: resolved, Duration: time.Since(start)}
	}
	return res, nil
}
