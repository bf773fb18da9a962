package qb

import (
	"time"

	"github.com/Serajian/go-query-builder/dialect"
)

// SelectBuilder accumulates a SELECT statement's state through a fluent
// chain and compiles it against a chosen dialect (spec §3 SelectState, §6
// SELECT surface).
type SelectBuilder struct {
	state     *SelectState
	coll      *Collector
	debug     bool
	lastDebug *DebugInfo
}

// Select starts a SELECT statement projecting fields (joined verbatim, so a
// caller can pass "*", "id, name", or a pre-quoted expression list — this
// library does not parse or validate projection text).
func Select(fields string) *SelectBuilder {
	state := newSelectState()
	if fields != "" {
		state.Fields = fields
	}
	return &SelectBuilder{state: state, coll: NewCollector(true)}
}

func (b *SelectBuilder) collector() *Collector { return b.coll }

// Distinct marks the statement SELECT DISTINCT.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.state.Distinct = true
	return b
}

// From sets the FROM target to a bare table, optionally aliased.
func (b *SelectBuilder) From(table string, alias ...string) *SelectBuilder {
	b.state.From = FromSource{Table: table}
	if len(alias) > 0 {
		b.state.From.Alias = alias[0]
	}
	return b
}

// FromSubquery sets the FROM target to a derived table.
func (b *SelectBuilder) FromSubquery(sub *SelectBuilder, alias string) *SelectBuilder {
	b.state.From = FromSource{Sub: sub, SubAlias: alias}
	return b
}

// SelectSubquery projects an additional `(sub) AS alias` column.
func (b *SelectBuilder) SelectSubquery(sub *SelectBuilder, alias string) *SelectBuilder {
	b.state.SelectSubqueries = append(b.state.SelectSubqueries, SelectSubqueryRecord{Alias: alias, Sub: sub})
	return b
}

// Where begins a WHERE condition on field (spec §4.1).
func (b *SelectBuilder) Where(field string, openBracket ...string) *Cond[*SelectBuilder] {
	return startWhere[*SelectBuilder](b, b.coll, field, closeBracketArg(openBracket))
}

// And continues the current condition chain with AND (or HAVING AND, if a
// HAVING condition is active).
func (b *SelectBuilder) And(field string, openBracket ...string) *Cond[*SelectBuilder] {
	return startAnd[*SelectBuilder](b, b.coll, field, closeBracketArg(openBracket))
}

// Or continues the current condition chain with OR.
func (b *SelectBuilder) Or(field string, openBracket ...string) *Cond[*SelectBuilder] {
	return startOr[*SelectBuilder](b, b.coll, field, closeBracketArg(openBracket))
}

// WhereJSON begins a JSON condition on column.
func (b *SelectBuilder) WhereJSON(column string, openBracket ...string) *JSONCond[*SelectBuilder] {
	return startWhereJSON[*SelectBuilder](b, b.coll, column, closeBracketArg(openBracket))
}

// AndJSON continues with a JSON condition joined by AND.
func (b *SelectBuilder) AndJSON(column string, openBracket ...string) *JSONCond[*SelectBuilder] {
	return startAndJSON[*SelectBuilder](b, b.coll, column, closeBracketArg(openBracket))
}

// OrJSON continues with a JSON condition joined by OR.
func (b *SelectBuilder) OrJSON(column string, openBracket ...string) *JSONCond[*SelectBuilder] {
	return startOrJSON[*SelectBuilder](b, b.coll, column, closeBracketArg(openBracket))
}

// Having begins (or continues, via implicit AND) a HAVING condition.
func (b *SelectBuilder) Having(expr string, openBracket ...string) *Cond[*SelectBuilder] {
	return startHaving[*SelectBuilder](b, b.coll, expr, closeBracketArg(openBracket))
}

// HavingJSON begins a JSON HAVING condition.
func (b *SelectBuilder) HavingJSON(column string, openBracket ...string) *JSONCond[*SelectBuilder] {
	return startHavingJSON[*SelectBuilder](b, b.coll, column, closeBracketArg(openBracket))
}

// Exists appends a top-level EXISTS condition.
func (b *SelectBuilder) Exists(sub *SelectBuilder, openBracket ...string) *SelectBuilder {
	return startExists[*SelectBuilder](b, b.coll, closeBracketArg(openBracket)).Exists(sub)
}

// NotExists appends a top-level NOT EXISTS condition.
func (b *SelectBuilder) NotExists(sub *SelectBuilder, openBracket ...string) *SelectBuilder {
	return startExists[*SelectBuilder](b, b.coll, closeBracketArg(openBracket)).NotExists(sub)
}

// GroupBy appends one or more GROUP BY columns.
func (b *SelectBuilder) GroupBy(cols ...string) *SelectBuilder {
	b.state.GroupBy = append(b.state.GroupBy, cols...)
	return b
}

// OrderBy appends one ORDER BY entry.
func (b *SelectBuilder) OrderBy(column, direction string) *SelectBuilder {
	b.state.OrderBy = append(b.state.OrderBy, OrderItem{Column: column, Direction: direction})
	return b
}

// Limit sets LIMIT rows, with an optional OFFSET.
func (b *SelectBuilder) Limit(rows int, offset ...int) *SelectBuilder {
	b.state.Limit = &rows
	if len(offset) > 0 {
		b.state.Offset = &offset[0]
	}
	return b
}

// Union appends a UNION branch.
func (b *SelectBuilder) Union(other *SelectBuilder) *SelectBuilder {
	b.state.Unions = append(b.state.Unions, UnionBranch{Sub: other})
	return b
}

// UnionAll appends a UNION ALL branch.
func (b *SelectBuilder) UnionAll(other *SelectBuilder) *SelectBuilder {
	b.state.Unions = append(b.state.Unions, UnionBranch{All: true, Sub: other})
	return b
}

// With appends a non-recursive CTE.
func (b *SelectBuilder) With(name string, sub *SelectBuilder) *SelectBuilder {
	b.state.CTEs = append(b.state.CTEs, CTERecord{Name: name, Sub: sub})
	return b
}

// WithRecursive appends a recursive CTE; its presence flips RECURSIVE on
// for the whole WITH preamble.
func (b *SelectBuilder) WithRecursive(name string, sub *SelectBuilder) *SelectBuilder {
	b.state.CTEs = append(b.state.CTEs, CTERecord{Name: name, Sub: sub, Recursive: true})
	return b
}

// SelectWindow projects an inline window function fn(...) OVER (spec).
func (b *SelectBuilder) SelectWindow(fnExpr string, spec *WindowSpec, alias string) *SelectBuilder {
	b.state.WindowCalls = append(b.state.WindowCalls, WindowCall{FnExpr: fnExpr, Alias: alias, Spec: spec})
	return b
}

// Window registers a named window for later reference via SelectWindowRef,
// rendered in a trailing WINDOW clause.
func (b *SelectBuilder) Window(name string, spec *WindowSpec) *SelectBuilder {
	b.state.NamedWindows = append(b.state.NamedWindows, NamedWindowRecord{Name: name, Spec: spec})
	return b
}

// SelectWindowRef projects a window function referencing a named window.
func (b *SelectBuilder) SelectWindowRef(fnExpr, windowName, alias string) *SelectBuilder {
	b.state.WindowCalls = append(b.state.WindowCalls, WindowCall{FnExpr: fnExpr, Alias: alias, Ref: windowName})
	return b
}

// Debug enables capture of the next compile's DebugInfo, readable via
// LastDebugInfo after Sql returns.
func (b *SelectBuilder) Debug() *SelectBuilder {
	b.debug = true
	return b
}

// LastDebugInfo returns the DebugInfo captured by the most recent Sql call
// after Debug() was enabled, or nil if none was captured.
func (b *SelectBuilder) LastDebugInfo() *DebugInfo { return b.lastDebug }

// compile renders this builder's state against strat without dialect-name
// lookup, for use by clause/format code embedding this SELECT as a
// subquery. It never touches b.lastDebug.
func (b *SelectBuilder) compile(strat dialect.Strategy, prepared bool) (string, []interface{}, error) {
	return compileSelectState(b.state, b.coll, strat, prepared)
}

// Sql compiles the statement for dialect (case-insensitive; an optional
// version string narrows Builder Registry override resolution). Prepared
// output returns '?' placeholders and an aligned binding vector; raw output
// inlines every value as a dialect-escaped, injection-validated literal.
func (b *SelectBuilder) Sql(dialectName string, prepared bool, version ...string) (Result, error) {
	start := time.Now()
	strat, resolved, err := resolveStrategy(dialectName, version...)
	if err != nil {
		return Result{}, err
	}
	sql, bindings, err := b.compile(strat, prepared)
	if err != nil {
		return Result{}, err
	}
	res := Result{SQL: sql, Bindings: bindings, Dialect: resolved}
	if b.debug {
		b.lastDebug = &DebugInfo{SQL: sql, Bindings: bindings, Dialect: resolved, Duration: time.Since(start)}
	}
	return res, nil
}
