package qb

import (
	"errors"
	"strings"
	"time"

	"github.com/Serajian/go-query-builder/dialect"
)

// Result is the prepared-mode return shape (spec §6): SQL carries only '?'
// positional placeholders, Bindings is the aligned ordered vector, Dialect
// echoes the resolved dialect name.
type Result struct {
	SQL      string
	Bindings []interface{}
	Dialect  string
}

// DebugInfo captures one compile's shape for post-hoc inspection via
// Debug()/LastDebugInfo() (§C SUPPLEMENTED FEATURES, grounded on
// omarhamdy49-go-query-builder's SQLCompiler.Debug()). It changes no
// compiled SQL; it is pure observability.
type DebugInfo struct {
	SQL      string
	Bindings []interface{}
	Dialect  string
	Duration time.Duration
}

// resolveStrategy parses the dialect name and resolves a Strategy from the
// process-wide registry, honoring an optional version string.
func resolveStrategy(dialectName string, version ...string) (dialect.Strategy, string, error) {
	name, err := dialect.Parse(dialectName)
	if err != nil {
		return nil, "", newError(InvalidConfig, "%s", err.Error())
	}
	v := ""
	if len(version) > 0 {
		v = version[0]
	}
	if v == "" {
		v = dialect.DefaultVersion(name)
	}
	return dialect.Default.Resolve(name, v), string(name), nil
}

// finish is the shared tail of every statement compile: splice any
// subquery-bound values ("?" whose binding is itself a *SelectBuilder) into
// "(sub-sql)" with their own bindings spliced in-place (spec §4.6 Placeholder
// Replacer, testable property 8), collapse whitespace, and — for raw mode —
// inline every remaining binding as a literal.
func finish(sql string, bindings []interface{}, strat dialect.Strategy, stmt dialect.StatementKind, prepared bool) (string, []interface{}, error) {
	sql, bindings, err := replaceSubqueries(sql, bindings, strat)
	if err != nil {
		return "", nil, err
	}
	sql = collapseWhitespace(sql)
	if prepared {
		logger.Debugw("qb compile finished", "prepared", true, "sqlLen", len(sql), "bindings", len(bindings))
		if LogFullSQL {
			logger.Debugw("qb compiled sql", "sql", sql)
		}
		return sql, bindings, nil
	}
	out, err := replaceAll(sql, bindings, strat, stmt)
	if err != nil {
		kind := "Unknown"
		var qerr *Error
		if errors.As(err, &qerr) {
			kind = qerr.Kind().String()
		}
		logger.Warnw("qb compile failed during raw substitution", "kind", kind)
		return "", nil, err
	}
	logger.Debugw("qb compile finished", "prepared", false, "sqlLen", len(out))
	if LogFullSQL {
		logger.Debugw("qb compiled sql", "sql", out)
	}
	return out, nil, nil
}

// compileSelectState renders a SelectState against collector into SQL,
// following the clause order and binding-group order of spec §4.2/§3.
func compileSelectState(state *SelectState, collector *Collector, strat dialect.Strategy, prepared bool) (string, []interface{}, error) {
	if err := validateBrackets(collector.Where(), collector.Having()); err != nil {
		return "", nil, err
	}
	if state.From.Table == "" && state.From.Sub == nil {
		return "", nil, newError(InvalidConfig, "select: missing FROM target")
	}

	var sql strings.Builder
	var bindings []interface{}

	cteSQL, cteBindings, err := buildCTEHeader(state.CTEs, strat)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(cteSQL)
	bindings = append(bindings, cteBindings...)

	selectSQL, selectSubBindings, err := buildSelectClause(state, strat)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(selectSQL)
	bindings = append(bindings, selectSubBindings...)

	fromSQL, fromBindings, err := buildFromClause(state.From, strat)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(fromSQL)
	bindings = append(bindings, fromBindings...)

	joinSQL, joinBindings, err := buildJoins(state.Joins, strat, dialect.StatementSelect)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(joinSQL)
	bindings = append(bindings, joinBindings...)

	whereSQL, whereBindings, err := renderConditionList(collector.Where(), collector.WhereBindings(), strat, dialect.StatementSelect)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(whereSQL)
	bindings = append(bindings, whereBindings...)

	sql.WriteString(buildGroupBy(state.GroupBy, strat))

	if len(collector.Having()) > 0 {
		havingSQL, havingBindings, err := renderConditionList(collector.Having(), collector.HavingBindings(), strat, dialect.StatementSelect)
		if err != nil {
			return "", nil, err
		}
		sql.WriteString(" HAVING ")
		sql.WriteString(havingSQL)
		bindings = append(bindings, havingBindings...)
	}

	unionSQL, unionBindings, err := buildUnions(state.Unions, strat)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(unionSQL)
	bindings = append(bindings, unionBindings...)

	sql.WriteString(buildNamedWindowClause(state.NamedWindows, strat))
	sql.WriteString(buildOrderBy(state.OrderBy, strat, dialect.StatementSelect))
	sql.WriteString(buildLimitOffset(state.Limit, state.Offset, strat, dialect.StatementSelect))

	return finish(sql.String(), bindings, strat, dialect.StatementSelect, prepared)
}

// compileInsertState renders an InsertState.
func compileInsertState(state *InsertState, strat dialect.Strategy, prepared bool) (string, []interface{}, error) {
	if state.Table == "" {
		return "", nil, newError(InvalidConfig, "insert: missing target table")
	}
	if state.SelectQuery == nil && len(state.ValueRows) == 0 {
		return "", nil, newError(InvalidConfig, "insert: no value rows or select query provided")
	}
	for _, row := range state.ValueRows {
		if len(row) != len(state.Fields) {
			return "", nil, newError(InvalidConfig, "insert: value row has %d values, expected %d fields", len(row), len(state.Fields))
		}
	}

	var sql strings.Builder
	var bindings []interface{}

	switch {
	case state.Replace:
		sql.WriteString("REPLACE INTO ")
	case state.OrIgnore:
		sql.WriteString("INSERT IGNORE INTO ")
	default:
		sql.WriteString("INSERT INTO ")
	}
	sql.WriteString(strat.QuoteIdentifier(state.Table))

	quotedFields := make([]string, len(state.Fields))
	for i, f := range state.Fields {
		quotedFields[i] = strat.QuoteIdentifier(f)
	}
	sql.WriteString(" (")
	sql.WriteString(strings.Join(quotedFields, ", "))
	sql.WriteString(")")

	if state.SelectQuery != nil {
		subSQL, subBindings, err := state.SelectQuery.compile(strat, true)
		if err != nil {
			return "", nil, err
		}
		sql.WriteString(" ")
		sql.WriteString(subSQL)
		bindings = append(bindings, subBindings...)
	} else {
		sql.WriteString(" VALUES ")
		rows := make([]string, len(state.ValueRows))
		for i, row := range state.ValueRows {
			placeholders := make([]string, len(row))
			for j, v := range row {
				if expr, ok := v.(Expression); ok {
					placeholders[j] = expr.Text()
					continue
				}
				bindings = append(bindings, v)
				placeholders[j] = "?"
			}
			rows[i] = "(" + strings.Join(placeholders, ", ") + ")"
		}
		sql.WriteString(strings.Join(rows, ", "))
	}

	if len(state.OnDuplicateKeyUpdate) > 0 {
		sql.WriteString(" ON DUPLICATE KEY UPDATE ")
		assigns := make([]string, len(state.OnDuplicateKeyUpdate))
		for i, kv := range state.OnDuplicateKeyUpdate {
			assigns[i] = renderAssignment(kv, strat, &bindings)
		}
		sql.WriteString(strings.Join(assigns, ", "))
	}

	if len(state.OnConflictColumns) > 0 {
		quoted := make([]string, len(state.OnConflictColumns))
		for i, c := range state.OnConflictColumns {
			quoted[i] = strat.QuoteIdentifier(c)
		}
		sql.WriteString(" ON CONFLICT (")
		sql.WriteString(strings.Join(quoted, ", "))
		sql.WriteString(") ")
		switch {
		case state.DoNothing:
			sql.WriteString("DO NOTHING")
		case len(state.DoUpdateFields) > 0:
			sql.WriteString("DO UPDATE SET ")
			assigns := make([]string, len(state.DoUpdateFields))
			for i, kv := range state.DoUpdateFields {
				assigns[i] = renderAssignment(kv, strat, &bindings)
			}
			sql.WriteString(strings.Join(assigns, ", "))
		}
	}

	return finish(sql.String(), bindings, strat, dialect.StatementInsert, prepared)
}

// renderAssignment renders one "col = ?" / "col = <expr>" SET assignment,
// pushing a binding unless the value is a raw Expression.
func renderAssignment(kv KV, strat dialect.Strategy, bindings *[]interface{}) string {
	col := strat.QuoteIdentifier(kv.Field)
	if expr, ok := kv.Value.(Expression); ok {
		return col + " = " + expr.Text()
	}
	*bindings = append(*bindings, kv.Value)
	return col + " = ?"
}

// compileUpdateState renders an UpdateState.
func compileUpdateState(state *UpdateState, collector *Collector, strat dialect.Strategy, prepared bool) (string, []interface{}, error) {
	if err := validateBrackets(collector.Where(), nil); err != nil {
		return "", nil, err
	}
	if state.Table == "" {
		return "", nil, newError(InvalidConfig, "update: missing target table")
	}
	if len(state.SetData) == 0 {
		return "", nil, newError(InvalidConfig, "update: no SET assignments provided")
	}

	var sql strings.Builder
	var bindings []interface{}

	sql.WriteString("UPDATE ")
	if state.Ignore {
		sql.WriteString("IGNORE ")
	}
	sql.WriteString(strat.QuoteIdentifier(state.Table))
	if state.Alias != "" {
		sql.WriteString(" ")
		sql.WriteString(strat.QuoteIdentifier(state.Alias))
	}

	joinSQL, joinBindings, err := buildJoins(state.Joins, strat, dialect.StatementUpdate)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(joinSQL)
	bindings = append(bindings, joinBindings...)

	sql.WriteString(" SET ")
	assigns := make([]string, len(state.SetData))
	for i, kv := range state.SetData {
		if sub, ok := kv.Value.(*SelectBuilder); ok {
			subSQL, subBindings, err := sub.compile(strat, true)
			if err != nil {
				return "", nil, err
			}
			assigns[i] = strat.QuoteIdentifier(kv.Field) + " = (" + subSQL + ")"
			bindings = append(bindings, subBindings...)
			continue
		}
		assigns[i] = renderAssignment(kv, strat, &bindings)
	}
	sql.WriteString(strings.Join(assigns, ", "))

	whereSQL, whereBindings, err := renderConditionList(collector.Where(), collector.WhereBindings(), strat, dialect.StatementUpdate)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(whereSQL)
	bindings = append(bindings, whereBindings...)

	sql.WriteString(buildOrderBy(state.OrderBy, strat, dialect.StatementUpdate))
	sql.WriteString(buildLimitOffset(state.Limit, nil, strat, dialect.StatementUpdate))

	return finish(sql.String(), bindings, strat, dialect.StatementUpdate, prepared)
}

// compileDeleteState renders a DeleteState.
func compileDeleteState(state *DeleteState, collector *Collector, strat dialect.Strategy, prepared bool) (string, []interface{}, error) {
	if err := validateBrackets(collector.Where(), nil); err != nil {
		return "", nil, err
	}
	if state.Table == "" {
		return "", nil, newError(InvalidConfig, "delete: missing target table")
	}

	var sql strings.Builder
	var bindings []interface{}

	sql.WriteString("DELETE FROM ")
	sql.WriteString(strat.QuoteIdentifier(state.Table))
	if state.Alias != "" {
		sql.WriteString(" ")
		sql.WriteString(strat.QuoteIdentifier(state.Alias))
	}

	joinSQL, joinBindings, err := buildJoins(state.Joins, strat, dialect.StatementDelete)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(joinSQL)
	bindings = append(bindings, joinBindings...)

	whereSQL, whereBindings, err := renderConditionList(collector.Where(), collector.WhereBindings(), strat, dialect.StatementDelete)
	if err != nil {
		return "", nil, err
	}
	sql.WriteString(whereSQL)
	bindings = append(bindings, whereBindings...)

	sql.WriteString(buildOrderBy(state.OrderBy, strat, dialect.StatementDelete))
	sql.WriteString(buildLimitOffset(state.Limit, nil, strat, dialect.StatementDelete))

	return finish(sql.String(), bindings, strat, dialect.StatementDelete, prepared)
}
