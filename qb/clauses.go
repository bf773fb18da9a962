package qb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Serajian/go-query-builder/dialect"
)

// buildCTEHeader renders the `WITH [RECURSIVE ]name AS (sub)[, ...]`
// preamble and returns the concatenated sub-bindings in CTE order (spec
// §3 invariant 3: "within each CTE, sub-bindings precede outer ones").
// RECURSIVE appears iff any entry is recursive (spec §6).
func buildCTEHeader(ctes []CTERecord, strat dialect.Strategy) (string, []interface{}, error) {
	if len(ctes) == 0 {
		return "", nil, nil
	}
	recursive := false
	parts := make([]string, 0, len(ctes))
	var bindings []interface{}
	for _, cte := range ctes {
		if cte.Recursive {
			recursive = true
		}
		subSQL, subBindings, err := cte.Sub.compile(strat, true)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, fmt.Sprintf("%s AS (%s)", strat.QuoteIdentifier(cte.Name), subSQL))
		bindings = append(bindings, subBindings...)
	}
	kw := "WITH "
	if recursive {
		kw = "WITH RECURSIVE "
	}
	return kw + strings.Join(parts, ", ") + " ", bindings, nil
}

// buildSelectClause renders "SELECT [DISTINCT ]fields[, (sub) AS alias, ...]"
// and returns the select-subqueries' bindings in declaration order.
func buildSelectClause(state *SelectState, strat dialect.Strategy) (string, []interface{}, error) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if state.Distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(state.Fields)

	var bindings []interface{}
	for _, sq := range state.SelectSubqueries {
		subSQL, subBindings, err := sq.Sub.compile(strat, true)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(", (")
		b.WriteString(subSQL)
		b.WriteString(") AS ")
		b.WriteString(strat.QuoteIdentifier(sq.Alias))
		bindings = append(bindings, subBindings...)
	}
	for _, w := range state.WindowCalls {
		b.WriteString(", ")
		b.WriteString(renderWindowCall(w, strat))
	}
	return b.String(), bindings, nil
}

// buildFromClause renders "FROM target[ alias]" for a table or subquery
// source and returns the subquery's bindings, if any.
func buildFromClause(from FromSource, strat dialect.Strategy) (string, []interface{}, error) {
	if from.Sub != nil {
		subSQL, subBindings, err := from.Sub.compile(strat, true)
		if err != nil {
			return "", nil, err
		}
		sql := fmt.Sprintf(" FROM (%s) AS %s", subSQL, strat.QuoteIdentifier(from.SubAlias))
		return sql, subBindings, nil
	}
	sql := " FROM " + strat.QuoteIdentifier(from.Table)
	if from.Alias != "" {
		sql += " " + strat.QuoteIdentifier(from.Alias)
	}
	return sql, nil, nil
}

// buildJoins renders the ordered JOIN list, suppressing kinds the dialect
// skips for this statement kind and suppressing every join at all when the
// dialect doesn't support JOIN for this statement kind.
func buildJoins(joins []JoinRecord, strat dialect.Strategy, stmt dialect.StatementKind) (string, []interface{}, error) {
	if !strat.SupportsOrderByLimitJoin(stmt) || len(joins) == 0 {
		return "", nil, nil
	}
	var b strings.Builder
	var bindings []interface{}
	for _, j := range joins {
		if strat.SkipJoinKind(j.Kind, stmt) {
			continue
		}
		b.WriteString(" ")
		b.WriteString(string(j.Kind))
		b.WriteString(" ")
		if j.Source.Sub != nil {
			subSQL, subBindings, err := j.Source.Sub.compile(strat, true)
			if err != nil {
				return "", nil, err
			}
			b.WriteString("(")
			b.WriteString(subSQL)
			b.WriteString(") AS ")
			b.WriteString(strat.QuoteIdentifier(j.Source.Alias))
			bindings = append(bindings, subBindings...)
		} else {
			b.WriteString(strat.QuoteIdentifier(j.Source.Table))
			if j.Source.Alias != "" {
				b.WriteString(" ")
				b.WriteString(strat.QuoteIdentifier(j.Source.Alias))
			}
		}
		if j.HasConstraint && j.Constraint != "" {
			b.WriteString(" ON ")
			b.WriteString(j.Constraint)
		}
	}
	return b.String(), bindings, nil
}

// renderConditionList walks an ordered WHERE/HAVING fragment list, rewriting
// JSON sentinels per fragment and interleaving EXISTS subquery bindings at
// the textual position their fragment occupies, so the returned binding
// slice lines up left-to-right with the '?'s in the returned text (spec §3
// invariant 1). scalarBindings is the flat vector of bindings pushed for
// ordinary (non-EXISTS) fragments, in fragment order.
func renderConditionList(fragments []Fragment, scalarBindings []interface{}, strat dialect.Strategy, stmt dialect.StatementKind) (string, []interface{}, error) {
	var b strings.Builder
	var bindings []interface{}
	idx := 0
	for _, f := range fragments {
		switch frag := f.(type) {
		case TextFragment:
			rewritten := rewriteJSONSentinels(string(frag), strat, stmt)
			n := strings.Count(rewritten, "?")
			if idx+n > len(scalarBindings) {
				return "", nil, newError(InvalidStructure, "condition fragment expects %d bindings but only %d remain", n, len(scalarBindings)-idx)
			}
			bindings = append(bindings, scalarBindings[idx:idx+n]...)
			idx += n
			b.WriteString(rewritten)
		case ExistsFragment:
			subSQL, subBindings, err := frag.Sub.compile(strat, true)
			if err != nil {
				return "", nil, err
			}
			b.WriteString(frag.Prefix)
			b.WriteString(subSQL)
			b.WriteString(frag.CloseBracket)
			bindings = append(bindings, subBindings...)
		}
	}
	return b.String(), bindings, nil
}

// buildGroupBy renders "GROUP BY col1, col2, ...".
func buildGroupBy(cols []string, strat dialect.Strategy) string {
	if len(cols) == 0 {
		return ""
	}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = strat.QuoteIdentifier(c)
	}
	return " GROUP BY " + strings.Join(quoted, ", ")
}

// buildOrderBy renders "ORDER BY col dir, ...", suppressed entirely when the
// dialect doesn't support ORDER BY for this statement kind.
func buildOrderBy(items []OrderItem, strat dialect.Strategy, stmt dialect.StatementKind) string {
	if len(items) == 0 || !strat.SupportsOrderByLimitJoin(stmt) {
		return ""
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = strat.QuoteIdentifier(it.Column) + " " + it.Direction
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// buildLimitOffset renders "LIMIT n[ OFFSET m]". OFFSET is emitted only when
// non-nil and > 0 (spec §9 open-question decision); never for UPDATE/DELETE,
// which have no Offset field at all. LIMIT/OFFSET are suppressed entirely
// when the dialect doesn't support them for this statement kind.
func buildLimitOffset(limit, offset *int, strat dialect.Strategy, stmt dialect.StatementKind) string {
	if limit == nil || !strat.SupportsOrderByLimitJoin(stmt) {
		return ""
	}
	sql := " LIMIT " + strconv.Itoa(*limit)
	if offset != nil && *offset > 0 {
		sql += " OFFSET " + strconv.Itoa(*offset)
	}
	return sql
}

// buildUnions renders each UNION/UNION ALL branch, in order, and returns
// their bindings concatenated in branch order.
func buildUnions(branches []UnionBranch, strat dialect.Strategy) (string, []interface{}, error) {
	var b strings.Builder
	var bindings []interface{}
	for _, u := range branches {
		subSQL, subBindings, err := u.Sub.compile(strat, true)
		if err != nil {
			return "", nil, err
		}
		if u.All {
			b.WriteString(" UNION ALL ")
		} else {
			b.WriteString(" UNION ")
		}
		b.WriteString(subSQL)
		bindings = append(bindings, subBindings...)
	}
	return b.String(), bindings, nil
}

// buildNamedWindowClause renders the trailing `WINDOW name AS (...)` clause
// for named windows, placed after UNION and before ORDER BY per spec §6.
// Inline window functions are rendered into the projection by
// buildSelectClause via renderWindowCall, not here.
func buildNamedWindowClause(named []NamedWindowRecord, strat dialect.Strategy) string {
	if len(named) == 0 {
		return ""
	}
	parts := make([]string, len(named))
	for i, nw := range named {
		parts[i] = strat.QuoteIdentifier(nw.Name) + " AS (" + renderWindowSpec(nw.Spec, strat) + ")"
	}
	return " WINDOW " + strings.Join(parts, ", ")
}

func renderWindowSpec(spec *WindowSpec, strat dialect.Strategy) string {
	if spec == nil {
		return ""
	}
	var parts []string
	if len(spec.Partitions) > 0 {
		cols := make([]string, len(spec.Partitions))
		for i, c := range spec.Partitions {
			cols[i] = strat.QuoteIdentifier(c)
		}
		parts = append(parts, "PARTITION BY "+strings.Join(cols, ", "))
	}
	if len(spec.Orders) > 0 {
		items := make([]string, len(spec.Orders))
		for i, it := range spec.Orders {
			items[i] = strat.QuoteIdentifier(it.Column) + " " + it.Direction
		}
		parts = append(parts, "ORDER BY "+strings.Join(items, ", "))
	}
	if spec.Frame != nil {
		parts = append(parts, fmt.Sprintf("%s BETWEEN %s AND %s", spec.Frame.Unit, spec.Frame.Start, spec.Frame.End))
	}
	return strings.Join(parts, " ")
}

// renderWindowCall renders one projected window-function expression, either
// with its inline OVER (...) spec or a reference to a named window.
func renderWindowCall(w WindowCall, strat dialect.Strategy) string {
	if w.Ref != "" {
		return fmt.Sprintf("%s OVER %s AS %s", w.FnExpr, strat.QuoteIdentifier(w.Ref), strat.QuoteIdentifier(w.Alias))
	}
	return fmt.Sprintf("%s OVER (%s) AS %s", w.FnExpr, renderWindowSpec(w.Spec, strat), strat.QuoteIdentifier(w.Alias))
}

// collapseWhitespace folds runs of whitespace into single spaces and trims
// the ends, the final pass of every statement compile (spec §4.2 step 4).
func collapseWhitespace(sql string) string {
	fields := strings.Fields(sql)
	return strings.Join(fields, " ")
}
