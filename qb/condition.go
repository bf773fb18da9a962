package qb

import (
	"fmt"
	"strings"
)

// conditionParent is implemented by every statement builder that exposes the
// condition DSL (SelectBuilder, UpdateBuilder, DeleteBuilder). It gives the
// generic Cond/JSONCond continuations a typed handle back to their owner so
// a fluent chain like Where(...).Equals(...).OrderBy(...) can keep going on
// the concrete builder type.
type conditionParent interface {
	collector() *Collector
}

// Cond is the continuation returned by Where/And/Or/Having (C2). It holds
// the scratch "currentCondition" text described in spec §4.1 until an
// operator method commits it as one fragment. P is the concrete statement
// builder type so operator methods can hand the chain back to it.
type Cond[P conditionParent] struct {
	parent   P
	c        *Collector
	isHaving bool
	text     strings.Builder
	column   string
	done     bool
}

// newCond starts a condition continuation. prefix is the "AND "/"OR "/"WHERE "
// glue plus any caller-supplied open bracket; column is kept separate (rather
// than written into text immediately) so an empty In/NotIn can render a
// column-independent constant predicate instead of "col IN ()".
func newCond[P conditionParent](parent P, isHaving bool, prefix, column string) *Cond[P] {
	cond := &Cond[P]{parent: parent, c: parent.collector(), isHaving: isHaving, column: column}
	cond.text.WriteString(prefix)
	return cond
}

// writeColumn appends the condition's column once, immediately before an
// operator renders its comparison.
func (c *Cond[P]) writeColumn() {
	c.text.WriteString(c.column)
}

func (c *Cond[P]) commit(closeBracket string) P {
	c.text.WriteString(closeBracket)
	frag := TextFragment(c.text.String())
	if c.isHaving {
		c.c.commitHaving(frag)
	} else {
		c.c.commitWhere(frag)
	}
	c.done = true
	return c.parent
}

func closeBracketArg(cb []string) string {
	if len(cb) == 0 {
		return ""
	}
	return cb[0]
}

// bindValue renders the right-hand side for a single scalar/Expression/
// subquery value: an Expression is inlined (validated, unbound); a
// *SelectBuilder is recorded as a binding so the compiler can splice its
// sub-SQL and sub-bindings in place; anything else is a normal bound value.
func (c *Cond[P]) bindValue(v interface{}) string {
	switch val := v.(type) {
	case Expression:
		return val.Text()
	case *SelectBuilder:
		c.c.push(val, c.isHaving)
		return "?"
	default:
		c.c.push(val, c.isHaving)
		return "?"
	}
}

// Equals appends "col = ?" (or the Expression's literal text) and commits.
func (c *Cond[P]) Equals(v interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" = ")
	c.text.WriteString(c.bindValue(v))
	return c.commit(closeBracketArg(closeBracket))
}

// NotEquals appends "col != ?" and commits.
func (c *Cond[P]) NotEquals(v interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" != ")
	c.text.WriteString(c.bindValue(v))
	return c.commit(closeBracketArg(closeBracket))
}

// Greater appends "col > ?" and commits.
func (c *Cond[P]) Greater(v interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" > ")
	c.text.WriteString(c.bindValue(v))
	return c.commit(closeBracketArg(closeBracket))
}

// GreaterOrEqual appends "col >= ?" and commits.
func (c *Cond[P]) GreaterOrEqual(v interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" >= ")
	c.text.WriteString(c.bindValue(v))
	return c.commit(closeBracketArg(closeBracket))
}

// Less appends "col < ?" and commits.
func (c *Cond[P]) Less(v interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" < ")
	c.text.WriteString(c.bindValue(v))
	return c.commit(closeBracketArg(closeBracket))
}

// LessOrEqual appends "col <= ?" and commits.
func (c *Cond[P]) LessOrEqual(v interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" <= ")
	c.text.WriteString(c.bindValue(v))
	return c.commit(closeBracketArg(closeBracket))
}

// Like appends "col LIKE ?" and commits.
func (c *Cond[P]) Like(pattern interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" LIKE ")
	c.text.WriteString(c.bindValue(pattern))
	return c.commit(closeBracketArg(closeBracket))
}

// NotLike appends "col NOT LIKE ?" and commits.
func (c *Cond[P]) NotLike(pattern interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" NOT LIKE ")
	c.text.WriteString(c.bindValue(pattern))
	return c.commit(closeBracketArg(closeBracket))
}

// IsNull appends "col IS NULL" and commits.
func (c *Cond[P]) IsNull(closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" IS NULL")
	return c.commit(closeBracketArg(closeBracket))
}

// IsNotNull appends "col IS NOT NULL" and commits.
func (c *Cond[P]) IsNotNull(closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" IS NOT NULL")
	return c.commit(closeBracketArg(closeBracket))
}

// Between appends "col BETWEEN ? AND ?" and commits.
func (c *Cond[P]) Between(min, max interface{}, closeBracket ...string) P {
	c.writeColumn()
	c.text.WriteString(" BETWEEN ")
	c.text.WriteString(c.bindValue(min))
	c.text.WriteString(" AND ")
	c.text.WriteString(c.bindValue(max))
	return c.commit(closeBracketArg(closeBracket))
}

// In appends "col IN (?, ?, ...)" — one binding per element — or, when the
// value is a *SelectBuilder, "col IN (?)" with the subquery recorded as the
// single binding to splice at compile time (spec §4.1, testable property 8).
// An empty list renders the column-independent, always-false "(1=0)".
func (c *Cond[P]) In(values interface{}, closeBracket ...string) P {
	if empty, handled := c.emptyInList(values); handled {
		if empty {
			c.text.WriteString("(1=0)")
			return c.commit(closeBracketArg(closeBracket))
		}
	}
	c.writeColumn()
	c.text.WriteString(" IN (")
	c.writeInList(values)
	c.text.WriteString(")")
	return c.commit(closeBracketArg(closeBracket))
}

// NotIn mirrors In with "NOT IN". An empty list renders the tautology
// "(1=1)", the logical complement of In's empty-list "(1=0)".
func (c *Cond[P]) NotIn(values interface{}, closeBracket ...string) P {
	if empty, handled := c.emptyInList(values); handled {
		if empty {
			c.text.WriteString("(1=1)")
			return c.commit(closeBracketArg(closeBracket))
		}
	}
	c.writeColumn()
	c.text.WriteString(" NOT IN (")
	c.writeInList(values)
	c.text.WriteString(")")
	return c.commit(closeBracketArg(closeBracket))
}

// emptyInList reports (isEmpty, handled) — handled is true when values is
// not a subquery, meaning the caller should special-case a zero-length list
// instead of falling through to the normal "IN (...)" rendering.
func (c *Cond[P]) emptyInList(values interface{}) (bool, bool) {
	if _, ok := values.(*SelectBuilder); ok {
		return false, false
	}
	return len(toSlice(values)) == 0, true
}

func (c *Cond[P]) writeInList(values interface{}) {
	if sub, ok := values.(*SelectBuilder); ok {
		c.c.push(sub, c.isHaving)
		c.text.WriteString("?")
		return
	}
	elems := toSlice(values)
	placeholders := make([]string, len(elems))
	for i, v := range elems {
		placeholders[i] = c.bindValue(v)
	}
	c.text.WriteString(strings.Join(placeholders, ", "))
}

// Exists appends an "EXISTS (sub)" fragment wired to a subquery builder.
func (c *Cond[P]) Exists(sub *SelectBuilder, closeBracket ...string) P {
	c.text.WriteString(" EXISTS (")
	return c.commitExists(sub, false, closeBracketArg(closeBracket))
}

// NotExists appends a "NOT EXISTS (sub)" fragment.
func (c *Cond[P]) NotExists(sub *SelectBuilder, closeBracket ...string) P {
	c.text.WriteString(" NOT EXISTS (")
	return c.commitExists(sub, true, closeBracketArg(closeBracket))
}

func (c *Cond[P]) commitExists(sub *SelectBuilder, negate bool, closeBracket string) P {
	frag := ExistsFragment{
		Negate:            negate,
		Sub:               sub,
		Prefix:            c.text.String(),
		CloseBracket:      ")" + closeBracket,
		ExtraCloseBracket: closeBracket,
	}
	if c.isHaving {
		c.c.commitHaving(frag)
	} else {
		c.c.commitWhere(frag)
	}
	c.done = true
	return c.parent
}

// JSONCond is the continuation returned by WhereJSON/AndJSON/OrJSON (C2).
// Extract/Length only append a sentinel and return self so the caller can
// chain a comparison operator; Contains/NotContains fully specify and
// commit the fragment themselves.
type JSONCond[P conditionParent] struct {
	cond   *Cond[P]
	column string
}

// newJSONCond starts a JSON condition continuation. The underlying Cond is
// given an empty column: JSONCond writes its own column into the sentinel
// text directly (Extract/Length/Contains/NotContains), so Cond.writeColumn
// must stay a no-op for this continuation.
func newJSONCond[P conditionParent](parent P, isHaving bool, prefix, column string) *JSONCond[P] {
	return &JSONCond[P]{cond: newCond[P](parent, isHaving, prefix, ""), column: column}
}

// jsonParamSeq is the monotonically increasing counter used to mint unique
// synthetic parameter names for JSON_CONTAINS/JSON_NOT_CONTAINS sentinels
// (spec §4.1: "a generated parameter name ... not positional").
var jsonParamSeq int

func nextJSONParamName() string {
	jsonParamSeq++
	return fmt.Sprintf("jp%d", jsonParamSeq)
}

// Extract appends a JSON_EXTRACT sentinel and returns self for chaining a
// comparison operator (e.g. .Extract("$.user.name").Equals("John")).
func (j *JSONCond[P]) Extract(path string) *JSONCond[P] {
	j.cond.text.WriteString(j.column)
	j.cond.text.WriteString("{{JSON_EXTRACT::")
	j.cond.text.WriteString(path)
	j.cond.text.WriteString("}}")
	return j
}

// Length appends a JSON_LENGTH sentinel and returns self for chaining a
// comparison operator.
func (j *JSONCond[P]) Length(path ...string) *JSONCond[P] {
	j.cond.text.WriteString(j.column)
	j.cond.text.WriteString("{{JSON_LENGTH")
	if len(path) > 0 && path[0] != "" {
		j.cond.text.WriteString("::")
		j.cond.text.WriteString(path[0])
	}
	j.cond.text.WriteString("}}")
	return j
}

// Contains binds value and commits a JSON_CONTAINS sentinel fragment.
// rest is (path?, closeBracket?), matching the DSL's "value, path?, close?".
func (j *JSONCond[P]) Contains(value interface{}, rest ...string) P {
	path := ""
	if len(rest) > 0 {
		path = rest[0]
	}
	close := ""
	if len(rest) > 1 {
		close = rest[1]
	}
	name := nextJSONParamName()
	j.cond.c.push(value, j.cond.isHaving)
	j.cond.text.WriteString(j.column)
	j.cond.text.WriteString("{{JSON_CONTAINS::")
	j.cond.text.WriteString(name)
	if path != "" {
		j.cond.text.WriteString("::")
		j.cond.text.WriteString(path)
	}
	j.cond.text.WriteString("}}")
	return j.cond.commit(close)
}

// NotContains mirrors Contains with JSON_NOT_CONTAINS.
func (j *JSONCond[P]) NotContains(value interface{}, rest ...string) P {
	path := ""
	if len(rest) > 0 {
		path = rest[0]
	}
	close := ""
	if len(rest) > 1 {
		close = rest[1]
	}
	name := nextJSONParamName()
	j.cond.c.push(value, j.cond.isHaving)
	j.cond.text.WriteString(j.column)
	j.cond.text.WriteString("{{JSON_NOT_CONTAINS::")
	j.cond.text.WriteString(name)
	if path != "" {
		j.cond.text.WriteString("::")
		j.cond.text.WriteString(path)
	}
	j.cond.text.WriteString("}}")
	return j.cond.commit(close)
}

// Equals commits the JSON condition with an "= ?" comparison, for use after
// Extract/Length (e.g. .Extract(path).Equals(v)).
func (j *JSONCond[P]) Equals(v interface{}, closeBracket ...string) P {
	return j.cond.Equals(v, closeBracket...)
}

// NotEquals mirrors Equals with "!=".
func (j *JSONCond[P]) NotEquals(v interface{}, closeBracket ...string) P {
	return j.cond.NotEquals(v, closeBracket...)
}

// Greater mirrors Cond.Greater.
func (j *JSONCond[P]) Greater(v interface{}, closeBracket ...string) P {
	return j.cond.Greater(v, closeBracket...)
}

// GreaterOrEqual mirrors Cond.GreaterOrEqual.
func (j *JSONCond[P]) GreaterOrEqual(v interface{}, closeBracket ...string) P {
	return j.cond.GreaterOrEqual(v, closeBracket...)
}

// Less mirrors Cond.Less.
func (j *JSONCond[P]) Less(v interface{}, closeBracket ...string) P {
	return j.cond.Less(v, closeBracket...)
}

// LessOrEqual mirrors Cond.LessOrEqual.
func (j *JSONCond[P]) LessOrEqual(v interface{}, closeBracket ...string) P {
	return j.cond.LessOrEqual(v, closeBracket...)
}

// toSlice converts a slice/array value (other than []byte, treated as a
// single scalar) into []interface{}. Non-slice values yield an empty slice,
// matching the teacher's WhereIn behavior for a scalar passed to In.
func toSlice(v interface{}) []interface{} {
	return sliceToInterfaces(v)
}
