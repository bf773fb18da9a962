package qb

// Fragment is one element of a condition list (C1): either an already
// partially-composed string carrying '?' placeholders and JSON sentinels,
// or a structured EXISTS/NOT EXISTS record.
type Fragment interface {
	isFragment()
}

// TextFragment is a plain composed condition string.
type TextFragment string

func (TextFragment) isFragment() {}

// ExistsFragment carries a handle to a subquery builder bound via EXISTS or
// NOT EXISTS. No binding is recorded for it directly; its sub-bindings are
// spliced in when the compiler renders it.
type ExistsFragment struct {
	Negate bool
	Sub    *SelectBuilder
	Prefix string // e.g. " AND EXISTS (", " WHERE NOT EXISTS ("
	// CloseBracket is the full rendered closing text: the mandatory ")"
	// that closes this fragment's own "EXISTS (" plus any caller-supplied
	// extra closing bracket.
	CloseBracket string
	// ExtraCloseBracket is only the caller-supplied bracket beyond the
	// mandatory one, i.e. what the Bracket Validator counts (spec §4.4:
	// the subquery's own self-balanced parens, including the mandatory
	// pair wrapping it, never count towards cross-fragment balance).
	ExtraCloseBracket string
}

func (ExistsFragment) isFragment() {}

// Expression is a marker value meaning "render this payload literally, do
// not bind it" (C12). Its text is validated against the Injection Validator
// at construction time, per spec §3/§4.5, so a caller cannot smuggle unsafe
// text into a condition or SET/value position via Raw.
type Expression struct {
	text string
}

// Raw wraps a raw SQL fragment for literal inlining. It panics with a
// *qb.Error if the text fails injection validation; use RawSafe to get the
// error back instead.
func Raw(text string) Expression {
	e, err := RawSafe(text)
	if err != nil {
		panic(err)
	}
	return e
}

// RawSafe is the non-panicking form of Raw.
func RawSafe(text string) (Expression, error) {
	if err := validateSafe(text); err != nil {
		return Expression{}, err
	}
	return Expression{text: text}, nil
}

// Text returns the wrapped literal SQL text.
func (e Expression) Text() string { return e.text }

// Collector is the append-only ordered vector of bound parameter values and
// the accumulated WHERE/HAVING condition fragments (C1). Every SELECT,
// UPDATE and DELETE builder owns exactly one Collector for its lifetime. WHERE and HAVING
// bindings are tracked in separate vectors (rather than one shared slice in
// call order) so the compiler can place them in the canonical WHERE-then-
// HAVING order spec §3 invariant 3 requires regardless of which clause the
// caller happened to build first in Go code.
type Collector struct {
	whereBindings  []interface{}
	havingBindings []interface{}

	where  []Fragment
	having []Fragment

	// supportsHaving is true only for SELECT; it governs whether And/Or
	// continue a HAVING chain (spec §4.1).
	supportsHaving bool
	// lastIsHaving tracks whether the most recently committed fragment
	// targeted HAVING, so a subsequent And/Or knows which list to extend.
	lastIsHaving bool
}

// NewCollector constructs an empty Collector. supportsHaving should be true
// only for SELECT statement builders.
func NewCollector(supportsHaving bool) *Collector {
	return &Collector{supportsHaving: supportsHaving}
}

// push appends one bound value, in commit order, to the WHERE or HAVING
// binding vector according to isHaving.
func (c *Collector) push(v interface{}, isHaving bool) {
	if isHaving {
		c.havingBindings = append(c.havingBindings, v)
		return
	}
	c.whereBindings = append(c.whereBindings, v)
}

// Bindings returns WHERE bindings followed by HAVING bindings — the order
// the main-query binding vector assembles them in (spec §3 invariant 3).
func (c *Collector) Bindings() []interface{} {
	out := make([]interface{}, 0, len(c.whereBindings)+len(c.havingBindings))
	out = append(out, c.whereBindings...)
	out = append(out, c.havingBindings...)
	return out
}

// WhereBindings returns only the WHERE-condition binding vector.
func (c *Collector) WhereBindings() []interface{} { return c.whereBindings }

// HavingBindings returns only the HAVING-condition binding vector.
func (c *Collector) HavingBindings() []interface{} { return c.havingBindings }

// Where returns the accumulated WHERE fragments in insertion order.
func (c *Collector) Where() []Fragment { return c.where }

// Having returns the accumulated HAVING fragments in insertion order.
func (c *Collector) Having() []Fragment { return c.having }

func (c *Collector) commitWhere(f Fragment) {
	c.where = append(c.where, f)
	c.lastIsHaving = false
}

func (c *Collector) commitHaving(f Fragment) {
	c.having = append(c.having, f)
	c.lastIsHaving = true
}
