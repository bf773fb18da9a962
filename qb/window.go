package qb

// FrameUnit is the windowing unit for a WindowSpec's frame clause (C13).
type FrameUnit string

const (
	FrameRows  FrameUnit = "ROWS"
	FrameRange FrameUnit = "RANGE"
)

// WindowFrame is the optional `unit BETWEEN start AND end` tail of a window
// spec, e.g. ROWS BETWEEN 2 PRECEDING AND CURRENT ROW.
type WindowFrame struct {
	Unit  FrameUnit
	Start string
	End   string
}

// OrderItem is one `column direction` entry shared by ORDER BY clauses and
// window spec ORDER BY lists.
type OrderItem struct {
	Column    string
	Direction string
}

// WindowSpec is the partition/order/frame definition behind an OVER (...)
// clause, usable inline or registered under a name via Window (C13).
type WindowSpec struct {
	Partitions []string
	Orders     []OrderItem
	Frame      *WindowFrame
}

// NewWindow starts an empty WindowSpec for fluent configuration.
func NewWindow() *WindowSpec {
	return &WindowSpec{}
}

// PartitionBy appends one or more partition columns.
func (w *WindowSpec) PartitionBy(cols ...string) *WindowSpec {
	w.Partitions = append(w.Partitions, cols...)
	return w
}

// OrderBy appends one ordering entry to the window spec.
func (w *WindowSpec) OrderBy(column, direction string) *WindowSpec {
	w.Orders = append(w.Orders, OrderItem{Column: column, Direction: direction})
	return w
}

// FrameBetween sets the ROWS/RANGE BETWEEN ... AND ... tail.
func (w *WindowSpec) FrameBetween(unit FrameUnit, start, end string) *WindowSpec {
	w.Frame = &WindowFrame{Unit: unit, Start: start, End: end}
	return w
}

// WindowCall is one window-function projection: either an inline spec or a
// reference to a named window registered on the SELECT via Window(name, spec).
type WindowCall struct {
	FnExpr string // e.g. "ROW_NUMBER()", "RANK()", "SUM(amount)"
	Alias  string
	Spec   *WindowSpec // inline OVER (...) definition; nil when Ref is set
	Ref    string       // named window reference; empty when Spec is set
}

// NamedWindowRecord is one entry of a SELECT's named-window registry,
// rendered in the trailing `WINDOW name AS (...)` clause.
type NamedWindowRecord struct {
	Name string
	Spec *WindowSpec
}
