package qb

import (
	"fmt"

	"github.com/Serajian/go-query-builder/dialect"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrorKind classifies a compile-time failure (spec §7).
type ErrorKind int

const (
	// InvalidConfig covers unsupported dialect strings, INSERT values arity
	// mismatches, and a missing required table/from/into target.
	InvalidConfig ErrorKind = iota
	// InvalidStructure covers unbalanced brackets across WHERE/HAVING and
	// an unresolved '?' during inline substitution.
	InvalidStructure
	// UnsafeValue covers an Injection Validator rejection.
	UnsafeValue
	// UnsupportedBindingType covers an array/object/resource value bound
	// outside of IN/NOT IN.
	UnsupportedBindingType
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidStructure:
		return "InvalidStructure"
	case UnsafeValue:
		return "UnsafeValue"
	case UnsupportedBindingType:
		return "UnsupportedBindingType"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by every compile-time failure.
// It wraps a stack trace via github.com/pkg/errors so a caller can inspect
// where the failure originated in development builds.
type Error struct {
	kind  ErrorKind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("qb: %s: %s: %v", e.kind, e.msg, e.cause)
	}
	return fmt.Sprintf("qb: %s: %s", e.kind, e.msg)
}

// Kind reports the ErrorKind, letting callers dispatch with errors.As.
func (e *Error) Kind() ErrorKind { return e.kind }

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{kind: kind, msg: fmt.Sprintf(format, args...)})
}

func wrapError(kind ErrorKind, cause error, format string, args ...interface{}) error {
	return errors.WithStack(&Error{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause})
}

// logger is the package-level diagnostic sink. It is silent by default;
// callers running in development wire in a real logger with SetLogger.
var logger = zap.NewNop().Sugar()

// LogFullSQL, when true, permits Debug-level log lines to include the full
// rendered SQL text (in addition to its length and binding count). Off by
// default so logs never double the volume of the compiled statements.
var LogFullSQL = false

// SetLogger installs the logger used for registry and compiler diagnostics.
// Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop().Sugar()
		dialect.Default.SetLogger(nil)
		return
	}
	logger = l.Sugar()
	dialect.Default.SetLogger(logger)
}
