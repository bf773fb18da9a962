package qb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorKindAndMessage(t *testing.T) {
	err := newError(InvalidConfig, "missing %s", "table")
	var qerr *Error
	if !errors.As(err, &qerr) {
		t.Fatalf("expected *qb.Error, got %T", err)
	}
	assert.Equal(t, InvalidConfig, qerr.Kind())
	assert.Contains(t, qerr.Error(), "missing table")
	assert.Contains(t, qerr.Error(), "InvalidConfig")
}

func TestWrapErrorPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := wrapError(UnsafeValue, cause, "rejected")
	var qerr *Error
	if !errors.As(err, &qerr) {
		t.Fatalf("expected *qb.Error, got %T", err)
	}
	assert.Equal(t, UnsafeValue, qerr.Kind())
	assert.Same(t, cause, qerr.Unwrap())
	assert.Contains(t, qerr.Error(), "boom")
}

func TestErrorKindStringNames(t *testing.T) {
	cases := map[ErrorKind]string{
		InvalidConfig:          "InvalidConfig",
		InvalidStructure:       "InvalidStructure",
		UnsafeValue:            "UnsafeValue",
		UnsupportedBindingType: "UnsupportedBindingType",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestSetLoggerAcceptsNil(t *testing.T) {
	SetLogger(nil)
}
