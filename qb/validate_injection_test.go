package qb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectionValidatorRejectsUnsafeLiterals(t *testing.T) {
	unsafe := []string{
		"admin'-- ",
		"1; DROP TABLE users",
		"LOAD_FILE('/etc/passwd')",
		"0x48656c6c6f",
	}
	for _, lit := range unsafe {
		err := validateSafe(lit)
		if err == nil {
			t.Fatalf("expected rejection for %q", lit)
		}
		var qerr *Error
		if !errors.As(err, &qerr) {
			t.Fatalf("expected *qb.Error for %q, got %T", lit, err)
		}
		assert.Equal(t, UnsafeValue, qerr.Kind())
	}
}

func TestInjectionValidatorAcceptsBenignLiterals(t *testing.T) {
	safe := []string{
		"O'Reilly",
		"Café München",
		"50% discount",
	}
	for _, lit := range safe {
		if err := validateSafe(lit); err != nil {
			t.Fatalf("expected %q to pass, got error: %v", lit, err)
		}
	}
}

func TestRawRejectsUnsafePayload(t *testing.T) {
	_, err := RawSafe("1; DROP TABLE users")
	if err == nil {
		t.Fatalf("expected RawSafe to reject unsafe payload")
	}
}

func TestRawPanicsOnUnsafePayload(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Raw to panic on unsafe payload")
		}
	}()
	Raw("1; DROP TABLE users")
}

func TestRawAcceptsSafeExpression(t *testing.T) {
	expr := Raw("NOW()")
	assert.Equal(t, "NOW()", expr.Text())
}
