package qb

import "regexp"

// injectionPatterns are the rejection rules for the Injection Validator
// (C4, spec §4.5). Detection is conservative by design: every pattern is
// case-insensitive and errs toward rejecting a borderline literal rather
// than letting it through to an inlined, non-prepared statement.
var injectionPatterns = []*regexp.Regexp{
	// Comments.
	regexp.MustCompile(`(?i)--\s`),
	regexp.MustCompile(`(?is)/\*.*?\*/`),
	regexp.MustCompile(`(?i)#.+`),
	// File operations.
	regexp.MustCompile(`(?i)LOAD_FILE`),
	regexp.MustCompile(`(?i)INTO\s+OUTFILE`),
	regexp.MustCompile(`(?i)INTO\s+DUMPFILE`),
	// Statement stacking.
	regexp.MustCompile(`(?i);\s*(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|GRANT|REVOKE|TRUNCATE)\b`),
	// Dangerous keywords as standalone tokens.
	regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|TRUNCATE|EXEC|EXECUTE|UNION)\b`),
	// Permission statements.
	regexp.MustCompile(`(?i)\b(GRANT|REVOKE)\b`),
	// Time-based blind injection probes.
	regexp.MustCompile(`(?i)\b(SLEEP|BENCHMARK|WAITFOR|PG_SLEEP)\b`),
	// Schema access.
	regexp.MustCompile(`(?i)INFORMATION_SCHEMA`),
	regexp.MustCompile(`(?i)MYSQL\.USER`),
	regexp.MustCompile(`(?i)PG_CATALOG`),
	regexp.MustCompile(`(?i)\bSYS\.\w+`),
	// Hex literals.
	regexp.MustCompile(`(?i)0x[0-9A-F]{2,}`),
}

// validateSafe runs the Injection Validator over a literal that will be
// inlined in non-prepared mode, or over a raw Expression's payload at
// construction time. It returns a *qb.Error of kind UnsafeValue on the
// first matching pattern.
func validateSafe(literal string) error {
	for _, pattern := range injectionPatterns {
		if pattern.MatchString(literal) {
			return newError(UnsafeValue, "value rejected by injection validator: %q matches %s", literal, pattern.String())
		}
	}
	return nil
}
