package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteQuoteIdentifier(t *testing.T) {
	s := sqliteStrategy{}
	assert.Equal(t, "`users`", s.QuoteIdentifier("users"))
	assert.Equal(t, "`a``b`", s.QuoteIdentifier("a`b"))
}

func TestSQLiteFormatBoolean(t *testing.T) {
	s := sqliteStrategy{}
	assert.Equal(t, "1", s.FormatBoolean(true, StatementSelect))
	assert.Equal(t, "0", s.FormatBoolean(false, StatementSelect))
}

func TestSQLiteSkipsFullOuterAndRightJoinAlways(t *testing.T) {
	s := sqliteStrategy{}
	assert.True(t, s.SkipJoinKind(FullOuterJoin, StatementSelect))
	assert.True(t, s.SkipJoinKind(RightJoin, StatementSelect))
	assert.False(t, s.SkipJoinKind(InnerJoin, StatementSelect))
}

func TestSQLiteSkipsEveryJoinOnUpdateDelete(t *testing.T) {
	s := sqliteStrategy{}
	assert.True(t, s.SkipJoinKind(InnerJoin, StatementUpdate))
	assert.True(t, s.SkipJoinKind(InnerJoin, StatementDelete))
}

func TestSQLiteSuppressesOrderByLimitJoinOnlyForUpdateDelete(t *testing.T) {
	s := sqliteStrategy{}
	assert.False(t, s.SupportsOrderByLimitJoin(StatementUpdate))
	assert.False(t, s.SupportsOrderByLimitJoin(StatementDelete))
	assert.True(t, s.SupportsOrderByLimitJoin(StatementSelect))
}

func TestSQLiteJSONExtract(t *testing.T) {
	s := sqliteStrategy{}
	assert.Equal(t, "json_extract(`metadata`, '$.user.name')", s.JSONExtract("metadata", "$.user.name"))
}

func TestSQLiteJSONContainsLikeWildcard(t *testing.T) {
	s := sqliteStrategy{}
	assert.Equal(t, "`preferences` LIKE '%' || ? || '%'", s.JSONContains("preferences", "?", "", StatementSelect))
}

func TestSQLiteJSONContainsWithPathExtractsFirst(t *testing.T) {
	s := sqliteStrategy{}
	got := s.JSONContains("preferences", "?", "$.flags", StatementSelect)
	assert.Equal(t, "json_extract(`preferences`, '$.flags') LIKE '%' || ? || '%'", got)
}

func TestSQLiteJSONNotContainsWraps(t *testing.T) {
	s := sqliteStrategy{}
	got := s.JSONNotContains("preferences", "?", "", StatementSelect)
	assert.Equal(t, "NOT ( `preferences` LIKE '%' || ? || '%' )", got)
}

func TestSQLiteJSONLength(t *testing.T) {
	s := sqliteStrategy{}
	assert.Equal(t, "json_array_length(`items`)", s.JSONLength("items", ""))
	assert.Equal(t, "json_array_length(`items`, '$.list')", s.JSONLength("items", "$.list"))
}
