package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresQuoteIdentifierEscapesDoubleQuote(t *testing.T) {
	s := postgresStrategy{}
	assert.Equal(t, `"users"`, s.QuoteIdentifier("users"))
	assert.Equal(t, `"a""b"`, s.QuoteIdentifier(`a"b`))
}

func TestPostgresFormatBoolean(t *testing.T) {
	s := postgresStrategy{}
	assert.Equal(t, "TRUE", s.FormatBoolean(true, StatementSelect))
	assert.Equal(t, "FALSE", s.FormatBoolean(false, StatementSelect))
}

func TestPostgresSuppressesJoinOrderByLimitOnlyForUpdateDelete(t *testing.T) {
	s := postgresStrategy{}
	assert.False(t, s.SupportsOrderByLimitJoin(StatementUpdate))
	assert.False(t, s.SupportsOrderByLimitJoin(StatementDelete))
	assert.True(t, s.SupportsOrderByLimitJoin(StatementSelect))
	assert.True(t, s.SkipJoinKind(InnerJoin, StatementUpdate))
	assert.True(t, s.SkipJoinKind(InnerJoin, StatementDelete))
	assert.False(t, s.SkipJoinKind(InnerJoin, StatementSelect))
}

func TestPostgresJSONExtractStripsDollarAndChainsArrows(t *testing.T) {
	s := postgresStrategy{}
	got := s.JSONExtract("metadata", "$.user.name")
	assert.Equal(t, `"metadata"->'user'->>'name'`, got)
}

func TestPostgresJSONExtractSingleSegment(t *testing.T) {
	s := postgresStrategy{}
	assert.Equal(t, `"data"->>'key'`, s.JSONExtract("data", "$.key"))
}

func TestPostgresJSONExtractNoPathReturnsBareColumn(t *testing.T) {
	s := postgresStrategy{}
	assert.Equal(t, `"data"`, s.JSONExtract("data", ""))
}

func TestPostgresJSONContainsDiffersBetweenUpdateAndOthers(t *testing.T) {
	s := postgresStrategy{}
	sel := s.JSONContains("tags", "?", "", StatementSelect)
	assert.Equal(t, `"tags" @> ?::jsonb`, sel)

	upd := s.JSONContains("tags", "?", "", StatementUpdate)
	assert.Equal(t, `"tags" @> to_jsonb(?)`, upd)
}

func TestPostgresJSONContainsWithPathUsesJSONBTraversal(t *testing.T) {
	s := postgresStrategy{}
	got := s.JSONContains("preferences", "?", "$.flags", StatementSelect)
	assert.Equal(t, `"preferences"->'flags' @> ?::jsonb`, got)
}

func TestPostgresJSONNotContainsWraps(t *testing.T) {
	s := postgresStrategy{}
	got := s.JSONNotContains("tags", "?", "", StatementSelect)
	assert.Equal(t, `NOT ( "tags" @> ?::jsonb )`, got)
}

func TestPostgresJSONLength(t *testing.T) {
	s := postgresStrategy{}
	assert.Equal(t, `jsonb_array_length("items")`, s.JSONLength("items", ""))
	assert.Equal(t, `jsonb_array_length("items"->'list')`, s.JSONLength("items", "$.list"))
}
