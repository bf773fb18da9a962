package qb

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInNonEmptyListBindsOnePlaceholderPerElement(t *testing.T) {
	res, err := Select("id").From("users").
		Where("status").In([]string{"active", "trial"}).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM `users` WHERE status IN (?, ?)", res.SQL)
	assert.Equal(t, []interface{}{"active", "trial"}, res.Bindings)
}

func TestInEmptyListRendersColumnFreeFalsePredicate(t *testing.T) {
	res, err := Select("id").From("users").
		Where("status").In([]string{}).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.True(t, strings.Contains(res.SQL, "(1=0)"))
	assert.False(t, strings.Contains(res.SQL, "status"))
	assert.Empty(t, res.Bindings)
}

func TestNotInEmptyListRendersTautology(t *testing.T) {
	res, err := Select("id").From("users").
		Where("status").NotIn([]string{}).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.True(t, strings.Contains(res.SQL, "(1=1)"))
	assert.Empty(t, res.Bindings)
}

func TestInScalarValueTreatedAsEmptyList(t *testing.T) {
	res, err := Select("id").From("users").
		Where("id").In(5).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "(1=0)")
	assert.Empty(t, res.Bindings)
}

func TestInByteSliceTreatedAsSingleValue(t *testing.T) {
	blob := []byte{1, 2, 3}
	res, err := Select("id").From("t").
		Where("blob").In(blob).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "blob IN (?)")
	if len(res.Bindings) != 1 || !reflect.DeepEqual(res.Bindings[0], blob) {
		t.Fatalf("bindings mismatch: %#v", res.Bindings)
	}
}

func TestBetweenBindsTwoValues(t *testing.T) {
	res, err := Select("id").From("t").
		Where("age").Between(18, 65).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM `t` WHERE age BETWEEN ? AND ?", res.SQL)
	assert.Equal(t, []interface{}{18, 65}, res.Bindings)
}

func TestLikeAndNotLike(t *testing.T) {
	res, err := Select("id").From("users").
		Where("name").Like("%ali%").
		And("email").NotLike("%@spam.com").
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "name LIKE ?")
	assert.Contains(t, res.SQL, "email NOT LIKE ?")
	assert.Equal(t, []interface{}{"%ali%", "%@spam.com"}, res.Bindings)
}

func TestIsNullAndIsNotNull(t *testing.T) {
	res, err := Select("id").From("users").
		Where("deleted_at").IsNull().
		And("email").IsNotNull().
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM `users` WHERE deleted_at IS NULL AND email IS NOT NULL", res.SQL)
	assert.Empty(t, res.Bindings)
}

func TestOrCombinesWithPriorWhere(t *testing.T) {
	res, err := Select("*").From("t").
		Where("a").Equals(1).
		Or("b").Equals(2).
		Where("c").Equals(3).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE a = ? OR b = ? AND c = ?", res.SQL)
	assert.Equal(t, []interface{}{1, 2, 3}, res.Bindings)
}

func TestOpenCloseBracketGrouping(t *testing.T) {
	res, err := Select("*").From("t").
		Where("a").Equals(1).
		And("b", "(").Equals(2).
		Or("c").Equals(3, ")").
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `t` WHERE a = ? AND (b = ? OR c = ?)", res.SQL)
	assert.Equal(t, []interface{}{1, 2, 3}, res.Bindings)
}

func TestJSONExtractChainedWithComparisonOperators(t *testing.T) {
	res, err := Select("*").From("t").
		WhereJSON("metadata").Extract("$.score").GreaterOrEqual(90).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "JSON_EXTRACT(`metadata`, '$.score') >= ?")
	assert.Equal(t, []interface{}{90}, res.Bindings)
}

func TestJSONLengthChainedWithComparison(t *testing.T) {
	res, err := Select("*").From("t").
		WhereJSON("tags").Length().Greater(0).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "JSON_LENGTH(`tags`) > ?")
	assert.Equal(t, []interface{}{0}, res.Bindings)
}
