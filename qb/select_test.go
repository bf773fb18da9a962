package qb

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: basic WHERE/AND chain compiled prepared for MySQL.
func TestScenarioBasicWhereAnd(t *testing.T) {
	res, err := Select("*").From("users").
		Where("status").Equals("active").
		And("age").Greater(27).
		Sql("mysql", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT * FROM `users` WHERE status = ? AND age > ?"
	if res.SQL != want {
		t.Fatalf("sql mismatch:\n got: %s\nwant: %s", res.SQL, want)
	}
	wantArgs := []interface{}{"active", 27}
	if !reflect.DeepEqual(res.Bindings, wantArgs) {
		t.Fatalf("bindings mismatch:\n got: %#v\nwant: %#v", res.Bindings, wantArgs)
	}
}

// S4: JSON extract compiled raw for PostgreSQL.
func TestScenarioJSONExtractPostgresRaw(t *testing.T) {
	res, err := Select("*").From("users").
		WhereJSON("metadata").Extract("$.user.name").Equals("John").
		Sql("postgres", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `SELECT * FROM "users" WHERE "metadata"->'user'->>'name' = 'John'`
	if res.SQL != want {
		t.Fatalf("sql mismatch:\n got: %s\nwant: %s", res.SQL, want)
	}
	if len(res.Bindings) != 0 {
		t.Fatalf("raw mode should carry no bindings, got: %#v", res.Bindings)
	}
}

// S5: JSON contains compiled prepared for SQLite.
func TestScenarioJSONContainsSQLitePrepared(t *testing.T) {
	res, err := Select("*").From("users").
		WhereJSON("preferences").Contains("dark_mode").
		Sql("sqlite", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT * FROM `users` WHERE `preferences` LIKE '%' || ? || '%'"
	if res.SQL != want {
		t.Fatalf("sql mismatch:\n got: %s\nwant: %s", res.SQL, want)
	}
	wantArgs := []interface{}{"dark_mode"}
	if !reflect.DeepEqual(res.Bindings, wantArgs) {
		t.Fatalf("bindings mismatch:\n got: %#v\nwant: %#v", res.Bindings, wantArgs)
	}
}

// S7: a recursive CTE's own bindings precede the main query's.
func TestScenarioRecursiveCTEBindingOrder(t *testing.T) {
	sub := Select("*").From("employees").Where("manager_id").Equals(1)
	res, err := Select("*").From("departments").
		WithRecursive("emp", sub).
		Where("id").Equals(100).
		Sql("mysql", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(res.SQL, "WITH RECURSIVE `emp` AS (SELECT") {
		t.Fatalf("expected WITH RECURSIVE preamble, got: %s", res.SQL)
	}
	wantArgs := []interface{}{1, 100}
	if !reflect.DeepEqual(res.Bindings, wantArgs) {
		t.Fatalf("bindings mismatch:\n got: %#v\nwant: %#v", res.Bindings, wantArgs)
	}
}

// Testable property 2's UNION ALL example: each branch's bindings concatenate
// in branch order, after the main WHERE's.
func TestUnionAllBindingOrder(t *testing.T) {
	other := Select("id").From("suppliers").Where("country").Equals("AT")
	res, err := Select("id").From("employees").
		Where("country").Equals("CH").
		UnionAll(other).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"CH", "AT"}, res.Bindings)
	assert.Contains(t, res.SQL, "UNION ALL SELECT id FROM `suppliers` WHERE country = ?")
}

func TestDistinctAndGroupByHaving(t *testing.T) {
	res, err := Select("status, COUNT(*) AS cnt").From("orders").
		Distinct().
		GroupBy("status").
		Having("COUNT(*)").Greater(10).
		Sql("mysql", true)
	require.NoError(t, err)
	want := "SELECT DISTINCT status, COUNT(*) AS cnt FROM `orders` GROUP BY `status` HAVING COUNT(*) > ?"
	assert.Equal(t, want, res.SQL)
	assert.Equal(t, []interface{}{10}, res.Bindings)
}

func TestHavingSecondCallJoinsWithAnd(t *testing.T) {
	res, err := Select("status").From("orders").
		GroupBy("status").
		Having("COUNT(*)").Greater(10).
		Having("SUM(total)").Less(1000).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "HAVING COUNT(*) > ? AND SUM(total) < ?")
	assert.Equal(t, []interface{}{10, 1000}, res.Bindings)
}

func TestAndAfterHavingContinuesHavingChain(t *testing.T) {
	res, err := Select("status").From("orders").
		Where("active").Equals(true).
		GroupBy("status").
		Having("COUNT(*)").Greater(10).
		And("SUM(total)").Less(1000).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "HAVING COUNT(*) > ? AND SUM(total) < ?")
	assert.Equal(t, []interface{}{true, 10, 1000}, res.Bindings)
}

func TestFromSubqueryAndSelectSubquery(t *testing.T) {
	derived := Select("id").From("active_users").Where("region").Equals("EU")
	scalar := Select("COUNT(*)").From("orders").Where("user_id").Equals(Raw("u.id"))

	res, err := Select("id").
		SelectSubquery(scalar, "order_count").
		FromSubquery(derived, "u").
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, (SELECT COUNT(*) FROM `orders` WHERE user_id = u.id) AS `order_count` FROM (SELECT id FROM `active_users` WHERE region = ?) AS `u`",
		res.SQL)
	assert.Equal(t, []interface{}{"EU"}, res.Bindings)
}

func TestJoinSubqueryAndPlainJoins(t *testing.T) {
	derived := Select("user_id, MAX(created_at) AS last_seen").From("logins").GroupBy("user_id")

	res, err := Select("u.id, l.last_seen").From("users", "u").
		JoinSubquery("LEFT JOIN", derived, "l", "l.user_id = u.id").
		Where("u.active").Equals(true).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "LEFT JOIN (SELECT user_id, MAX(created_at) AS last_seen FROM `logins` GROUP BY `user_id`) AS `l` ON l.user_id = u.id")
	assert.Equal(t, []interface{}{true}, res.Bindings)
}

func TestExistsAndNotExists(t *testing.T) {
	hasOrders := Select("1").From("orders").Where("orders.user_id").Equals(Raw("users.id"))
	res, err := Select("*").From("users").
		Exists(hasOrders).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE EXISTS (SELECT 1 FROM `orders` WHERE orders.user_id = users.id)", res.SQL)
	assert.Empty(t, res.Bindings)

	res, err = Select("*").From("users").
		NotExists(hasOrders).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE NOT EXISTS (SELECT 1 FROM `orders` WHERE orders.user_id = users.id)", res.SQL)
	assert.Empty(t, res.Bindings)
}

func TestInWithSubqueryBindingSplice(t *testing.T) {
	ids := Select("id").From("banned_users").Where("reason").Equals("fraud")
	res, err := Select("*").From("users").
		Where("id").In(ids).
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE id IN ((SELECT id FROM `banned_users` WHERE reason = ?))", res.SQL)
	assert.Equal(t, []interface{}{"fraud"}, res.Bindings)
}

func TestWindowInlineAndNamed(t *testing.T) {
	res, err := Select("id").From("employees").
		SelectWindow("ROW_NUMBER()", NewWindow().PartitionBy("dept").OrderBy("salary", "DESC"), "rn").
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, ROW_NUMBER() OVER (PARTITION BY `dept` ORDER BY `salary` DESC) AS `rn` FROM `employees`", res.SQL)

	res2, err := Select("id").From("employees").
		Window("w1", NewWindow().PartitionBy("dept")).
		SelectWindowRef("RANK()", "w1", "rnk").
		Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, RANK() OVER `w1` AS `rnk` FROM `employees` WINDOW `w1` AS (PARTITION BY `dept`)", res2.SQL)
}

func TestLimitOffsetSuppressedWhenOffsetZero(t *testing.T) {
	res, err := Select("id").From("t").Limit(10, 0).Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM `t` LIMIT 10", res.SQL)
}

func TestLimitOffsetEmittedWhenPositive(t *testing.T) {
	res, err := Select("id").From("t").Limit(10, 20).Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM `t` LIMIT 10 OFFSET 20", res.SQL)
}

func TestDialectSuppressionOnSelectNeverApplies(t *testing.T) {
	res, err := Select("*").From("users", "u").
		InnerJoin("orders", "o", "o.user_id = u.id").
		Where("u.active").Equals(true).
		OrderBy("u.id", "ASC").
		Limit(5).
		Sql("postgres", true)
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "INNER JOIN")
	assert.Contains(t, res.SQL, "ORDER BY")
	assert.Contains(t, res.SQL, "LIMIT 5")
}

func TestCompileIsPureAcrossRepeatedCalls(t *testing.T) {
	b := Select("*").From("users").Where("id").Equals(1)
	r1, err := b.Sql("mysql", true)
	require.NoError(t, err)
	r2, err := b.Sql("mysql", true)
	require.NoError(t, err)
	assert.Equal(t, r1.SQL, r2.SQL)
	assert.Equal(t, r1.Bindings, r2.Bindings)
}

func TestDebugCapturesLastCompile(t *testing.T) {
	b := Select("*").From("users").Where("id").Equals(5).Debug()
	res, err := b.Sql("mysql", true)
	require.NoError(t, err)
	info := b.LastDebugInfo()
	require.NotNil(t, info)
	assert.Equal(t, res.SQL, info.SQL)
	assert.Equal(t, res.Bindings, info.Bindings)
	assert.Equal(t, "mysql", info.Dialect)
}

func TestMissingFromFailsWithInvalidConfig(t *testing.T) {
	_, err := Select("*").Sql("mysql", true)
	if err == nil {
		t.Fatalf("expected error for missing FROM target")
	}
}
