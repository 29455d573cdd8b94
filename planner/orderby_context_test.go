/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package planner

import (
	"testing"

	"github.com/radondb/shardctx/binder"
	"github.com/radondb/shardctx/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

func bindSelect(t *testing.T, query string, nulls dialect.NullsOrder) *binder.SelectStatement {
	tree, err := sqlparser.Parse(query)
	assert.Nil(t, err)
	stmt, err := binder.BindSelect(tree.(*sqlparser.Select), nulls)
	assert.Nil(t, err)
	return stmt
}

func createOrderBy(t *testing.T, query string, nulls dialect.NullsOrder) *OrderByContext {
	stmt := bindSelect(t, query, nulls)
	return NewOrderByContextEngine(nulls).CreateOrderBy(stmt, NewGroupByContext(stmt))
}

type orderByWant struct {
	name      string
	direction binder.Direction
	index     int
}

func checkOrderBy(t *testing.T, want []orderByWant, got *OrderByContext) {
	assert.Equal(t, len(want), len(got.Items))
	for i, w := range want {
		if i >= len(got.Items) {
			break
		}
		assert.Equal(t, w.name, got.Items[i].Name())
		assert.Equal(t, w.direction, got.Items[i].Segment.Direction)
		assert.Equal(t, w.index, got.Items[i].Index)
	}
}

func TestOrderByContextDistinct(t *testing.T) {
	ctx := createOrderBy(t, "select distinct a,b from t", dialect.NullsFirst)
	assert.True(t, ctx.Generated)
	checkOrderBy(t, []orderByWant{
		{"a", binder.ASC, 0},
		{"b", binder.ASC, 1},
	}, ctx)
	for _, item := range ctx.Items {
		assert.Equal(t, binder.ColumnItem, item.Segment.Type)
		assert.Equal(t, dialect.NullsFirst, item.Segment.NullsOrder)
	}
}

func TestOrderByContextDistinctSkipsExpressions(t *testing.T) {
	ctx := createOrderBy(t, "select distinct a+1, b, count(c), t.d as x, * from t", dialect.NullsLast)
	assert.True(t, ctx.Generated)
	checkOrderBy(t, []orderByWant{
		{"b", binder.ASC, 0},
		{"d", binder.ASC, 1},
	}, ctx)
	for _, item := range ctx.Items {
		assert.Equal(t, dialect.NullsLast, item.Segment.NullsOrder)
	}
}

func TestOrderByContextDistinctNoColumns(t *testing.T) {
	querys := []string{
		"select distinct (a+b) from t",
		"select distinct * from t",
		"select distinct count(*) from t",
	}
	for _, query := range querys {
		ctx := createOrderBy(t, query, dialect.NullsFirst)
		assert.NotNil(t, ctx, query)
		assert.False(t, ctx.Generated, query)
		assert.Equal(t, 0, len(ctx.Items), query)
	}
}

func TestOrderByContextExplicit(t *testing.T) {
	querys := []string{
		"select distinct a,b from t order by b desc, 1",
		"select a,b from t group by a order by b desc, 1",
		"select distinct a,b from t group by a,b order by b desc, 1 asc",
	}
	for _, query := range querys {
		ctx := createOrderBy(t, query, dialect.NullsFirst)
		assert.False(t, ctx.Generated, query)
		checkOrderBy(t, []orderByWant{
			{"b", binder.DESC, -1},
			{"1", binder.ASC, 0},
		}, ctx)
		assert.Equal(t, binder.IndexItem, ctx.Items[1].Segment.Type)
	}
}

func TestOrderByContextGroupBy(t *testing.T) {
	querys := []string{
		"select a,b,count(*) from t group by b,a",
		"select distinct a,b,count(*) from t group by b,a",
	}
	for _, query := range querys {
		ctx := createOrderBy(t, query, dialect.NullsFirst)
		assert.True(t, ctx.Generated, query)
		checkOrderBy(t, []orderByWant{
			{"b", binder.ASC, -1},
			{"a", binder.ASC, -1},
		}, ctx)
	}
}

func TestOrderByContextGroupByIndex(t *testing.T) {
	ctx := createOrderBy(t, "select a,b from t group by 2", dialect.NullsFirst)
	assert.True(t, ctx.Generated)
	checkOrderBy(t, []orderByWant{
		{"2", binder.ASC, 1},
	}, ctx)
}

func TestOrderByContextEmpty(t *testing.T) {
	querys := []string{
		"select a,b from t",
		"select * from t where a=1",
	}
	for _, query := range querys {
		ctx := createOrderBy(t, query, dialect.NullsFirst)
		assert.NotNil(t, ctx, query)
		assert.False(t, ctx.Generated, query)
		assert.Equal(t, 0, len(ctx.Items), query)
	}
}

func TestOrderByContextJSON(t *testing.T) {
	want := `{
	"OrderBy(s)": [
		{
			"Field": "a",
			"Direction": "ASC",
			"NullsOrder": "FIRST",
			"Index": 0
		},
		{
			"Field": "b",
			"Direction": "ASC",
			"NullsOrder": "FIRST",
			"Index": 1
		}
	],
	"Generated": true
}`
	ctx := createOrderBy(t, "select distinct a,b from t", dialect.NullsFirst)
	assert.Equal(t, want, ctx.JSON())
}
