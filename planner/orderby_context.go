/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package planner

import (
	"encoding/json"

	"github.com/radondb/shardctx/binder"
	"github.com/radondb/shardctx/dialect"

	"github.com/xelabs/go-mysqlstack/sqlparser"
)

// OrderByItem is one sort key of the merge.
type OrderByItem struct {
	Segment *binder.OrderByItemSegment

	// Index is the 0-based position in the select list, -1 if unknown.
	Index int
}

// newOrderByItem keeps the ordinal of a positional item, 'order by 2' is index 1.
func newOrderByItem(segment *binder.OrderByItemSegment) *OrderByItem {
	item := &OrderByItem{
		Segment: segment,
		Index:   -1,
	}
	if segment.Type == binder.IndexItem {
		item.Index = segment.Index - 1
	}
	return item
}

// Name returns the sort key text.
func (item *OrderByItem) Name() string {
	if item.Segment.Type == binder.ColumnItem {
		return item.Segment.Column.Name.String()
	}
	return sqlparser.String(item.Segment.Expr)
}

// OrderByContext is the sort order the merge stage uses to
// reconcile the rows streamed back from the backends.
type OrderByContext struct {
	Items []*OrderByItem

	// Generated is true if the order was not written by the user.
	Generated bool
}

// JSON returns the context info.
func (c *OrderByContext) JSON() string {
	type item struct {
		Field      string
		Direction  binder.Direction
		NullsOrder dialect.NullsOrder
		Index      int
	}
	type explain struct {
		OrderBys  []item `json:"OrderBy(s)"`
		Generated bool
	}

	exp := &explain{
		OrderBys:  make([]item, 0, len(c.Items)),
		Generated: c.Generated,
	}
	for _, it := range c.Items {
		exp.OrderBys = append(exp.OrderBys, item{
			Field:      it.Name(),
			Direction:  it.Segment.Direction,
			NullsOrder: it.Segment.NullsOrder,
			Index:      it.Index,
		})
	}
	bout, err := json.MarshalIndent(exp, "", "\t")
	if err != nil {
		return err.Error()
	}
	return string(bout)
}

// OrderByContextEngine creates the order by context of a select.
type OrderByContextEngine struct {
	nulls dialect.NullsOrder
}

// NewOrderByContextEngine creates the engine, nulls is the backend dialect default.
func NewOrderByContextEngine(nulls dialect.NullsOrder) *OrderByContextEngine {
	return &OrderByContextEngine{nulls: nulls}
}

// CreateOrderBy picks the first rule that applies:
// 1. the explicit 'order by', not generated.
// 2. the 'group by' items, generated.
// 3. distinct without 'group by': every column projection ascending, generated.
// 4. the (possibly empty) 'group by' items.
func (e *OrderByContextEngine) CreateOrderBy(stmt *binder.SelectStatement, groupBy *GroupByContext) *OrderByContext {
	if len(stmt.OrderBy) > 0 {
		items := make([]*OrderByItem, 0, len(stmt.OrderBy))
		for _, segment := range stmt.OrderBy {
			items = append(items, newOrderByItem(segment))
		}
		return &OrderByContext{Items: items}
	}

	if ctx := e.createOrderByForDistinctRow(stmt, groupBy); ctx != nil {
		return ctx
	}
	return &OrderByContext{
		Items:     groupBy.Items,
		Generated: len(groupBy.Items) > 0,
	}
}

func (e *OrderByContextEngine) createOrderByForDistinctRow(stmt *binder.SelectStatement, groupBy *GroupByContext) *OrderByContext {
	if len(groupBy.Items) > 0 || !stmt.Distinct {
		return nil
	}

	var items []*OrderByItem
	for _, projection := range stmt.Projections {
		switch p := projection.(type) {
		case *binder.ColumnProjection:
			items = append(items, &OrderByItem{
				Segment: &binder.OrderByItemSegment{
					Type:       binder.ColumnItem,
					Column:     p.Column,
					Expr:       p.Column,
					Direction:  binder.ASC,
					NullsOrder: e.nulls,
				},
				Index: len(items),
			})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &OrderByContext{Items: items, Generated: true}
}
