/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package planner

import (
	"github.com/radondb/shardctx/binder"
)

// GroupByContext holds the 'group by' items of a select.
type GroupByContext struct {
	Items []*OrderByItem
}

// NewGroupByContext creates the group by context from the bound select.
func NewGroupByContext(stmt *binder.SelectStatement) *GroupByContext {
	items := make([]*OrderByItem, 0, len(stmt.GroupBy))
	for _, segment := range stmt.GroupBy {
		items = append(items, newOrderByItem(segment))
	}
	return &GroupByContext{Items: items}
}
