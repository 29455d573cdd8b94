/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package rewrite

import (
	"github.com/radondb/shardctx/binder"
	"github.com/radondb/shardctx/router"
)

// InsertValuesTokenGenerator generates the values token of a sharding insert.
// It holds no state, the route is passed on every call.
type InsertValuesTokenGenerator struct{}

// IsGenerateSQLToken reports whether the statement is an insert with values.
func (g InsertValuesTokenGenerator) IsGenerateSQLToken(stmt interface{}) bool {
	insert, ok := stmt.(*binder.InsertStatement)
	return ok && len(insert.ValuesSegments) > 0
}

// GenerateSQLToken binds the i-th row to the i-th data node set of the route.
// The caller must check IsGenerateSQLToken first.
func (g InsertValuesTokenGenerator) GenerateSQLToken(stmt *binder.InsertStatement, route *router.RouteContext) *InsertValuesToken {
	start, stop := valuesSpan(stmt.ValuesSegments)
	token := &InsertValuesToken{
		Start:        start,
		Stop:         stop,
		InsertValues: make([]*InsertValue, 0, len(stmt.Rows)),
	}
	for i, row := range stmt.Rows {
		token.InsertValues = append(token.InsertValues, &InsertValue{
			Expressions: row.Expressions,
			DataNodes:   route.DataNodes(i),
		})
	}
	return token
}

// Generate runs the generator when it applies.
func (g InsertValuesTokenGenerator) Generate(stmt interface{}, route *router.RouteContext) (*InsertValuesToken, bool) {
	if !g.IsGenerateSQLToken(stmt) {
		return nil, false
	}
	return g.GenerateSQLToken(stmt.(*binder.InsertStatement), route), true
}

func valuesSpan(segments []binder.Segment) (int, int) {
	if len(segments) == 0 {
		panic("rewrite.insert.values.segments.is.empty")
	}
	start, stop := segments[0].Start, segments[0].Stop
	for _, seg := range segments[1:] {
		if seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > stop {
			stop = seg.Stop
		}
	}
	return start, stop
}
