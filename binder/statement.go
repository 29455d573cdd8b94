/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package binder

import (
	"github.com/radondb/shardctx/dialect"

	"github.com/xelabs/go-mysqlstack/sqlparser"
)

// Segment is an inclusive [Start, Stop] byte range of the raw query.
type Segment struct {
	Start int
	Stop  int
}

// InsertValueContext is one logical row of an INSERT.
type InsertValueContext struct {
	Expressions sqlparser.Exprs
}

// InsertStatement is a bound INSERT.
// Rows and ValuesSegments are both in source order, one segment per VALUES tuple.
type InsertStatement struct {
	Query          string
	Table          sqlparser.TableName
	Columns        sqlparser.Columns
	Rows           []*InsertValueContext
	ValuesSegments []Segment
}

// Projection is one item of the select list.
// The implementations are ColumnProjection, ShorthandProjection and ExpressionProjection.
type Projection interface {
	iProjection()
}

// ColumnProjection is a direct column reference: 'select a' or 'select t.a as b'.
type ColumnProjection struct {
	Column *sqlparser.ColName
	Alias  string
}

// ShorthandProjection is a wildcard: 'select *' or 'select t.*'.
type ShorthandProjection struct {
	Owner string
}

// ExpressionProjection is everything else: 'select a+b', 'select count(*)'.
type ExpressionProjection struct {
	Expr  sqlparser.Expr
	Alias string
}

func (*ColumnProjection) iProjection()     {}
func (*ShorthandProjection) iProjection()  {}
func (*ExpressionProjection) iProjection() {}

// Direction type.
type Direction string

const (
	// ASC enum.
	ASC Direction = "ASC"

	// DESC enum.
	DESC Direction = "DESC"
)

// OrderByItemType type.
type OrderByItemType int

const (
	// ColumnItem orders by a column: 'order by a'.
	ColumnItem OrderByItemType = iota

	// IndexItem orders by a select list position: 'order by 2'.
	IndexItem

	// ExpressionItem orders by an expression: 'order by a+1'.
	ExpressionItem
)

// OrderByItemSegment is one ORDER BY or GROUP BY item as written.
type OrderByItemSegment struct {
	Type OrderByItemType

	// Column is set for ColumnItem.
	Column *sqlparser.ColName

	// Index is the 1-based position as written, set for IndexItem.
	Index int

	// Expr is the original expression.
	Expr sqlparser.Expr

	Direction  Direction
	NullsOrder dialect.NullsOrder
}

// SelectStatement is a bound SELECT.
type SelectStatement struct {
	Distinct    bool
	Projections []Projection
	GroupBy     []*OrderByItemSegment
	OrderBy     []*OrderByItemSegment
}
