/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package binder

import (
	"strconv"

	"github.com/radondb/shardctx/dialect"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

// BindSelect binds the select ast.
// The MySQL grammar has no 'nulls first/last', every item takes the dialect default.
func BindSelect(node *sqlparser.Select, nulls dialect.NullsOrder) (*SelectStatement, error) {
	stmt := &SelectStatement{
		Distinct: node.Distinct != "",
	}

	for _, expr := range node.SelectExprs {
		projection, err := bindProjection(expr)
		if err != nil {
			return nil, err
		}
		stmt.Projections = append(stmt.Projections, projection)
	}

	for _, expr := range node.GroupBy {
		item, err := bindOrderByItem(expr, ASC, nulls)
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = append(stmt.GroupBy, item)
	}

	for _, order := range node.OrderBy {
		direction := ASC
		if order.Direction == sqlparser.DescScr {
			direction = DESC
		}
		item, err := bindOrderByItem(order.Expr, direction, nulls)
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = append(stmt.OrderBy, item)
	}
	return stmt, nil
}

func bindProjection(expr sqlparser.SelectExpr) (Projection, error) {
	switch expr := expr.(type) {
	case *sqlparser.StarExpr:
		return &ShorthandProjection{Owner: expr.TableName.Name.String()}, nil
	case *sqlparser.AliasedExpr:
		alias := expr.As.String()
		if col, ok := unwrapParen(expr.Expr).(*sqlparser.ColName); ok {
			return &ColumnProjection{Column: col, Alias: alias}, nil
		}
		return &ExpressionProjection{Expr: expr.Expr, Alias: alias}, nil
	default:
		return nil, errors.Errorf("unsupported: select.expr[%s]", sqlparser.String(expr))
	}
}

func bindOrderByItem(expr sqlparser.Expr, direction Direction, nulls dialect.NullsOrder) (*OrderByItemSegment, error) {
	item := &OrderByItemSegment{
		Type:       ExpressionItem,
		Expr:       expr,
		Direction:  direction,
		NullsOrder: nulls,
	}

	switch e := unwrapParen(expr).(type) {
	case *sqlparser.ColName:
		item.Type = ColumnItem
		item.Column = e
	case *sqlparser.SQLVal:
		if e.Type != sqlparser.IntVal {
			break
		}
		idx, err := strconv.Atoi(string(e.Val))
		if err != nil || idx < 1 {
			return nil, errors.Errorf("unsupported: orderby.index[%s].out.of.range", string(e.Val))
		}
		item.Type = IndexItem
		item.Index = idx
	}
	return item, nil
}

func unwrapParen(expr sqlparser.Expr) sqlparser.Expr {
	for {
		paren, ok := expr.(*sqlparser.ParenExpr)
		if !ok {
			return expr
		}
		expr = paren.Expr
	}
}

// ProjectionName returns the output name of a projection.
func ProjectionName(projection Projection) string {
	switch p := projection.(type) {
	case *ColumnProjection:
		if p.Alias != "" {
			return p.Alias
		}
		return p.Column.Name.String()
	case *ShorthandProjection:
		if p.Owner != "" {
			return p.Owner + ".*"
		}
		return "*"
	case *ExpressionProjection:
		if p.Alias != "" {
			return p.Alias
		}
		return sqlparser.String(p.Expr)
	}
	return ""
}
