/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package proxy

import (
	"github.com/radondb/shardctx/binder"
	"github.com/radondb/shardctx/dialect"
	"github.com/radondb/shardctx/planner"
	"github.com/radondb/shardctx/rewrite"
	"github.com/radondb/shardctx/router"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

// ExplainInsert builds the insert values token of the query.
// The route is in the 'backend.table,...;...' form, one group per row.
func ExplainInsert(query string, route string) (*rewrite.InsertValuesToken, error) {
	node, err := binder.Parse(query)
	if err != nil {
		return nil, err
	}
	insert, ok := node.(*sqlparser.Insert)
	if !ok {
		return nil, errors.Errorf("explain.insert.query[%s].is.not.insert", query)
	}
	stmt, err := binder.BindInsert(query, insert)
	if err != nil {
		return nil, err
	}
	rc, err := router.ParseRouteContext(route)
	if err != nil {
		return nil, err
	}

	token, ok := rewrite.InsertValuesTokenGenerator{}.Generate(stmt, rc)
	if !ok {
		return nil, errors.Errorf("explain.insert.query[%s].has.no.values", query)
	}
	return token, nil
}

// ExplainOrderBy builds the order by context of the select for the database engine.
func ExplainOrderBy(query string, engine string) (*planner.OrderByContext, error) {
	nulls, err := dialect.DefaultNullsOrder(engine)
	if err != nil {
		return nil, err
	}
	node, err := binder.Parse(query)
	if err != nil {
		return nil, err
	}
	sel, ok := node.(*sqlparser.Select)
	if !ok {
		return nil, errors.Errorf("explain.orderby.query[%s].is.not.select", query)
	}
	stmt, err := binder.BindSelect(sel, nulls)
	if err != nil {
		return nil, err
	}
	return planner.NewOrderByContextEngine(nulls).CreateOrderBy(stmt, planner.NewGroupByContext(stmt)), nil
}
