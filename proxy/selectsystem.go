/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package proxy

import (
	"context"
	"strings"

	"github.com/radondb/shardctx/plugins/privilege"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
)

// HandleSelectSystem used to handle the system database(information_schema etc.) select command.
// An unqualified table is looked up in the current schema of the principal.
func (spanner *Spanner) HandleSelectSystem(ctx context.Context, principal Principal, query string, node sqlparser.Statement) (*sqltypes.Result, error) {
	qr, err := spanner.selectSystem(ctx, principal, query, node)
	if err != nil {
		return nil, err
	}
	return qr.ToSQLResult(), nil
}

func (spanner *Spanner) selectSystem(ctx context.Context, principal Principal, query string, node sqlparser.Statement) (*Result, error) {
	log := spanner.log
	if err := spanner.throttle.Acquire(ctx); err != nil {
		return nil, errors.Wrapf(err, "spanner.throttle.limits[%d]", spanner.throttle.Limits())
	}
	ast, ok := node.(*sqlparser.Select)
	if !ok {
		return nil, errors.Errorf("unsupported: query[%s].is.not.select", query)
	}
	if len(ast.From) != 1 {
		return nil, errors.Errorf("unsupported: query[%s].from.must.be.one.table", query)
	}
	aliasTableExpr, ok := ast.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return nil, errors.Errorf("unsupported: query[%s].from.must.be.one.table", query)
	}
	tb, ok := aliasTableExpr.Expr.(sqlparser.TableName)
	if !ok {
		return nil, errors.Errorf("unsupported: query[%s].from.must.be.one.table", query)
	}

	database := tb.Qualifier.String()
	if database == "" {
		database = principal.Schema()
	}
	table := tb.Name.String()
	log.Debug("select.system:table:%v, db:%v", table, database)

	if !privilege.IsSystemDatabase(database) {
		return nil, errors.Errorf("unsupported: database[%s].is.not.system.database", database)
	}
	switch strings.ToUpper(database) {
	case "INFORMATION_SCHEMA":
		return spanner.handleSelectInformationschema(ctx, principal, table, ast)
	}
	return nil, errors.Errorf("unsupported: system.database[%s]", database)
}

// handleSelectInformationschema -- used to handle the INFORMATION_SCHEMA query.
// If the query is:
// > select * from information_schema.SCHEMATA where SCHEMA_NAME='db1'
// The SCHEMA_NAME value is replaced by the catalog of the db1 backend, and the
// rows come back with SCHEMA_NAME 'db1'.
func (spanner *Spanner) handleSelectInformationschema(ctx context.Context, principal Principal, tbl string, node *sqlparser.Select) (*Result, error) {
	if !strings.EqualFold(tbl, schemataTable) {
		return nil, errors.Errorf("unsupported: information_schema.table[%s]", tbl)
	}

	executor := NewSchemataExecutor(spanner.log, spanner.conf.Federation, spanner.meta, spanner.plugins.PlugPrivilege(), node)
	return executor.Execute(ctx, principal)
}
