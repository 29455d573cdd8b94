/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package proxy

import (
	"github.com/radondb/shardctx/backend"
	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/fakedb"
	"github.com/radondb/shardctx/plugins"

	querypb "github.com/xelabs/go-mysqlstack/sqlparser/depends/query"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// MockSession is a Principal.
type MockSession struct {
	user   string
	schema string
}

// NewMockSession creates the principal.
func NewMockSession(user string, schema string) *MockSession {
	return &MockSession{user: user, schema: schema}
}

// User implements Principal.
func (s *MockSession) User() string {
	return s.user
}

// Schema implements Principal.
func (s *MockSession) Schema() string {
	return s.schema
}

// MockSchemataResult mocks the backend SCHEMATA rows, one per catalog.
func MockSchemataResult(catalogs ...string) *sqltypes.Result {
	fields := make([]*querypb.Field, 0, len(schemataColumns))
	for _, column := range schemataColumns {
		fields = append(fields, &querypb.Field{
			Name:     column,
			OrgName:  column,
			Table:    schemataTable,
			OrgTable: schemataTable,
			Type:     querypb.Type_VARCHAR,
		})
	}

	qr := &sqltypes.Result{Fields: fields}
	for _, catalog := range catalogs {
		qr.Rows = append(qr.Rows, []sqltypes.Value{
			sqltypes.NewVarChar("def"),
			sqltypes.NewVarChar(catalog),
			sqltypes.NewVarChar("utf8mb4"),
			sqltypes.NewVarChar("utf8mb4_general_ci"),
			sqltypes.NULL,
			sqltypes.NewVarChar("NO"),
		})
	}
	qr.RowsAffected = uint64(len(qr.Rows))
	return qr
}

// MockSchemaNameResult mocks the backend rows of 'select SCHEMA_NAME from information_schema.SCHEMATA'.
func MockSchemaNameResult(catalogs ...string) *sqltypes.Result {
	qr := &sqltypes.Result{
		Fields: []*querypb.Field{
			{
				Name:     schemaNameColumn,
				OrgName:  schemaNameColumn,
				Table:    schemataTable,
				OrgTable: schemataTable,
				Type:     querypb.Type_VARCHAR,
			},
		},
	}
	for _, catalog := range catalogs {
		qr.Rows = append(qr.Rows, []sqltypes.Value{sqltypes.NewVarChar(catalog)})
	}
	qr.RowsAffected = uint64(len(qr.Rows))
	return qr
}

// MockSpanner mocks a spanner on n fake backends, all with the catalog 'test'.
func MockSpanner(log *xlog.Log, n int, databases []*config.DatabaseConfig) (*Spanner, *fakedb.DB, func()) {
	scatter, fakedb, cleanup := backend.MockScatter(log, n)
	for _, conf := range fakedb.BackendConfs() {
		fakedb.SetCatalog(conf.Name, "test")
	}

	admin := *config.MockAdminConfig
	conf := &config.Config{
		Log:        config.MockLogConfig,
		Admin:      &admin,
		Federation: config.DefaultFederationConfig(),
		Backends:   fakedb.BackendConfs(),
		Databases:  databases,
		Users:      config.MockUsersConfig,
	}
	plugins := plugins.NewPlugin(log, conf)
	if err := plugins.Init(); err != nil {
		log.Panic("mock.spanner.plugins.init.error:%+v", err)
	}

	spanner := NewSpanner(log, conf, scatter, plugins)
	return spanner, fakedb, func() {
		spanner.Close()
		plugins.Close()
		cleanup()
	}
}
