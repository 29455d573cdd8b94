/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/fakedb"

	querypb "github.com/xelabs/go-mysqlstack/sqlparser/depends/query"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	result1 = &sqltypes.Result{
		RowsAffected: 2,
		Fields: []*querypb.Field{
			{
				Name: "id",
				Type: querypb.Type_INT32,
			},
			{
				Name: "name",
				Type: querypb.Type_VARCHAR,
			},
		},
		Rows: [][]sqltypes.Value{
			{
				sqltypes.MakeTrusted(querypb.Type_INT32, []byte("11")),
				sqltypes.MakeTrusted(querypb.Type_VARCHAR, []byte("1nice name")),
			},
			{
				sqltypes.MakeTrusted(querypb.Type_INT32, []byte("12")),
				sqltypes.MakeTrusted(querypb.Type_VARCHAR, []byte("12nice name")),
			},
		},
	}
)

// MockBackendConfigDefault mocks new backend config.
func MockBackendConfigDefault(name, addr string) *config.BackendConfig {
	return &config.BackendConfig{
		Name:           name,
		Address:        addr,
		User:           "mock",
		Password:       "pwd",
		DBName:         "sbtest",
		Charset:        "utf8",
		MaxConnections: 1024,
	}
}

// MockScatter used to mock a scatter with n fake backends, backend0...backend{n-1}.
func MockScatter(log *xlog.Log, n int) (*Scatter, *fakedb.DB, func()) {
	scatter := NewScatter(log)
	fakedb := fakedb.New(log, n)
	if err := scatter.LoadConfig(fakedb.BackendConfs()); err != nil {
		log.Panic("mock.scatter.load.config.error:%+v", err)
	}

	return scatter, fakedb, func() {
		scatter.Close()
		fakedb.Close()
	}
}

// MockClient mocks a client connection.
func MockClient(log *xlog.Log, addr string) (Connection, func()) {
	return MockClientWithConfig(log, MockBackendConfigDefault("", addr))
}

// MockClientWithConfig mocks a client with backendconfig.
func MockClientWithConfig(log *xlog.Log, conf *config.BackendConfig) (Connection, func()) {
	pool := NewPool(log, conf)
	conn := NewConnection(log, pool)
	if err := conn.Dial(); err != nil {
		log.Panic("mock.conn.with.config.error:%+v", err)
	}
	return conn, func() {
		conn.Close()
		pool.Close()
	}
}
