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
	"testing"
	"time"

	"github.com/radondb/shardctx/config"

	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
	"github.com/xelabs/go-mysqlstack/xlog"
)

func TestSpannerSelectSchemata(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, fakedb, cleanup := MockSpanner(log, 2, config.MockDatabasesConfig)
	defer cleanup()

	fakedb.AddQuery("select * from information_schema.SCHEMATA", MockSchemataResult("mysql", "test"))

	// Scenario: all the databases.
	{
		qr, err := spanner.Query(context.Background(), NewMockSession("root", ""), "select * from information_schema.SCHEMATA")
		assert.Nil(t, err)
		assert.Equal(t, uint64(3), qr.RowsAffected)
		assert.Equal(t, "db1", qr.Rows[0][1].ToString())
		assert.Equal(t, "db2", qr.Rows[1][1].ToString())
		assert.Equal(t, "logical_db", qr.Rows[2][1].ToString())
	}

	// Scenario: pinned database without storage.
	{
		qr, err := spanner.Query(context.Background(), NewMockSession("root", ""), "SELECT SCHEMA_NAME FROM information_schema.SCHEMATA WHERE SCHEMA_NAME='logical_db'")
		assert.Nil(t, err)
		want := &sqltypes.Result{
			Fields:       qr.Fields,
			Rows:         [][]sqltypes.Value{{sqltypes.NewVarChar("logical_db")}},
			RowsAffected: 1,
		}
		assert.Equal(t, want, qr)
	}

	// Unqualified table in the current schema.
	{
		qr, err := spanner.Query(context.Background(), NewMockSession("mock", "information_schema"), "select SCHEMA_NAME from schemata where SCHEMA_NAME = 'logical_db'")
		assert.Nil(t, err)
		assert.Equal(t, uint64(1), qr.RowsAffected)
	}

	// Lower-cased names.
	{
		qr, err := spanner.Query(context.Background(), NewMockSession("root", ""), "select * from INFORMATION_SCHEMA.schemata where schema_name = 'logical_db'")
		assert.Nil(t, err)
		assert.Equal(t, uint64(1), qr.RowsAffected)
	}
}

func TestSpannerSelectSystemErrors(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, _, cleanup := MockSpanner(log, 1, config.MockDatabasesConfig)
	defer cleanup()

	tcases := []struct {
		query string
		err   string
	}{
		{
			query: "selec * from information_schema.SCHEMATA",
			err:   "query[selec * from information_schema.SCHEMATA].parse",
		},
		{
			query: "insert into t values(1)",
			err:   "unsupported: query[insert into t values(1)].is.not.select",
		},
		{
			query: "select * from information_schema.SCHEMATA, information_schema.TABLES",
			err:   "unsupported: query[select * from information_schema.SCHEMATA, information_schema.TABLES].from.must.be.one.table",
		},
		{
			query: "select * from (select 1) as t",
			err:   "unsupported: query[select * from (select 1) as t].from.must.be.one.table",
		},
		{
			query: "select * from db1.t",
			err:   "unsupported: database[db1].is.not.system.database",
		},
		{
			query: "select * from mysql.user",
			err:   "unsupported: system.database[mysql]",
		},
		{
			query: "select * from information_schema.TABLES",
			err:   "unsupported: information_schema.table[tables]",
		},
	}

	for _, tcase := range tcases {
		_, err := spanner.Query(context.Background(), NewMockSession("root", "db1"), tcase.query)
		assert.NotNil(t, err, tcase.query)
		assert.Contains(t, err.Error(), tcase.err, tcase.query)
	}
}

func TestSpannerSchemata(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, fakedb, cleanup := MockSpanner(log, 2, config.MockDatabasesConfig)
	defer cleanup()

	fakedb.AddQuery("select DEFAULT_CHARACTER_SET_NAME, SCHEMA_NAME as shardctx_schema_name from information_schema.SCHEMATA", &sqltypes.Result{
		Fields: varcharFields("DEFAULT_CHARACTER_SET_NAME", "shardctx_schema_name"),
		Rows: [][]sqltypes.Value{
			varcharRow("utf8mb4", "test"),
		},
	})

	qr, err := spanner.Schemata(context.Background(), NewMockSession("mock", ""), "select DEFAULT_CHARACTER_SET_NAME from information_schema.SCHEMATA")
	assert.Nil(t, err)
	assert.Equal(t, []string{"db1", "logical_db"}, qr.Schemas())
	assert.Equal(t, 1, len(qr.Request.Querys))
	assert.Equal(t, "backend0", qr.Request.Querys[0].Backend)

	_, err = spanner.Schemata(context.Background(), NewMockSession("mock", ""), "select * from information_schema.TABLES")
	assert.NotNil(t, err)
}

func TestSpannerThrottle(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, _, cleanup := MockSpanner(log, 1, []*config.DatabaseConfig{{Name: "logical_db"}})
	defer cleanup()

	query := "select * from information_schema.SCHEMATA"
	spanner.SetMaxPassRate(1)
	_, err := spanner.Query(context.Background(), NewMockSession("root", ""), query)
	assert.Nil(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = spanner.Query(ctx, NewMockSession("root", ""), query)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "spanner.throttle.limits[1]")

	spanner.SetMaxPassRate(0)
	qr, err := spanner.Query(context.Background(), NewMockSession("root", ""), query)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), qr.RowsAffected)
}

func TestSpannerCheckSession(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, _, cleanup := MockSpanner(log, 1, config.MockDatabasesConfig)
	defer cleanup()

	query := "select SCHEMA_NAME from information_schema.SCHEMATA where SCHEMA_NAME = database()"
	want := "Access denied for user 'mock' to database 'db2' (errno 1044) (sqlstate 42000)"

	// Current database the user can not see.
	{
		_, err := spanner.Query(context.Background(), NewMockSession("mock", "db2"), query)
		assert.NotNil(t, err)
		assert.Equal(t, want, err.Error())

		_, err = spanner.Schemata(context.Background(), NewMockSession("mock", "db2"), query)
		assert.NotNil(t, err)
		assert.Equal(t, want, err.Error())
	}

	// Granted and system databases.
	{
		qr, err := spanner.Schemata(context.Background(), NewMockSession("mock", "logical_db"), query)
		assert.Nil(t, err)
		assert.Equal(t, []string{"logical_db"}, qr.Schemas())

		_, err = spanner.Query(context.Background(), NewMockSession("mock", "INFORMATION_SCHEMA"), "select SCHEMA_NAME from information_schema.SCHEMATA where SCHEMA_NAME = 'logical_db'")
		assert.Nil(t, err)
	}
}
