/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"encoding/json"
	"testing"

	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/ant0ine/go-json-rest/rest/test"
	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/xlog"
)

func TestCtlV1Schemata(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, fakedbs, cleanup := proxy.MockSpanner(log, 2, config.MockDatabasesConfig)
	defer cleanup()

	fakedbs.AddQuery("select SCHEMA_NAME from information_schema.SCHEMATA", proxy.MockSchemaNameResult("mysql", "test"))

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Post("/v1/shardctx/schemata", SchemataHandler(log, spanner)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	// root.
	{
		p := &schemataParams{
			User:  "root",
			Query: "select SCHEMA_NAME from information_schema.SCHEMATA",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardctx/schemata", p))
		recorded.CodeIs(200)

		rsp := &schemataResp{}
		err := json.Unmarshal(recorded.Recorder.Body.Bytes(), rsp)
		assert.Nil(t, err)
		assert.Equal(t, []string{"SCHEMA_NAME"}, rsp.Columns)
		assert.Equal(t, [][]string{{"db1"}, {"db2"}, {"logical_db"}}, rsp.Rows)
		assert.Equal(t, "scatter", rsp.Mode)
		assert.Equal(t, 2, len(rsp.Querys))
		assert.Equal(t, "backend0", rsp.Querys[0].Backend)
	}

	// mock, current schema pinned.
	{
		p := &schemataParams{
			User:   "mock",
			Schema: "logical_db",
			Query:  "select SCHEMA_NAME from information_schema.SCHEMATA where SCHEMA_NAME = database()",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardctx/schemata", p))
		recorded.CodeIs(200)

		rsp := &schemataResp{}
		err := json.Unmarshal(recorded.Recorder.Body.Bytes(), rsp)
		assert.Nil(t, err)
		assert.Equal(t, [][]string{{"logical_db"}}, rsp.Rows)
		assert.Equal(t, "single", rsp.Mode)
		assert.Equal(t, 0, len(rsp.Querys))
	}

	// mock, current schema denied.
	{
		p := &schemataParams{
			User:   "mock",
			Schema: "db2",
			Query:  "select SCHEMA_NAME from information_schema.SCHEMATA",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardctx/schemata", p))
		recorded.CodeIs(500)
		assert.Contains(t, recorded.Recorder.Body.String(), "Access denied for user 'mock' to database 'db2'")
	}

	// Unsupported.
	{
		p := &schemataParams{
			User:  "root",
			Query: "select * from information_schema.TABLES",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardctx/schemata", p))
		recorded.CodeIs(500)
		assert.Contains(t, recorded.Recorder.Body.String(), "unsupported: information_schema.table[tables]")
	}

	// Empty payload.
	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/shardctx/schemata", nil))
		recorded.CodeIs(500)
	}
}
