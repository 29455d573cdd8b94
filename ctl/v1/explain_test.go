/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"testing"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/ant0ine/go-json-rest/rest/test"
	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/xlog"
)

func TestCtlV1ExplainInsert(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Post("/v1/explain/insert", ExplainInsertHandler(log)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	{
		p := &explainParams{
			Query: "insert into t(a,b) values(1,2),(3,4)",
			Route: "b0.t0;b1.t1",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/explain/insert", p))
		recorded.CodeIs(200)
		got := recorded.Recorder.Body.String()
		assert.Contains(t, got, `"Value":"(1, 2)"`)
		assert.Contains(t, got, `"b1.t1"`)
	}

	{
		p := &explainParams{
			Query: "select 1",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/explain/insert", p))
		recorded.CodeIs(200)
		assert.Contains(t, recorded.Recorder.Body.String(), "explain.insert.query[select 1].is.not.insert")
	}

	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/explain/insert", nil))
		recorded.CodeIs(500)
	}
}

func TestCtlV1ExplainOrderBy(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Post("/v1/explain/orderby", ExplainOrderByHandler(log)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	// Default dialect.
	{
		p := map[string]string{
			"query": "select distinct a from t",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/explain/orderby", p))
		recorded.CodeIs(200)
		got := recorded.Recorder.Body.String()
		assert.Contains(t, got, `"NullsOrder":"FIRST"`)
		assert.Contains(t, got, `"Generated":true`)
	}

	{
		p := &explainParams{
			Query:   "select a from t order by a",
			Dialect: "Oracle",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/explain/orderby", p))
		recorded.CodeIs(200)
		assert.Contains(t, recorded.Recorder.Body.String(), `"NullsOrder":"LAST"`)
	}

	{
		p := &explainParams{
			Query:   "select a from t",
			Dialect: "xx",
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("POST", "http://localhost/v1/explain/orderby", p))
		recorded.CodeIs(200)
		assert.Contains(t, recorded.Recorder.Body.String(), "dialect[xx].can.not.be.found")
	}
}
