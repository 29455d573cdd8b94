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

	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/ant0ine/go-json-rest/rest/test"
	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/xlog"
)

func TestCtlV1Throttle(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, _, cleanup := proxy.MockSpanner(log, 1, config.MockDatabasesConfig)
	defer cleanup()

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Get("/v1/shardctx/throttle", ThrottlezHandler(log, spanner)),
		rest.Put("/v1/shardctx/throttle", ThrottleHandler(log, spanner)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	{
		p := &throttleParams{
			Limits: 100,
		}
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("PUT", "http://localhost/v1/shardctx/throttle", p))
		recorded.CodeIs(200)
		assert.Equal(t, 100, spanner.MaxPassRate())
	}

	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("GET", "http://localhost/v1/shardctx/throttle", nil))
		recorded.CodeIs(200)
		recorded.BodyIs(`{"limits":100}`)
	}
}

func TestCtlV1ThrottleError(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, _, cleanup := proxy.MockSpanner(log, 1, config.MockDatabasesConfig)
	defer cleanup()

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Put("/v1/shardctx/throttle", ThrottleHandler(log, spanner)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("PUT", "http://localhost/v1/shardctx/throttle", nil))
	recorded.CodeIs(500)
	assert.Equal(t, 0, spanner.MaxPassRate())
}
