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

func TestCtlV1Ping(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	spanner, _, cleanup := proxy.MockSpanner(log, 2, config.MockDatabasesConfig)
	defer cleanup()

	api := rest.NewApi()
	router, _ := rest.MakeRouter(
		rest.Get("/v1/shardctx/ping", PingHandler(log, spanner)),
	)
	api.SetApp(router)
	handler := api.MakeHandler()

	{
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("GET", "http://localhost/v1/shardctx/ping", nil))
		recorded.CodeIs(200)
	}

	// A storage unit is down.
	{
		err := spanner.Scatter().Add(&config.BackendConfig{
			Name:           "backend9",
			Address:        "127.0.0.1:1",
			User:           "mock",
			Password:       "pwd",
			DBName:         "test",
			Charset:        "utf8",
			MaxConnections: 2,
		})
		assert.Nil(t, err)
		recorded := test.RunRequest(t, handler, test.MakeSimpleRequest("GET", "http://localhost/v1/shardctx/ping", nil))
		recorded.CodeIs(503)
	}
}
