/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package ctl

import (
	v1 "github.com/radondb/shardctx/ctl/v1"

	"github.com/ant0ine/go-json-rest/rest"
)

// NewRouter creates the new router.
func (admin *Admin) NewRouter() (rest.App, error) {
	log := admin.log
	spanner := admin.spanner

	return rest.MakeRouter(
		// shardctx
		rest.Get("/v1/shardctx/ping", v1.PingHandler(log, spanner)),
		rest.Get("/v1/shardctx/throttle", v1.ThrottlezHandler(log, spanner)),
		rest.Put("/v1/shardctx/throttle", v1.ThrottleHandler(log, spanner)),
		rest.Post("/v1/shardctx/schemata", v1.SchemataHandler(log, spanner)),

		// explain
		rest.Post("/v1/explain/insert", v1.ExplainInsertHandler(log)),
		rest.Post("/v1/explain/orderby", v1.ExplainOrderByHandler(log)),

		// debug
		rest.Get("/v1/debug/configz", v1.ConfigzHandler(log, spanner)),
		rest.Get("/v1/debug/backendz", v1.BackendzHandler(log, spanner)),
	)
}
