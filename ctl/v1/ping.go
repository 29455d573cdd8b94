/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"context"
	"net/http"

	"github.com/radondb/shardctx/backend"
	"github.com/radondb/shardctx/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
	"golang.org/x/sync/errgroup"
)

// PingHandler impl.
func PingHandler(log *xlog.Log, spanner *proxy.Spanner) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		pingHandler(log, spanner, w, r)
	}
	return f
}

// pingHandler pings every storage unit.
func pingHandler(log *xlog.Log, spanner *proxy.Spanner, w rest.ResponseWriter, r *rest.Request) {
	g, ctx := errgroup.WithContext(context.Background())
	for _, pool := range spanner.Scatter().PoolClone() {
		pool := pool
		g.Go(func() error {
			return pool.WithConnection(ctx, func(conn backend.Connection) error {
				return conn.Ping()
			})
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("api.v1.ping.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusServiceUnavailable)
	}
}
