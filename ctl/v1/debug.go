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

	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
)

// ConfigzHandler impl.
func ConfigzHandler(log *xlog.Log, spanner *proxy.Spanner) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		configzHandler(log, spanner, w, r)
	}
	return f
}

// configzHandler shows the config without the backend credentials.
func configzHandler(log *xlog.Log, spanner *proxy.Spanner, w rest.ResponseWriter, r *rest.Request) {
	type configz struct {
		Federation *config.FederationConfig `json:"federation"`
		Databases  []*config.DatabaseConfig `json:"databases"`
		Users      []*config.UserConfig     `json:"users"`
	}
	conf := spanner.Conf()
	w.WriteJson(&configz{
		Federation: conf.Federation,
		Databases:  conf.Databases,
		Users:      conf.Users,
	})
}

// BackendzHandler impl.
func BackendzHandler(log *xlog.Log, spanner *proxy.Spanner) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		backendzHandler(log, spanner, w, r)
	}
	return f
}

// backendzHandler shows the pools, sorted by backend name.
func backendzHandler(log *xlog.Log, spanner *proxy.Spanner, w rest.ResponseWriter, r *rest.Request) {
	scatter := spanner.Scatter()
	pools := make([]json.RawMessage, 0, 8)
	for _, name := range scatter.Backends() {
		pool, err := scatter.Pool(name)
		if err != nil {
			log.Warning("api.v1.backendz.backend[%s].error:%v", name, err)
			continue
		}
		pools = append(pools, json.RawMessage(pool.JSON()))
	}
	w.WriteJson(pools)
}
