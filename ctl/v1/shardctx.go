/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package v1

import (
	"net/http"

	"github.com/radondb/shardctx/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
)

type throttleParams struct {
	Limits int `json:"limits"`
}

// ThrottleHandler impl.
func ThrottleHandler(log *xlog.Log, spanner *proxy.Spanner) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		throttleHandler(log, spanner, w, r)
	}
	return f
}

func throttleHandler(log *xlog.Log, spanner *proxy.Spanner, w rest.ResponseWriter, r *rest.Request) {
	p := throttleParams{}
	err := r.DecodeJsonPayload(&p)
	if err != nil {
		log.Error("api.v1.shardctx.throttle.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Warning("api.v1.shardctx.throttle[from:%v].body:%+v", r.RemoteAddr, p)
	spanner.SetMaxPassRate(p.Limits)
}

// ThrottlezHandler impl.
func ThrottlezHandler(log *xlog.Log, spanner *proxy.Spanner) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		w.WriteJson(&throttleParams{Limits: spanner.MaxPassRate()})
	}
	return f
}
