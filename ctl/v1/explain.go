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
	"net/http"

	"github.com/radondb/shardctx/proxy"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
)

type explainParams struct {
	Query   string `json:"query"`
	Route   string `json:"route"`
	Dialect string `json:"dialect"`
}

type explainResp struct {
	Msg json.RawMessage `json:",omitempty"`
	Err string          `json:",omitempty"`
}

// ExplainInsertHandler impl.
func ExplainInsertHandler(log *xlog.Log) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		explainInsertHandler(log, w, r)
	}
	return f
}

func explainInsertHandler(log *xlog.Log, w rest.ResponseWriter, r *rest.Request) {
	p := explainParams{}
	err := r.DecodeJsonPayload(&p)
	if err != nil {
		log.Error("api.v1.explain.insert.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rsp := &explainResp{}
	token, err := proxy.ExplainInsert(p.Query, p.Route)
	if err != nil {
		log.Error("ctl.v1.explain.insert[%s].error:%+v", p.Query, err)
		rsp.Err = err.Error()
		w.WriteJson(rsp)
		return
	}
	rsp.Msg = json.RawMessage(token.JSON())
	w.WriteJson(rsp)
}

// ExplainOrderByHandler impl.
func ExplainOrderByHandler(log *xlog.Log) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		explainOrderByHandler(log, w, r)
	}
	return f
}

func explainOrderByHandler(log *xlog.Log, w rest.ResponseWriter, r *rest.Request) {
	p := explainParams{Dialect: "MySQL"}
	err := r.DecodeJsonPayload(&p)
	if err != nil {
		log.Error("api.v1.explain.orderby.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rsp := &explainResp{}
	orderBy, err := proxy.ExplainOrderBy(p.Query, p.Dialect)
	if err != nil {
		log.Error("ctl.v1.explain.orderby[%s].error:%+v", p.Query, err)
		rsp.Err = err.Error()
		w.WriteJson(rsp)
		return
	}
	rsp.Msg = json.RawMessage(orderBy.JSON())
	w.WriteJson(rsp)
}
