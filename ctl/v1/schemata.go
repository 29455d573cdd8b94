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
	"github.com/radondb/shardctx/xcontext"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/xelabs/go-mysqlstack/xlog"
)

type schemataParams struct {
	User   string `json:"user"`
	Schema string `json:"schema"`
	Query  string `json:"query"`
}

// session is the principal of the request.
type session struct {
	user   string
	schema string
}

func (s *session) User() string {
	return s.user
}

func (s *session) Schema() string {
	return s.schema
}

type schemataResp struct {
	Columns []string              `json:"columns"`
	Rows    [][]string            `json:"rows"`
	Mode    string                `json:"mode"`
	Querys  []xcontext.QueryTuple `json:"querys"`
}

// SchemataHandler impl.
func SchemataHandler(log *xlog.Log, spanner *proxy.Spanner) rest.HandlerFunc {
	f := func(w rest.ResponseWriter, r *rest.Request) {
		schemataHandler(log, spanner, w, r)
	}
	return f
}

func schemataHandler(log *xlog.Log, spanner *proxy.Spanner, w rest.ResponseWriter, r *rest.Request) {
	p := schemataParams{}
	err := r.DecodeJsonPayload(&p)
	if err != nil {
		log.Error("api.v1.schemata.error:%+v", err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	qr, err := spanner.Schemata(r.Context(), &session{user: p.User, schema: p.Schema}, p.Query)
	if err != nil {
		log.Error("api.v1.schemata[%s].user[%s].error:%+v", p.Query, p.User, err)
		rest.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rsp := &schemataResp{
		Columns: qr.Columns(),
		Rows:    make([][]string, 0, len(qr.Rows)),
		Mode:    qr.Request.Mode.String(),
		Querys:  qr.Request.Querys,
	}
	for _, row := range qr.Rows {
		values := make([]string, 0, len(row))
		for _, v := range row {
			values = append(values, v.ToString())
		}
		rsp.Rows = append(rsp.Rows, values)
	}
	w.WriteJson(rsp)
}
