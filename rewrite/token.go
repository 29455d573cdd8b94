/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package rewrite

import (
	"encoding/json"

	"github.com/radondb/shardctx/router"

	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/common"
)

var (
	_ SQLToken = &InsertValuesToken{}
)

// SQLToken tells the renderer to replace the raw query text in
// [StartIndex, StopIndex] with the text computed for each route unit.
type SQLToken interface {
	StartIndex() int
	StopIndex() int
}

// InsertValue is one insert row bound to its data nodes.
//
// An empty DataNodes is the broadcast fallback: the router resolved no
// target for this row, the renderer must emit it for every route unit the
// statement as a whole was routed to.
type InsertValue struct {
	Expressions sqlparser.Exprs
	DataNodes   []router.DataNode
}

// Broadcast reports whether the row takes the broadcast fallback.
func (v *InsertValue) Broadcast() bool {
	return len(v.DataNodes) == 0
}

// String returns the row text, such as '(1, 2)'.
func (v *InsertValue) String() string {
	return sqlparser.String(sqlparser.ValTuple(v.Expressions))
}

// InsertValuesToken covers every VALUES tuple of the insert.
type InsertValuesToken struct {
	Start        int
	Stop         int
	InsertValues []*InsertValue
}

// StartIndex returns the first byte of the span.
func (t *InsertValuesToken) StartIndex() int {
	return t.Start
}

// StopIndex returns the last byte of the span, inclusive.
func (t *InsertValuesToken) StopIndex() int {
	return t.Stop
}

// ValuesFor returns the rows the data node receives, in source order.
func (t *InsertValuesToken) ValuesFor(node router.DataNode) []*InsertValue {
	var values []*InsertValue
	for _, v := range t.InsertValues {
		if v.Broadcast() {
			values = append(values, v)
			continue
		}
		for _, n := range v.DataNodes {
			if n == node {
				values = append(values, v)
				break
			}
		}
	}
	return values
}

// JSON returns the token info.
func (t *InsertValuesToken) JSON() string {
	type value struct {
		Value     string
		DataNodes []string `json:",omitempty"`
	}
	type explain struct {
		Start  int
		Stop   int
		Values []value
	}

	exp := &explain{
		Start: t.Start,
		Stop:  t.Stop,
	}
	for _, v := range t.InsertValues {
		val := value{Value: v.String()}
		for _, n := range v.DataNodes {
			val.DataNodes = append(val.DataNodes, n.String())
		}
		exp.Values = append(exp.Values, val)
	}
	bout, err := json.MarshalIndent(exp, "", "\t")
	if err != nil {
		return err.Error()
	}
	return common.BytesToString(bout)
}
