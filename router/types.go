/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package router

import (
	"strings"

	"github.com/pkg/errors"
)

// DataNode is one physical table on one backend.
type DataNode struct {
	Backend string
	Table   string
}

// ParseDataNode parses the 'backend.table' form.
func ParseDataNode(s string) (DataNode, error) {
	idx := strings.Index(s, ".")
	if idx <= 0 || idx == len(s)-1 {
		return DataNode{}, errors.Errorf("router.datanode[%s].format.invalid.should.be.backend.table", s)
	}
	return DataNode{Backend: s[:idx], Table: s[idx+1:]}, nil
}

// String returns the 'backend.table' form.
func (n DataNode) String() string {
	return n.Backend + "." + n.Table
}

// RouteContext is the routing decision computed upstream.
// OriginalDataNodes[i] holds the targets of the i-th insert row, it may be
// shorter than the rows or empty when the router did not resolve per row.
type RouteContext struct {
	OriginalDataNodes [][]DataNode
}

// DataNodes returns the targets of the i-th row, nil if the route has none.
func (r *RouteContext) DataNodes(i int) []DataNode {
	if r == nil || i < 0 || i >= len(r.OriginalDataNodes) {
		return nil
	}
	return r.OriginalDataNodes[i]
}

// ParseRouteContext parses the 'b0.t0,b1.t1;b2.t2' form: rows are separated
// by ';', the targets of one row by ','. An empty row keeps its position.
func ParseRouteContext(s string) (*RouteContext, error) {
	route := &RouteContext{}
	if strings.TrimSpace(s) == "" {
		return route, nil
	}
	for _, row := range strings.Split(s, ";") {
		nodes := make([]DataNode, 0, 4)
		for _, item := range strings.Split(row, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			node, err := ParseDataNode(item)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
		route.OriginalDataNodes = append(route.OriginalDataNodes, nodes)
	}
	return route, nil
}
