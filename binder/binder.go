/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

// Package binder turns the parsed ast into the statement model the
// rewrite and planner packages consume.
package binder

import (
	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
)

// Parse used to parse the query.
func Parse(query string) (sqlparser.Statement, error) {
	node, err := sqlparser.Parse(query)
	if err != nil {
		return nil, errors.Wrapf(err, "binder.parse[%s]", query)
	}
	return node, nil
}
