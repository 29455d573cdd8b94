/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package proxy

import (
	"context"

	"github.com/radondb/shardctx/backend"
	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/plugins"
	"github.com/radondb/shardctx/plugins/privilege"
	"github.com/radondb/shardctx/xbase"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/sqlparser"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
	"github.com/xelabs/go-mysqlstack/xlog"
)

const (
	maxLogQueryLen = 256
)

// Spanner tuple.
type Spanner struct {
	log      *xlog.Log
	conf     *config.Config
	scatter  *backend.Scatter
	plugins  *plugins.Plugin
	meta     MetaData
	throttle *xbase.Throttle
}

// NewSpanner creates a new spanner.
func NewSpanner(log *xlog.Log, conf *config.Config, scatter *backend.Scatter, plugins *plugins.Plugin) *Spanner {
	return &Spanner{
		log:      log,
		conf:     conf,
		scatter:  scatter,
		plugins:  plugins,
		meta:     NewConfigMetaData(conf, scatter),
		throttle: xbase.NewThrottle(conf.Federation.MaxPassRate),
	}
}

// Query parses the query and runs it for the principal.
// Only the system database selects are served.
func (spanner *Spanner) Query(ctx context.Context, principal Principal, query string) (*sqltypes.Result, error) {
	if err := spanner.checkSession(principal); err != nil {
		return nil, err
	}
	node, err := spanner.parse(query)
	if err != nil {
		return nil, err
	}
	return spanner.HandleSelectSystem(ctx, principal, query, node)
}

// Schemata is Query with the federation result, the rows keep their logical
// databases and the physical queries of the pass.
func (spanner *Spanner) Schemata(ctx context.Context, principal Principal, query string) (*Result, error) {
	if err := spanner.checkSession(principal); err != nil {
		return nil, err
	}
	node, err := spanner.parse(query)
	if err != nil {
		return nil, err
	}
	return spanner.selectSystem(ctx, principal, query, node)
}

// checkSession checks the user privilege on the current database of the principal.
func (spanner *Spanner) checkSession(principal Principal) error {
	db := principal.Schema()
	if db == "" || privilege.IsSystemDatabase(db) {
		return nil
	}
	return spanner.plugins.PlugPrivilege().Check(db, principal.User())
}

func (spanner *Spanner) parse(query string) (sqlparser.Statement, error) {
	node, err := sqlparser.Parse(query)
	if err != nil {
		spanner.log.Error("query[%s].parser.error: %v", xbase.TruncateQuery(query, maxLogQueryLen), err)
		return nil, errors.Wrapf(err, "query[%s].parse", query)
	}
	return node, nil
}

// Conf returns the config of the spanner.
func (spanner *Spanner) Conf() *config.Config {
	return spanner.conf
}

// Scatter returns the scatter.
func (spanner *Spanner) Scatter() *backend.Scatter {
	return spanner.scatter
}

// MaxPassRate returns the federation passes per second, 0 means no limit.
func (spanner *Spanner) MaxPassRate() int {
	return spanner.throttle.Limits()
}

// SetMaxPassRate used to change the federation passes per second, 0 means no limit.
func (spanner *Spanner) SetMaxPassRate(l int) {
	spanner.throttle.Set(l)
}

// Close used to close spanner.
func (spanner *Spanner) Close() error {
	spanner.log.Info("spanner.closed...")
	return nil
}
