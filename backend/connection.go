/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/radondb/shardctx/monitor"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/driver"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
	"github.com/xelabs/go-mysqlstack/xlog"
)

const (
	// catalogQuery returns the default database of the session.
	catalogQuery = "SELECT DATABASE()"
)

var _ Connection = &connection{}

// Connection tuple.
type Connection interface {
	ID() uint32
	Dial() error
	Ping() error
	Close()
	Closed() bool
	LastErr() error
	Kill(string) error
	Recycle()
	Address() string
	Backend() string
	SetTimestamp(int64)
	Timestamp() int64
	Execute(string) (*sqltypes.Result, error)
	ExecuteContext(context.Context, string) (*sqltypes.Result, error)
	ExecuteWithLimits(ctx context.Context, query string, memlimits int) (*sqltypes.Result, error)
	Catalog(context.Context) (string, error)
}

type connection struct {
	log          *xlog.Log
	connectionID uint32
	backend      string
	user         string
	password     string
	address      string
	database     string
	charset      string

	pool *Pool

	// If lastErr is not nil, this connection should be closed.
	lastErr error

	killed atomic.Bool
	driver driver.Conn

	// Recycle timestamp, in seconds.
	timestamp int64
}

// NewConnection creates a new connection.
func NewConnection(log *xlog.Log, pool *Pool) Connection {
	conf := pool.conf
	return &connection{
		log:      log,
		pool:     pool,
		backend:  conf.Name,
		user:     conf.User,
		password: conf.Password,
		address:  conf.Address,
		database: conf.DBName,
		charset:  conf.Charset,
	}
}

// Dial used to create a new driver conn.
// The session default database is the physical catalog of the backend.
func (c *connection) Dial() error {
	var err error

	if c.driver, err = driver.NewConn(c.user, c.password, c.address, c.database, c.charset); err != nil {
		c.log.Error("conn[%s].dial.error:%+v", c.address, err)
		c.Close()
		return errors.New("Server maybe lost, please try again")
	}
	c.connectionID = c.driver.ConnectionID()
	monitor.BackendConnectionInc(c.address)
	return nil
}

// Ping used to do ping.
func (c *connection) Ping() error {
	return c.driver.Ping()
}

// ID returns the connection ID.
func (c *connection) ID() uint32 {
	return c.connectionID
}

// SetTimestamp used to set the timestamp.
func (c *connection) SetTimestamp(ts int64) {
	c.timestamp = ts
}

// Timestamp returns Timestamp of connection.
func (c *connection) Timestamp() int64 {
	return c.timestamp
}

// watch kills the running query if the ctx is done before the returned chan is closed.
func (c *connection) watch(ctx context.Context) (chan bool, *sync.WaitGroup) {
	if ctx.Done() == nil {
		return nil, nil
	}

	var wg sync.WaitGroup
	done := make(chan bool, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			c.killed.Store(true)
			reason := ctx.Err().Error()
			c.Kill(reason)
		case <-done:
			return
		}
	}()
	return done, &wg
}

// Execute used to execute a query through this connection without limits.
func (c *connection) Execute(query string) (*sqltypes.Result, error) {
	return c.execute(context.Background(), query, 0)
}

// ExecuteContext executes the query, the query is killed if ctx is done first.
func (c *connection) ExecuteContext(ctx context.Context, query string) (*sqltypes.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return c.execute(ctx, query, 0)
}

// ExecuteWithLimits is ExecuteContext with the memory limits of the result,
// if memlimits is 0, means there is not limits.
func (c *connection) ExecuteWithLimits(ctx context.Context, query string, memlimits int) (*sqltypes.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return c.execute(ctx, query, memlimits)
}

func (c *connection) execute(ctx context.Context, query string, memlimits int) (*sqltypes.Result, error) {
	var err error
	var qr *sqltypes.Result
	log := c.log

	done, wg := c.watch(ctx)
	if done != nil {
		defer func() {
			close(done)
			wg.Wait()
		}()
	}

	// memory limits.
	checkFunc := func(rows driver.Rows) error {
		if memlimits > 0 {
			if rows.Bytes() > memlimits {
				return fmt.Errorf("Query execution was interrupted, max memory usage[%d bytes] exceeded", memlimits)
			}
		}
		return nil
	}

	// execute.
	if qr, err = c.driver.FetchAllWithFunc(query, -1, checkFunc); err != nil {
		log.Error("conn[%s].execute[%s].error:%+v", c.address, query, err)
		c.lastErr = err

		// Connection is killed.
		if c.killed.Load() {
			return nil, errors.Errorf("Query execution was interrupted, %v", ctx.Err())
		}

		// Connection is broken(closed by server).
		if err == io.EOF {
			return nil, errors.New("Server maybe lost, please try again")
		}
		return nil, err
	}
	return qr, nil
}

// Catalog returns the physical catalog the connection works on.
// It is empty if the connection has no default database.
func (c *connection) Catalog(ctx context.Context) (string, error) {
	qr, err := c.ExecuteContext(ctx, catalogQuery)
	if err != nil {
		monitor.CatalogReadInc(c.backend, "Error")
		return "", err
	}
	if len(qr.Rows) == 0 || len(qr.Rows[0]) == 0 || qr.Rows[0][0].IsNull() {
		monitor.CatalogReadInc(c.backend, "Null")
		return "", nil
	}
	monitor.CatalogReadInc(c.backend, "OK")
	return qr.Rows[0][0].ToString(), nil
}

// Kill used to kill current connection.
func (c *connection) Kill(reason string) error {
	kill, err := c.pool.Get()
	if err != nil {
		return err
	}
	defer kill.Recycle()

	c.log.Warning("conn[%s, ID:%v].be.killed.by[%v].reason[%s]", c.address, c.ID(), kill.ID(), reason)
	query := fmt.Sprintf("KILL %d", c.connectionID)
	if _, err = kill.Execute(query); err != nil {
		c.log.Warning("conn[%s, ID:%v].kill.error:%+v", c.address, c.ID(), err)
		return err
	}
	return nil
}

// Recycle used to put current to pool.
func (c *connection) Recycle() {
	if !c.Closed() {
		c.pool.Put(c)
	}
}

// Address returns the backend address of the connection.
func (c *connection) Address() string {
	return c.address
}

// Backend returns the backend name of the connection.
func (c *connection) Backend() string {
	return c.backend
}

// Close used to close connection.
func (c *connection) Close() {
	c.lastErr = errors.New("I.am.closed")
	if c.driver != nil && !c.driver.Closed() {
		c.driver.Close()
		monitor.BackendConnectionDec(c.address)
	}
}

func (c *connection) Closed() bool {
	if c.driver != nil {
		return c.driver.Closed()
	}
	return true
}

func (c *connection) LastErr() error {
	return c.lastErr
}
