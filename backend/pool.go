/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/radondb/shardctx/config"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	maxIdleTime = 20 // 20s
	errClosed   = errors.New("can't get connection from the closed DB")
)

// Pool tuple.
type Pool struct {
	mu          sync.RWMutex
	log         *xlog.Log
	conf        *config.BackendConfig
	connections chan Connection

	// If maxIdleTime reached, the connection will be closed by get.
	maxIdleTime int64
}

// NewPool creates the new Pool.
func NewPool(log *xlog.Log, conf *config.BackendConfig) *Pool {
	p := &Pool{
		log:         log,
		conf:        conf,
		connections: make(chan Connection, conf.MaxConnections),
		maxIdleTime: int64(maxIdleTime),
	}
	return p
}

// Name returns the backend name of the pool.
func (p *Pool) Name() string {
	return p.conf.Name
}

func (p *Pool) reconnect() (Connection, error) {
	log := p.log
	c := NewConnection(log, p)
	if err := c.Dial(); err != nil {
		log.Error("pool.reconnect.dial.error:%+v", err)
		return nil, err
	}
	c.SetTimestamp(time.Now().Unix())
	return c, nil
}

// Get used to get a connection from the pool.
func (p *Pool) Get() (Connection, error) {
	conns := p.getConns()
	if conns == nil {
		return nil, errClosed
	}

	select {
	case conn, more := <-conns:
		if !more {
			return nil, errClosed
		}
		// If the idle time more than 1s,
		// we will do a ping to check the connection is OK or NOT.
		now := time.Now().Unix()
		elapsed := (now - conn.Timestamp())
		if elapsed > 1 {
			// If elapsed time more than 20s, we create new one.
			if elapsed > atomic.LoadInt64(&p.maxIdleTime) {
				conn.Close()
				return p.reconnect()
			}

			if err := conn.Ping(); err != nil {
				conn.Close()
				return p.reconnect()
			}
		}
		return conn, nil
	default:
		return p.reconnect()
	}
}

// Put used to put a connection to pool.
func (p *Pool) Put(conn Connection) {
	p.put(conn, true)
}

func (p *Pool) put(conn Connection, updateTs bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connections == nil {
		conn.Close()
		return
	}

	if updateTs {
		conn.SetTimestamp(time.Now().Unix())
	}
	select {
	case p.connections <- conn:
	default:
		conn.Close()
	}
}

// WithConnection runs fn on a connection of the pool.
// The connection goes back to the pool if fn succeeds, otherwise it is closed.
// It is released on every path, panic included.
func (p *Pool) WithConnection(ctx context.Context, fn func(conn Connection) error) (err error) {
	if err = ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	conn, err := p.Get()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			conn.Close()
			panic(r)
		}
		if err != nil || ctx.Err() != nil || conn.LastErr() != nil {
			conn.Close()
			return
		}
		conn.Recycle()
	}()
	return fn(conn)
}

// Close used to close the pool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connections == nil {
		return
	}
	close(p.connections)
	for conn := range p.connections {
		conn.Close()
	}
	p.connections = nil
}

func (p *Pool) getConns() chan Connection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connections
}

// JSON returns the available string.
// available is the number of currently unused connections.
func (p *Pool) JSON() string {
	b := bytes.NewBuffer(make([]byte, 0, 256))
	fmt.Fprintf(b, `{"name": "%s", "address": "%s", "capacity": %d, "available": %d}`, p.conf.Name, p.conf.Address, p.conf.MaxConnections, len(p.getConns()))
	return b.String()
}
