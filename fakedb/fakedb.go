/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package fakedb

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync"

	"github.com/radondb/shardctx/config"

	"github.com/xelabs/go-mysqlstack/driver"
	querypb "github.com/xelabs/go-mysqlstack/sqlparser/depends/query"
	"github.com/xelabs/go-mysqlstack/sqlparser/depends/sqltypes"
	"github.com/xelabs/go-mysqlstack/xlog"
)

const (
	// CatalogQuery is what a connection sends to read its physical catalog.
	CatalogQuery = "SELECT DATABASE()"

	defaultCatalog = "sbtest"
)

var (
	// Result1 result.
	Result1 = &sqltypes.Result{
		Fields: []*querypb.Field{
			{
				Name: "id",
				Type: querypb.Type_INT32,
			},
			{
				Name: "name",
				Type: querypb.Type_VARCHAR,
			},
		},
		Rows: [][]sqltypes.Value{
			{
				sqltypes.MakeTrusted(querypb.Type_INT32, []byte("11")),
				sqltypes.MakeTrusted(querypb.Type_VARCHAR, []byte("1nice name")),
			},
			{
				sqltypes.MakeTrusted(querypb.Type_INT32, []byte("12")),
				sqltypes.NULL,
			},
		},
	}

	// Result3 result.
	Result3 = &sqltypes.Result{}
)

// CatalogResult returns the result of the catalog query.
func CatalogResult(catalog string) *sqltypes.Result {
	return &sqltypes.Result{
		Fields: []*querypb.Field{
			{
				Name: "DATABASE()",
				Type: querypb.Type_VARCHAR,
			},
		},
		Rows: [][]sqltypes.Value{
			{
				sqltypes.MakeTrusted(querypb.Type_VARCHAR, []byte(catalog)),
			},
		},
	}
}

// NullCatalogResult is the catalog query result of a backend without default database.
func NullCatalogResult() *sqltypes.Result {
	return &sqltypes.Result{
		Fields: []*querypb.Field{
			{
				Name: "DATABASE()",
				Type: querypb.Type_VARCHAR,
			},
		},
		Rows: [][]sqltypes.Value{
			{
				sqltypes.NULL,
			},
		},
	}
}

// GetTmpDir used to create a test tmp dir
// dir: path specified, can be an empty string
// module: the name of test module
func GetTmpDir(dir, module string, log *xlog.Log) string {
	tmpDir := ""
	var err error
	if dir == "" {
		tmpDir, err = ioutil.TempDir(os.TempDir(), module)
		if err != nil {
			log.Error("%v.test.can't.create.temp.dir.in:[%v]", module, os.TempDir())
		}
	} else {
		tmpDir, err = ioutil.TempDir(dir, module)
		if err != nil {
			log.Error("%v.test.can't.create.temp.dir.in:[%v]", module, dir)
		}
	}
	return tmpDir
}

// DB is a fake database.
// Every backend has its own handler, so the backends can answer the same query differently.
type DB struct {
	log          *xlog.Log
	mu           sync.RWMutex
	handlers     map[string]*driver.TestHandler
	listeners    []*driver.Listener
	backendconfs []*config.BackendConfig
	addrs        []string
}

// New creates a new DB with n backends named backend0...backend{n-1}.
// Each backend answers the catalog query with 'sbtest'.
func New(log *xlog.Log, n int) *DB {
	handlers := make(map[string]*driver.TestHandler, n)
	listeners := make([]*driver.Listener, 0, 8)
	addrs := make([]string, 0, 8)
	backendconfs := make([]*config.BackendConfig, 0, 8)
	for i := 0; i < n; i++ {
		th := driver.NewTestHandler(log)
		l, err := driver.MockMysqlServer(log, th)
		if err != nil {
			panic(err)
		}
		conf := &config.BackendConfig{
			Name:           fmt.Sprintf("backend%d", i),
			Address:        l.Addr(),
			User:           "mock",
			Password:       "pwd",
			DBName:         defaultCatalog,
			Charset:        "utf8",
			MaxConnections: 1024,
		}
		handlers[conf.Name] = th
		backendconfs = append(backendconfs, conf)
		addrs = append(addrs, l.Addr())
		listeners = append(listeners, l)
	}
	db := &DB{
		log:          log,
		handlers:     handlers,
		addrs:        addrs,
		listeners:    listeners,
		backendconfs: backendconfs,
	}
	db.addDefaults()
	return db
}

// Addrs used to get all address of the server.
func (db *DB) Addrs() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.addrs
}

// BackendConfs used to get all backend configs.
func (db *DB) BackendConfs() []*config.BackendConfig {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.backendconfs
}

// Close used to close all the listeners.
func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, l := range db.listeners {
		l.Close()
	}
}

func (db *DB) handler(backend string) *driver.TestHandler {
	db.mu.RLock()
	defer db.mu.RUnlock()
	th, ok := db.handlers[backend]
	if !ok {
		panic(fmt.Sprintf("fakedb.backend[%s].can.not.be.found", backend))
	}
	return th
}

func (db *DB) each(fn func(th *driver.TestHandler)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, th := range db.handlers {
		fn(th)
	}
}

// SetCatalog sets the physical catalog the backend reports.
func (db *DB) SetCatalog(backend string, catalog string) {
	db.handler(backend).AddQuery(CatalogQuery, CatalogResult(catalog))

	db.mu.Lock()
	defer db.mu.Unlock()
	for _, conf := range db.backendconfs {
		if conf.Name == backend {
			conf.DBName = catalog
		}
	}
}

// SetNullCatalog makes the backend report no default database.
func (db *DB) SetNullCatalog(backend string) {
	db.handler(backend).AddQuery(CatalogQuery, NullCatalogResult())

	db.mu.Lock()
	defer db.mu.Unlock()
	for _, conf := range db.backendconfs {
		if conf.Name == backend {
			conf.DBName = ""
		}
	}
}

// AddQuery used to add a query and the return result expected on all the backends.
func (db *DB) AddQuery(query string, result *sqltypes.Result) {
	db.each(func(th *driver.TestHandler) { th.AddQuery(query, result) })
}

// AddQueryOn used to add a query and the return result expected on one backend.
func (db *DB) AddQueryOn(backend string, query string, result *sqltypes.Result) {
	db.handler(backend).AddQuery(query, result)
}

// AddQueryDelay used to add query and return by delay on all the backends.
func (db *DB) AddQueryDelay(query string, result *sqltypes.Result, delayMS int) {
	db.each(func(th *driver.TestHandler) { th.AddQueryDelay(query, result, delayMS) })
}

// AddQueryDelayOn used to add query and return by delay on one backend.
func (db *DB) AddQueryDelayOn(backend string, query string, result *sqltypes.Result, delayMS int) {
	db.handler(backend).AddQueryDelay(query, result, delayMS)
}

// AddQueryError use to add a query and return the error expected on all the backends.
func (db *DB) AddQueryError(query string, err error) {
	db.each(func(th *driver.TestHandler) { th.AddQueryError(query, err) })
}

// AddQueryErrorOn use to add a query and return the error expected on one backend.
func (db *DB) AddQueryErrorOn(backend string, query string, err error) {
	db.handler(backend).AddQueryError(query, err)
}

// AddQueryPattern used to add an expected result for a set of queries.
func (db *DB) AddQueryPattern(qp string, result *sqltypes.Result) {
	db.each(func(th *driver.TestHandler) { th.AddQueryPattern(qp, result) })
}

// AddQueryErrorPattern use to add a query and return the error expected.
func (db *DB) AddQueryErrorPattern(qp string, err error) {
	db.each(func(th *driver.TestHandler) { th.AddQueryErrorPattern(qp, err) })
}

// GetQueryCalledNum returns how many times the backends execute a certain query.
func (db *DB) GetQueryCalledNum(query string) int {
	num := 0
	db.each(func(th *driver.TestHandler) { num += th.GetQueryCalledNum(query) })
	return num
}

// GetQueryCalledNumOn returns how many times one backend executes a certain query.
func (db *DB) GetQueryCalledNumOn(backend string, query string) int {
	return db.handler(backend).GetQueryCalledNum(query)
}

// ResetAll will reset all, including: query and query patterns.
// The catalog queries are restored to the defaults.
func (db *DB) ResetAll() {
	db.each(func(th *driver.TestHandler) { th.ResetAll() })
	db.addDefaults()
}

// ResetErrors used to reset all the errors.
func (db *DB) ResetErrors() {
	db.each(func(th *driver.TestHandler) {
		th.ResetErrors()
		th.ResetPatternErrors()
	})
}

// addDefaults adds the mock user and the catalog query to every backend.
func (db *DB) addDefaults() {
	r1 := &sqltypes.Result{
		Fields: []*querypb.Field{
			{
				Name: "authentication_string ",
				Type: querypb.Type_VARCHAR,
			},
		},
		Rows: [][]sqltypes.Value{
			{
				sqltypes.MakeTrusted(querypb.Type_VARCHAR, []byte("*CC86C0D547DE7603129BC1D3B98DB2242E7F744F")),
			},
		},
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, conf := range db.backendconfs {
		th := db.handlers[conf.Name]
		th.AddQuery("select authentication_string from mysql.user where user='mock'", r1)
		if conf.DBName == "" {
			th.AddQuery(CatalogQuery, NullCatalogResult())
			continue
		}
		th.AddQuery(CatalogQuery, CatalogResult(conf.DBName))
	}
}
