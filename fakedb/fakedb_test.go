/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package fakedb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xelabs/go-mysqlstack/driver"
	"github.com/xelabs/go-mysqlstack/xlog"
)

func TestFakeDBPerBackend(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	fakedb := New(log, 2)
	defer fakedb.Close()

	fakedb.SetCatalog("backend1", "test")
	assert.Equal(t, "sbtest", fakedb.BackendConfs()[0].DBName)
	assert.Equal(t, "test", fakedb.BackendConfs()[1].DBName)

	fakedb.AddQueryOn("backend0", "select 1", Result1)
	fakedb.AddQueryErrorOn("backend1", "select 1", errors.New("mock.select.error"))

	catalogs := []string{"sbtest", "test"}
	for i, conf := range fakedb.BackendConfs() {
		conn, err := driver.NewConn(conf.User, conf.Password, conf.Address, conf.DBName, conf.Charset)
		assert.Nil(t, err)

		qr, err := conn.FetchAll(CatalogQuery, -1)
		assert.Nil(t, err)
		assert.Equal(t, catalogs[i], qr.Rows[0][0].ToString())

		_, err = conn.FetchAll("select 1", -1)
		if i == 0 {
			assert.Nil(t, err)
		} else {
			assert.NotNil(t, err)
		}
		conn.Close()
	}
	assert.Equal(t, 1, fakedb.GetQueryCalledNumOn("backend0", "select 1"))
	assert.Equal(t, 2, fakedb.GetQueryCalledNum("select 1"))
}

func TestFakeDBResetAll(t *testing.T) {
	log := xlog.NewStdLog(xlog.Level(xlog.PANIC))
	fakedb := New(log, 1)
	defer fakedb.Close()

	fakedb.AddQuery("select 1", Result1)
	fakedb.ResetAll()

	conf := fakedb.BackendConfs()[0]
	conn, err := driver.NewConn(conf.User, conf.Password, conf.Address, conf.DBName, conf.Charset)
	assert.Nil(t, err)
	defer conn.Close()

	_, err = conn.FetchAll("select 1", -1)
	assert.NotNil(t, err)

	qr, err := conn.FetchAll(CatalogQuery, -1)
	assert.Nil(t, err)
	assert.Equal(t, "sbtest", qr.Rows[0][0].ToString())
}
