/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package config

import (
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	shardctxTestJSON = "shardctx.test.config.json"
)

func TestWriteLoadConfig(t *testing.T) {
	tmpDir, err := ioutil.TempDir(os.TempDir(), "shardctx_config_")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	file := path.Join(tmpDir, shardctxTestJSON)
	conf := MockConfig()
	err = WriteConfig(file, conf)
	assert.Nil(t, err)

	got, err := LoadConfig(file)
	assert.Nil(t, err)
	assert.Equal(t, conf, got)
}

func TestLoadConfigNotExists(t *testing.T) {
	_, err := LoadConfig("/tmp/shardctx.not.exists.json")
	assert.NotNil(t, err)
}

func TestReadConfigDefaults(t *testing.T) {
	data := `{
	"backends": [
		{
			"name": "backend0",
			"address": "127.0.0.1:3306",
			"user": "mock",
			"database": "test"
		}
	],
	"federation": {
		"max-parallel": 2
	}
}`

	conf, err := ReadConfig(data)
	assert.Nil(t, err)
	assert.Equal(t, DefaultLogConfig(), conf.Log)
	assert.Equal(t, DefaultAdminConfig(), conf.Admin)

	want := DefaultFederationConfig()
	want.MaxParallel = 2
	assert.Equal(t, want, conf.Federation)
	assert.Equal(t, "test", conf.Backends[0].DBName)
	assert.Nil(t, conf.Validate())
}

func TestReadConfigError(t *testing.T) {
	_, err := ReadConfig(`{"log":`)
	assert.NotNil(t, err)
}

func TestConfigValidate(t *testing.T) {
	conf := &Config{
		Backends: []*BackendConfig{
			{Name: "backend0", Address: "127.0.0.1:3306"},
			{Name: "backend0", Address: "127.0.0.1:3307"},
			{Name: "backend2"},
		},
		Databases: []*DatabaseConfig{
			{Name: "db1", Backends: []string{"backend0", "backendx"}},
			{Name: "DB1"},
			{},
		},
		Users: []*UserConfig{
			{User: "mock", Databases: []string{"db1", "dbx", AllDatabases}},
		},
	}
	checkConfig(conf)

	err := conf.Validate()
	assert.NotNil(t, err)
	wants := []string{
		"config.backend[backend0].duplicate",
		"config.backend[backend2].address.is.empty",
		"config.database[db1].backend[backendx].can.not.be.found",
		"config.database[DB1].duplicate",
		"config.database[2].name.is.empty",
		"config.user[mock].database[dbx].can.not.be.found",
	}
	for _, want := range wants {
		assert.True(t, strings.Contains(err.Error(), want), want)
	}
}
