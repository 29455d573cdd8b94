/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package proxy

import (
	"github.com/radondb/shardctx/backend"
	"github.com/radondb/shardctx/config"
)

// MetaData is the storage view of the logical databases.
type MetaData interface {
	// AllDatabaseNames returns the logical databases in config order.
	AllDatabaseNames() []string

	// StorageUnits returns the backends of the logical database, empty if it has no storage.
	StorageUnits(db string) []string

	// Pool returns the pool of the storage unit.
	Pool(unit string) (*backend.Pool, error)
}

// ConfigMetaData implements MetaData on the databases config and the scatter.
type ConfigMetaData struct {
	conf    *config.Config
	scatter *backend.Scatter
}

// NewConfigMetaData creates the new ConfigMetaData.
func NewConfigMetaData(conf *config.Config, scatter *backend.Scatter) *ConfigMetaData {
	return &ConfigMetaData{
		conf:    conf,
		scatter: scatter,
	}
}

// AllDatabaseNames implements MetaData.
func (m *ConfigMetaData) AllDatabaseNames() []string {
	names := make([]string, 0, len(m.conf.Databases))
	for _, db := range m.conf.Databases {
		names = append(names, db.Name)
	}
	return names
}

// StorageUnits implements MetaData.
func (m *ConfigMetaData) StorageUnits(db string) []string {
	for _, d := range m.conf.Databases {
		if d.Name == db {
			return d.Backends
		}
	}
	return nil
}

// Pool implements MetaData.
func (m *ConfigMetaData) Pool(unit string) (*backend.Pool, error) {
	return m.scatter.Pool(unit)
}
