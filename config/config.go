/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package config

import (
	"encoding/json"
	"io/ioutil"
	"strings"

	"github.com/radondb/shardctx/xbase"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	// AllDatabases grants every logical database to a user.
	AllDatabases = "*"
)

// LogConfig tuple.
type LogConfig struct {
	Level string `json:"level"`
}

// DefaultLogConfig returns default log config.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level: "ERROR",
	}
}

// UnmarshalJSON interface on LogConfig.
func (c *LogConfig) UnmarshalJSON(b []byte) error {
	type confAlias *LogConfig
	conf := confAlias(DefaultLogConfig())
	if err := json.Unmarshal(b, conf); err != nil {
		return err
	}
	*c = LogConfig(*conf)
	return nil
}

// AdminConfig tuple.
type AdminConfig struct {
	// Endpoint of the admin http api.
	Endpoint string `json:"endpoint"`

	// MonitorAddress and MonitorPort serve the prometheus metrics.
	MonitorAddress string `json:"monitor-address"`
	MonitorPort    string `json:"monitor-port"`
}

// DefaultAdminConfig returns default admin config.
func DefaultAdminConfig() *AdminConfig {
	return &AdminConfig{
		Endpoint:       "127.0.0.1:8080",
		MonitorAddress: "0.0.0.0",
		MonitorPort:    "13308",
	}
}

// UnmarshalJSON interface on AdminConfig.
func (c *AdminConfig) UnmarshalJSON(b []byte) error {
	type confAlias *AdminConfig
	conf := confAlias(DefaultAdminConfig())
	if err := json.Unmarshal(b, conf); err != nil {
		return err
	}
	*c = AdminConfig(*conf)
	return nil
}

// FederationConfig tuple.
type FederationConfig struct {
	// Dialect of the physical backends, decides the default nulls order.
	Dialect string `json:"dialect"`

	// MaxParallel limits the concurrent catalog reads of one pass.
	MaxParallel int `json:"max-parallel"`

	// QueryTimeout in milliseconds, 0 means no limit.
	QueryTimeout int `json:"query-timeout"`

	// MaxPassRate limits the federation passes per second, 0 means no limit.
	MaxPassRate int `json:"max-pass-rate"`

	// MaxResultSize limits the bytes of one physical result, 0 means no limit.
	MaxResultSize int `json:"max-result-size"`
}

// DefaultFederationConfig returns default federation config.
func DefaultFederationConfig() *FederationConfig {
	return &FederationConfig{
		Dialect:       "MySQL",
		MaxParallel:   8,
		QueryTimeout:  5 * 60 * 1000, // 5minutes
		MaxResultSize: 1024 * 1024 * 1024, // 1GB
	}
}

// UnmarshalJSON interface on FederationConfig.
func (c *FederationConfig) UnmarshalJSON(b []byte) error {
	type confAlias *FederationConfig
	conf := confAlias(DefaultFederationConfig())
	if err := json.Unmarshal(b, conf); err != nil {
		return err
	}
	*c = FederationConfig(*conf)
	return nil
}

// BackendConfig tuple.
// One backend is one storage unit, DBName is its physical catalog.
type BackendConfig struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"database"`
	Charset        string `json:"charset"`
	MaxConnections int    `json:"max-connections"`
}

// DatabaseConfig tuple.
// A logical database without backends has no storage unit.
type DatabaseConfig struct {
	Name     string   `json:"name"`
	Backends []string `json:"backends"`
}

// UserConfig tuple.
type UserConfig struct {
	User      string   `json:"user"`
	Super     bool     `json:"super"`
	Databases []string `json:"databases"`
}

// Config tuple.
type Config struct {
	Log        *LogConfig        `json:"log"`
	Admin      *AdminConfig      `json:"admin"`
	Federation *FederationConfig `json:"federation"`
	Backends   []*BackendConfig  `json:"backends"`
	Databases  []*DatabaseConfig `json:"databases"`
	Users      []*UserConfig     `json:"users"`
}

func checkConfig(conf *Config) {
	if conf.Log == nil {
		conf.Log = DefaultLogConfig()
	}

	if conf.Admin == nil {
		conf.Admin = DefaultAdminConfig()
	}

	if conf.Federation == nil {
		conf.Federation = DefaultFederationConfig()
	}
}

// Validate checks the references between backends, databases and users.
// All the problems are reported at once.
func (conf *Config) Validate() error {
	var result *multierror.Error

	backends := make(map[string]struct{}, len(conf.Backends))
	for i, be := range conf.Backends {
		switch {
		case be.Name == "":
			result = multierror.Append(result, errors.Errorf("config.backend[%d].name.is.empty", i))
		case be.Address == "":
			result = multierror.Append(result, errors.Errorf("config.backend[%s].address.is.empty", be.Name))
		}
		if _, ok := backends[be.Name]; ok {
			result = multierror.Append(result, errors.Errorf("config.backend[%s].duplicate", be.Name))
		}
		backends[be.Name] = struct{}{}
	}

	databases := make(map[string]struct{}, len(conf.Databases))
	for i, db := range conf.Databases {
		if db.Name == "" {
			result = multierror.Append(result, errors.Errorf("config.database[%d].name.is.empty", i))
			continue
		}
		key := strings.ToLower(db.Name)
		if _, ok := databases[key]; ok {
			result = multierror.Append(result, errors.Errorf("config.database[%s].duplicate", db.Name))
		}
		databases[key] = struct{}{}
		for _, be := range db.Backends {
			if _, ok := backends[be]; !ok {
				result = multierror.Append(result, errors.Errorf("config.database[%s].backend[%s].can.not.be.found", db.Name, be))
			}
		}
	}

	for _, user := range conf.Users {
		for _, db := range user.Databases {
			if db == AllDatabases {
				continue
			}
			if _, ok := databases[strings.ToLower(db)]; !ok {
				result = multierror.Append(result, errors.Errorf("config.user[%s].database[%s].can.not.be.found", user.User, db))
			}
		}
	}
	return result.ErrorOrNil()
}

// ReadConfig used to read the config from the data.
func ReadConfig(data string) (*Config, error) {
	conf := &Config{}
	if err := json.Unmarshal([]byte(data), conf); err != nil {
		return nil, errors.WithStack(err)
	}
	checkConfig(conf)
	return conf, nil
}

// LoadConfig used to load the config from file.
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	conf, err := ReadConfig(string(data))
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// WriteConfig used to write the conf to file.
func WriteConfig(path string, conf interface{}) error {
	b, err := json.MarshalIndent(conf, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}
	return xbase.WriteFile(path, b)
}
