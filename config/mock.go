/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package config

var (
	// MockLogConfig config.
	MockLogConfig = &LogConfig{
		Level: "DEBUG",
	}

	// MockAdminConfig config.
	MockAdminConfig = &AdminConfig{
		Endpoint:       "127.0.0.1:18080",
		MonitorAddress: "127.0.0.1",
		MonitorPort:    "13309",
	}

	// MockFederationConfig config.
	MockFederationConfig = &FederationConfig{
		Dialect:       "MySQL",
		MaxParallel:   4,
		QueryTimeout:  10 * 1000,
		MaxResultSize: 64 * 1024 * 1024,
	}

	// MockBackendsConfig config.
	MockBackendsConfig = []*BackendConfig{
		{
			Name:           "backend0",
			Address:        "127.0.0.1:3306",
			User:           "mock",
			Password:       "pwd",
			DBName:         "test",
			Charset:        "utf8",
			MaxConnections: 64,
		},
		{
			Name:           "backend1",
			Address:        "127.0.0.1:3307",
			User:           "mock",
			Password:       "pwd",
			DBName:         "test",
			Charset:        "utf8",
			MaxConnections: 64,
		},
	}

	// MockDatabasesConfig config.
	MockDatabasesConfig = []*DatabaseConfig{
		{
			Name:     "db1",
			Backends: []string{"backend0"},
		},
		{
			Name:     "db2",
			Backends: []string{"backend1"},
		},
		{
			Name: "logical_db",
		},
	}

	// MockUsersConfig config.
	MockUsersConfig = []*UserConfig{
		{
			User:  "root",
			Super: true,
		},
		{
			User:      "mock",
			Databases: []string{"db1", "logical_db"},
		},
	}
)

// MockConfig returns a complete config built from the mocks.
func MockConfig() *Config {
	return &Config{
		Log:        MockLogConfig,
		Admin:      MockAdminConfig,
		Federation: MockFederationConfig,
		Backends:   MockBackendsConfig,
		Databases:  MockDatabasesConfig,
		Users:      MockUsersConfig,
	}
}
