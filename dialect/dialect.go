/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package dialect

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// NullsOrder decides where NULL sorts in an ascending order.
type NullsOrder string

const (
	// NullsFirst enum.
	NullsFirst NullsOrder = "FIRST"

	// NullsLast enum.
	NullsLast NullsOrder = "LAST"
)

var (
	mu       sync.RWMutex
	registry = map[string]NullsOrder{
		"MYSQL":      NullsFirst,
		"MARIADB":    NullsFirst,
		"SQL92":      NullsFirst,
		"SQLSERVER":  NullsFirst,
		"H2":         NullsFirst,
		"HIVE":       NullsFirst,
		"DORIS":      NullsFirst,
		"POSTGRESQL": NullsLast,
		"OPENGAUSS":  NullsLast,
		"ORACLE":     NullsLast,
		"CLICKHOUSE": NullsLast,
		"PRESTO":     NullsLast,
	}
)

// Register used to plug a database engine in, an existing engine is overwritten.
func Register(name string, order NullsOrder) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToUpper(name)] = order
}

// DefaultNullsOrder returns the default nulls order of the engine.
func DefaultNullsOrder(name string) (NullsOrder, error) {
	mu.RLock()
	defer mu.RUnlock()
	order, ok := registry[strings.ToUpper(name)]
	if !ok {
		return "", errors.Errorf("dialect[%s].can.not.be.found", name)
	}
	return order, nil
}

// Engines returns the registered engine names, sorted.
func Engines() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
