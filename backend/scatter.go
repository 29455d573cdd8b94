/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"sort"
	"sync"

	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/monitor"

	"github.com/pkg/errors"
	"github.com/xelabs/go-mysqlstack/xlog"
)

const (
	backendTypeNormal = "normal"
)

// Scatter tuple.
// Scatter holds one pool per storage unit.
type Scatter struct {
	log      *xlog.Log
	mu       sync.RWMutex
	backends map[string]*Pool
}

// NewScatter creates a new scatter.
func NewScatter(log *xlog.Log) *Scatter {
	return &Scatter{
		log:      log,
		backends: make(map[string]*Pool),
	}
}

// Add backend node.
func (scatter *Scatter) add(config *config.BackendConfig) error {
	log := scatter.log
	log.Warning("scatter.add:%v", config.Name)

	if _, ok := scatter.backends[config.Name]; ok {
		return errors.Errorf("scatter.backend[%v].duplicate", config.Name)
	}
	pool := NewPool(scatter.log, config)
	scatter.backends[config.Name] = pool
	monitor.BackendInc(backendTypeNormal)
	return nil
}

// Add used to add a new backend to scatter.
func (scatter *Scatter) Add(config *config.BackendConfig) error {
	scatter.mu.Lock()
	defer scatter.mu.Unlock()
	return scatter.add(config)
}

func (scatter *Scatter) remove(name string) error {
	log := scatter.log
	log.Warning("scatter.remove:%v", name)

	pool, ok := scatter.backends[name]
	if !ok {
		return errors.Errorf("scatter.backend[%v].can.not.be.found", name)
	}
	delete(scatter.backends, name)
	pool.Close()
	monitor.BackendDec(backendTypeNormal)
	return nil
}

// Remove used to remove a backend from the scatter.
func (scatter *Scatter) Remove(name string) error {
	scatter.mu.Lock()
	defer scatter.mu.Unlock()
	return scatter.remove(name)
}

// Pool returns the pool of the backend.
func (scatter *Scatter) Pool(name string) (*Pool, error) {
	scatter.mu.RLock()
	defer scatter.mu.RUnlock()
	pool, ok := scatter.backends[name]
	if !ok {
		return nil, errors.Errorf("scatter.backend[%v].can.not.be.found", name)
	}
	return pool, nil
}

// Close used to clean the pools connections.
func (scatter *Scatter) Close() {
	scatter.mu.Lock()
	defer scatter.mu.Unlock()

	log := scatter.log
	log.Info("scatter.prepare.to.close....")
	scatter.clear()
	log.Info("scatter.close.done....")
}

func (scatter *Scatter) clear() {
	for _, v := range scatter.backends {
		v.Close()
		monitor.BackendDec(backendTypeNormal)
	}
	scatter.backends = make(map[string]*Pool)
}

// LoadConfig used to replace all the backends with the configs.
func (scatter *Scatter) LoadConfig(backends []*config.BackendConfig) error {
	scatter.mu.Lock()
	defer scatter.mu.Unlock()

	// Do clear first.
	scatter.clear()

	log := scatter.log
	for _, backend := range backends {
		if err := scatter.add(backend); err != nil {
			log.Error("scatter.add.backend[%+v].error:%v", backend.Name, err)
			return err
		}
		log.Warning("scatter.load.backend:%+v", backend.Name)
	}
	return nil
}

// Backends returns all backends.
func (scatter *Scatter) Backends() []string {
	var backends []string
	scatter.mu.RLock()
	defer scatter.mu.RUnlock()
	for k := range scatter.backends {
		backends = append(backends, k)
	}
	sort.Strings(backends)
	return backends
}

// PoolClone used to copy backends to new map.
func (scatter *Scatter) PoolClone() map[string]*Pool {
	poolMap := make(map[string]*Pool)
	scatter.mu.RLock()
	defer scatter.mu.RUnlock()
	for k, v := range scatter.backends {
		poolMap[k] = v
	}
	return poolMap
}

// BackendConfigsClone used to clone all the backend configs.
func (scatter *Scatter) BackendConfigsClone() []*config.BackendConfig {
	scatter.mu.RLock()
	defer scatter.mu.RUnlock()
	beConfigs := make([]*config.BackendConfig, 0, 16)
	for _, v := range scatter.backends {
		beConfigs = append(beConfigs, v.conf)
	}
	return beConfigs
}
