/*
 * Radon
 *
 * Copyright 2018-2019 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package plugins

import (
	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/plugins/privilege"

	"github.com/xelabs/go-mysqlstack/xlog"
)

// Plugin --
type Plugin struct {
	log           *xlog.Log
	conf          *config.Config
	privilegePlug privilege.PrivilegeHandler
}

// NewPlugin -- creates new Plugin.
func NewPlugin(log *xlog.Log, conf *config.Config) *Plugin {
	return &Plugin{
		log:  log,
		conf: conf,
	}
}

// Init -- used to regeister plug to plugins.
func (plugin *Plugin) Init() error {
	log := plugin.log

	// Regeister Privilege plug.
	privilegePlug := privilege.NewPrivilege(log, plugin.conf)
	if err := privilegePlug.Init(); err != nil {
		return err
	}
	plugin.privilegePlug = privilegePlug
	return nil
}

// Close -- close all the plugs.
func (plugin *Plugin) Close() {
	if plugin.privilegePlug != nil {
		plugin.privilegePlug.Close()
	}
}

// PlugPrivilege -- return Privilege plug.
func (plugin *Plugin) PlugPrivilege() privilege.PrivilegeHandler {
	return plugin.privilegePlug
}
