/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/radondb/shardctx/backend"
	"github.com/radondb/shardctx/build"
	"github.com/radondb/shardctx/config"
	"github.com/radondb/shardctx/ctl"
	"github.com/radondb/shardctx/monitor"
	"github.com/radondb/shardctx/plugins"
	"github.com/radondb/shardctx/proxy"

	"github.com/xelabs/go-mysqlstack/xlog"
)

var (
	flagConf string
)

func init() {
	flag.StringVar(&flagConf, "c", "", "shardctx config file")
	flag.StringVar(&flagConf, "config", "", "shardctx config file")
}

func usage() {
	fmt.Println("Usage: " + os.Args[0] + " [-c|--config] <shardctx-config-file>")
}

func main() {
	log := xlog.NewStdLog(xlog.Level(xlog.DEBUG))

	build := build.GetInfo()
	fmt.Printf("shardctxd:[%+v]\n", build)

	// config
	flag.Usage = func() { usage() }
	flag.Parse()
	if flagConf == "" {
		usage()
		os.Exit(0)
	}

	conf, err := config.LoadConfig(flagConf)
	if err != nil {
		log.Panic("shardctxd.load.config.error[%v]", err)
	}
	log.SetLevel(conf.Log.Level)

	// Monitor
	monitor.Start(conf.Admin.MonitorAddress, conf.Admin.MonitorPort)

	// Storage units.
	scatter := backend.NewScatter(log)
	if err := scatter.LoadConfig(conf.Backends); err != nil {
		log.Panic("shardctxd.scatter.load.config.error[%v]", err)
	}

	// Plugins.
	plugins := plugins.NewPlugin(log, conf)
	if err := plugins.Init(); err != nil {
		log.Panic("shardctxd.plugins.init.error[%v]", err)
	}

	// Spanner.
	spanner := proxy.NewSpanner(log, conf, scatter, plugins)

	// Admin portal.
	admin := ctl.NewAdmin(log, spanner)
	admin.Start()

	// Handle SIGINT and SIGTERM.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	log.Info("shardctxd.signal:%+v", <-ch)

	// Stop the httpserver and the spanner.
	admin.Stop()
	spanner.Close()
	plugins.Close()
	scatter.Close()
}
