/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package monitor

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	webMonitorPort = "13308"
	webMonitorAddr = "0.0.0.0"
	webMonitorURL  = "/metrics"

	backendConnectionNum = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "connection_number_backend",
			Help: "backend connection Number",
		},
		[]string{"address"},
	)

	backendNum = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backend_number",
			Help: "backend Number",
		},
		[]string{"type"},
	)

	federationPassTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "federation_pass_total",
			Help: "Counter of schemata federation passes.",
		},
		[]string{"result"},
	)

	catalogReadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_read_total",
			Help: "Counter of catalog reads on the storage units.",
		},
		[]string{"backend", "result"},
	)
)

func init() {
	prometheus.MustRegister(backendConnectionNum)
	prometheus.MustRegister(backendNum)
	prometheus.MustRegister(federationPassTotal)
	prometheus.MustRegister(catalogReadTotal)
}

// Start monitor
func Start(addr, port string) {
	if addr != "" {
		webMonitorAddr = addr
	}
	if port != "" {
		webMonitorPort = port
	}
	fmt.Printf("[prometheus metrics]:\thttp://{%s}:%s%s\n",
		webMonitorAddr, webMonitorPort, webMonitorURL)
	http.Handle(webMonitorURL, promhttp.Handler())
	go http.ListenAndServe(webMonitorAddr+":"+webMonitorPort, nil)
}

// BackendConnectionInc add 1
func BackendConnectionInc(address string) {
	backendConnectionNum.WithLabelValues(address).Inc()
}

// BackendConnectionDec dec 1
func BackendConnectionDec(address string) {
	backendConnectionNum.WithLabelValues(address).Dec()
}

// BackendInc add 1
func BackendInc(btype string) {
	backendNum.WithLabelValues(btype).Inc()
}

// BackendDec dec 1
func BackendDec(btype string) {
	backendNum.WithLabelValues(btype).Dec()
}

// FederationPassInc add 1, result is 'OK' or 'Error'.
func FederationPassInc(result string) {
	federationPassTotal.WithLabelValues(result).Inc()
}

// CatalogReadInc add 1
func CatalogReadInc(backend string, result string) {
	catalogReadTotal.WithLabelValues(backend, result).Inc()
}
