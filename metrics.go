package main

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ushell_active_sessions",
	Help: "Shells currently running on a console session.",
})

// serveMetrics serves the default Prometheus registry at /metrics until the
// returned listener is closed.
func serveMetrics(address string) (net.Listener, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.Serve(listener, mux); err != nil {
			logrus.Debugf("Metrics server stopped: %v", err)
		}
	}()
	logrus.WithField("metrics_address", listener.Addr().String()).Infoln("Serving metrics")
	return listener, nil
}
