package devserver

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts what the dev loop does. Exposed on /metrics.
type Metrics struct {
	Rebuilds    prometheus.Counter
	BuildErrors prometheus.Counter
	Clients     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "counterdev",
			Name:      "rebuilds_total",
			Help:      "Successful rebuilds pushed to browsers.",
		}),
		BuildErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "counterdev",
			Name:      "build_errors_total",
			Help:      "Failed rebuilds.",
		}),
		Clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "counterdev",
			Name:      "connected_clients",
			Help:      "Browsers connected for live reload.",
		}),
	}
	reg.MustRegister(m.Rebuilds, m.BuildErrors, m.Clients)
	return m
}
