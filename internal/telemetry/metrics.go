package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics flyin exposes once a routing
// run completes, grounded on the pack's NBICollector registration idiom.
type Collector struct {
	gatherer prometheus.Gatherer

	RunsTotal            *prometheus.CounterVec
	LastArrivalTurn      prometheus.Gauge
	PriorityEntriesTotal prometheus.Counter
	RouteLength          *prometheus.HistogramVec
}

// NewCollector registers flyin's metrics against reg, defaulting to the
// global registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flyin_runs_total",
		Help: "Total number of routing runs, labeled by outcome.",
	}, []string{"outcome"})
	runs, err := registerCounterVec(reg, runs, "flyin_runs_total")
	if err != nil {
		return nil, err
	}

	lastArrival, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flyin_last_arrival_turn",
		Help: "Arrival turn of the last drone in the most recent successful run.",
	}), "flyin_last_arrival_turn")
	if err != nil {
		return nil, err
	}

	priorityEntries, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flyin_priority_entries_total",
		Help: "Total count of PRIORITY-hub entries across all routed drones.",
	}), "flyin_priority_entries_total")
	if err != nil {
		return nil, err
	}

	routeLength := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flyin_route_length_hops",
		Help:    "Per-drone route length in TEG hops.",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	}, []string{"topology"})
	routeLength, err = registerHistogramVec(reg, routeLength, "flyin_route_length_hops")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:             gatherer,
		RunsTotal:            runs,
		LastArrivalTurn:      lastArrival,
		PriorityEntriesTotal: priorityEntries,
		RouteLength:          routeLength,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
