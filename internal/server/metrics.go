package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// LotObserver exposes the occupancy snapshot of the running lot. Both methods
// must be safe to call from the server's goroutines.
type LotObserver interface {
	Capacity() int
	Occupied() int
}

// NewRegistry returns a registry with the lot gauges and the standard Go and
// process collectors.
func NewRegistry(serviceName string, lot LotObserver) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"service": serviceName}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "parking_lot_capacity",
			Help:        "Number of spots in the current lot.",
			ConstLabels: labels,
		}, func() float64 { return float64(lot.Capacity()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "parking_lot_occupied_spots",
			Help:        "Number of spots currently holding a vehicle.",
			ConstLabels: labels,
		}, func() float64 { return float64(lot.Occupied()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "parking_lot_free_spots",
			Help:        "Number of free spots in the current lot.",
			ConstLabels: labels,
		}, func() float64 { return float64(lot.Capacity() - lot.Occupied()) }),
	)

	return reg
}
