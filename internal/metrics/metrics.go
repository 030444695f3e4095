package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clipperroom",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clipperroom",
			Name:      "booking_conflicts_total",
			Help:      "Bookings rejected by the write-time conflict guard.",
		},
	)

	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clipperroom",
			Name:      "orders_created_total",
			Help:      "Orders created.",
		},
	)

	notifierEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clipperroom",
			Name:      "notifier_events_total",
			Help:      "Change-stream events broadcast, by resource and action.",
		},
		[]string{"resource", "action"},
	)

	wsClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "clipperroom",
			Name:      "ws_clients",
			Help:      "Currently connected WebSocket clients.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingsCreated,
			bookingConflicts,
			ordersCreated,
			notifierEvents,
			wsClients,
		)
	})
}

func IncBookingCreated()  { bookingsCreated.Inc() }
func IncBookingConflict() { bookingConflicts.Inc() }
func IncOrderCreated()    { ordersCreated.Inc() }

func IncNotifierEvent(resource, action string) {
	notifierEvents.WithLabelValues(resource, action).Inc()
}

func SetWSClients(n int) { wsClients.Set(float64(n)) }
