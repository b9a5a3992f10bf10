package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sessionbook_catalog_sessions",
		Help: "Number of sessions in the generated catalog",
	})

	catalogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sessionbook_catalog_queries_total",
		Help: "Catalog filter queries by city and kind",
	}, []string{"city", "kind"}) // kind=list|map

	bookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sessionbook_booking_transitions_total",
		Help: "Booking state transitions by target step",
	}, []string{"step"})

	bookingsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessionbook_bookings_swept_total",
		Help: "Unconfirmed bookings removed after their TTL",
	})

	paymentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sessionbook_payments_processed_total",
		Help: "Simulated payments handled by the worker pool by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	reviewsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessionbook_reviews_submitted_total",
		Help: "Reviews submitted since process start",
	})

	wsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sessionbook_websocket_connections",
		Help: "Open booking update websocket connections",
	})
)

func SetCatalogSize(n int) {
	catalogSessions.Set(float64(n))
}

func RecordCatalogQuery(city, kind string) {
	catalogQueries.WithLabelValues(city, kind).Inc()
}

func RecordBookingTransition(step string) {
	bookingTransitions.WithLabelValues(step).Inc()
}

func RecordBookingsSwept(n int) {
	bookingsSwept.Add(float64(n))
}

func RecordPayment(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	paymentsProcessed.WithLabelValues(outcome).Inc()
}

func RecordReviewSubmitted() {
	reviewsSubmitted.Inc()
}

func WebSocketOpened() {
	wsConnections.Inc()
}

func WebSocketClosed() {
	wsConnections.Dec()
}
