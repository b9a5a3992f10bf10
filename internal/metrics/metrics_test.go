package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbook-backend/internal/metrics"
)

func TestMetricsExposed(t *testing.T) {
	metrics.SetCatalogSize(330)
	metrics.RecordCatalogQuery("Miami", "list")
	metrics.RecordBookingTransition("review")
	metrics.RecordPayment(true)
	metrics.RecordPayment(false)
	metrics.RecordReviewSubmitted()
	metrics.RecordBookingsSwept(2)
	metrics.WebSocketOpened()
	metrics.WebSocketClosed()

	srv := httptest.NewServer(promhttp.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "sessionbook_catalog_sessions 330")
	assert.Contains(t, text, `sessionbook_catalog_queries_total{city="Miami",kind="list"}`)
	assert.Contains(t, text, `sessionbook_payments_processed_total{outcome="failure"} 1`)
	assert.Contains(t, text, "sessionbook_reviews_submitted_total")
}
