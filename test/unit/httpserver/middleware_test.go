package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint/mailgate/internal/infrastructure/httpserver/middleware"
)

func newTestMetrics() (*prometheus.CounterVec, *prometheus.HistogramVec) {
	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_requests_total", Help: "test"},
		[]string{"method", "endpoint", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "test_request_duration_seconds", Help: "test"},
		[]string{"method", "endpoint"},
	)
	return requestsTotal, requestDuration
}

func TestLoggingMiddleware_EmitsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	e := echo.New()
	m := middleware.NewLoggingMiddleware(logger)
	handler := m.RequestLogging()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/ses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/ses")
	c.Response().Header().Set(echo.HeaderXRequestID, "req-123")

	require.NoError(t, handler(c))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "req-123", entry["request_id"])
	require.Equal(t, http.MethodPost, entry["method"])
	require.Equal(t, "/ses", entry["path"])
	require.Equal(t, float64(http.StatusOK), entry["status"])
}

func TestMetricsMiddleware_CountsRequestsByRouteAndStatus(t *testing.T) {
	requestsTotal, requestDuration := newTestMetrics()

	e := echo.New()
	m := middleware.NewMetricsMiddleware(requestsTotal, requestDuration)
	handler := m.CollectHTTPMetrics()(func(c echo.Context) error { return c.NoContent(http.StatusForbidden) })

	req := httptest.NewRequest(http.MethodPost, "/ses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/ses")

	require.NoError(t, handler(c))

	count := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodPost, "/ses", "403"))
	require.Equal(t, float64(1), count)
	require.Equal(t, 1, testutil.CollectAndCount(requestDuration))
}

func TestMetricsMiddleware_SkipsScrapeEndpoint(t *testing.T) {
	requestsTotal, requestDuration := newTestMetrics()

	e := echo.New()
	m := middleware.NewMetricsMiddleware(requestsTotal, requestDuration)
	handler := m.CollectHTTPMetrics()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/metrics")

	require.NoError(t, handler(c))
	require.Equal(t, 0, testutil.CollectAndCount(requestsTotal))
	require.Equal(t, 0, testutil.CollectAndCount(requestDuration))
}
