package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rezkam/todo/internal/infrastructure/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsRoutePatternAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Handler)
	r.Route("/todo", func(r chi.Router) {
		r.Post("/insert", func(w http.ResponseWriter, r *http.Request) {})
		r.Post("/get", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	})

	for _, path := range []string{"/todo/insert", "/todo/insert", "/todo/get", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{code="200",method="POST",route="/todo/insert"} 2
http_requests_total{code="404",method="POST",route="/todo/get"} 1
http_requests_total{code="404",method="POST",route="unmatched"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))

	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "one histogram series per method and route")

	active, err := testutil.GatherAndCount(reg, "http_active_requests")
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}
