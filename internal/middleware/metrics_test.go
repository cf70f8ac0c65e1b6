package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := NewMetrics("training_log")
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/training_log/{page}/workouts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, page := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/training_log/"+page+"/workouts", nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/training_log/{page}/workouts", "418"))
	assert.Equal(t, float64(2), got)

	m.SetDBUp(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dbUp))
	m.SetDBUp(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.dbUp))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "training_log_http_requests_total"))
}
