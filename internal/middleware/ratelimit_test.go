package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"trainingLog/internal/logging"
)

func TestRateLimiter_BlocksBurstPerClient(t *testing.T) {
	m := NewMetrics("rl")
	rl := NewRateLimiter(1, 2, logging.Discard(), m)
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	post := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, post("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, post("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.1:1002"), "same host, new port")
	assert.Equal(t, http.StatusNoContent, post("10.0.0.2:1000"), "other client")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rateLimit))

	// GET requests are never limited.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1003"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, logging.Discard(), nil)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(10 * time.Minute)
	rl.getLimiter("b")

	assert.Equal(t, 2, rl.Len())
	assert.Equal(t, 1, rl.Cleanup(5*time.Minute))
	assert.Equal(t, 1, rl.Len())
}
