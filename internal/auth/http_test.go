package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trainingLog/internal/testutil"
)

func TestRequireBearer(t *testing.T) {
	var seen string
	h := RequireBearer(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok {
			t.Fatalf("principal missing in handler")
		}
		seen = p.Username
		w.WriteHeader(http.StatusNoContent)
	}))

	// missing header
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workouts", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", rec.Code)
	}

	// wrong scheme
	tok := testutil.GenerateJWTHS256(t, testSecret, "dave", time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
	req.Header.Set("Authorization", "Basic "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", rec.Code)
	}

	// valid bearer
	req = httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
	req.Header.Set("Authorization", "bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || seen != "dave" {
		t.Fatalf("expected pass-through for dave, got code=%d seen=%q", rec.Code, seen)
	}
}
