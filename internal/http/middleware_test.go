package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func TestCorrelationIDMiddleware_GeneratesID(t *testing.T) {
	var gotID string
	var gotLogger *zap.Logger
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value("correlation_id").(string)
		gotLogger, _ = r.Context().Value("logger").(*zap.Logger)
	})

	handler := CorrelationIDMiddleware(zap.NewNop())(inner)
	req := httptest.NewRequest("GET", "/query", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if gotID == "" {
		t.Error("correlation_id not set in context")
	}
	if gotLogger == nil {
		t.Error("logger not set in context")
	}
	if rr.Header().Get("X-Correlation-ID") != gotID {
		t.Errorf("response header = %q, want %q", rr.Header().Get("X-Correlation-ID"), gotID)
	}
}

func TestCorrelationIDMiddleware_HonorsInboundID(t *testing.T) {
	var gotID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value("correlation_id").(string)
	})

	handler := CorrelationIDMiddleware(zap.NewNop())(inner)
	req := httptest.NewRequest("GET", "/query", nil)
	req.Header.Set("X-Correlation-ID", "client-supplied-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if gotID != "client-supplied-id" {
		t.Errorf("correlation_id = %q, want %q", gotID, "client-supplied-id")
	}
}

func TestMetricsMiddleware_PassesThrough(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	handler := MetricsMiddleware(inner)
	req := httptest.NewRequest("GET", "/query", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusTeapot)
	}
	if n := InFlightCount(); n != 0 {
		t.Errorf("in-flight count after completion = %d, want 0", n)
	}
}

func TestGetRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/query", "/query"},
		{"/tools", "/tools"},
		{"/tools/get_alerts", "/tools/{name}"},
		{"/unknown", "/unknown"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.path, nil)
		if got := getRoute(req); got != tt.want {
			t.Errorf("getRoute(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTimeoutMiddleware_SetsDeadline(t *testing.T) {
	var hasDeadline bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	})

	handler := TimeoutMiddleware(50 * time.Millisecond)(inner)
	req := httptest.NewRequest("GET", "/query", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !hasDeadline {
		t.Error("request context has no deadline")
	}
}

func TestTimeoutMiddleware_Expires(t *testing.T) {
	var err error
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			err = r.Context().Err()
		case <-time.After(2 * time.Second):
		}
	})

	handler := TimeoutMiddleware(10 * time.Millisecond)(inner)
	req := httptest.NewRequest("GET", "/query", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if err != context.DeadlineExceeded {
		t.Errorf("context error = %v, want DeadlineExceeded", err)
	}
}

func TestRateLimitMiddleware_Denies(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(1), 1)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(limiter)(inner)

	// First request consumes the burst; second is denied.
	req := httptest.NewRequest("POST", "/query", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", rr.Code, http.StatusOK)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRateLimitMiddleware_NilLimiterPassesThrough(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(nil)(inner)

	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("POST", "/query", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i, rr.Code, http.StatusOK)
		}
	}
}
