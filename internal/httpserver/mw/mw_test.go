package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/splice/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestMatchHost(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		pattern string
		want    bool
	}{
		{"exact", "editor.example.com", "editor.example.com", true},
		{"wildcard subdomain", "a.example.com", "*.example.com", true},
		{"wildcard nested", "a.b.example.com", "*.example.com", true},
		{"wildcard apex", "example.com", "*.example.com", false},
		{"different host", "evil.com", "editor.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchHost(tt.host, tt.pattern); got != tt.want {
				t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"*.example.com"}, logger.Nop())(okHandler)

	tests := []struct {
		host string
		want int
	}{
		{"editor.example.com", http.StatusOK},
		{"localhost", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = tt.host
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("Host %q: status = %d, want %d", tt.host, rec.Code, tt.want)
		}
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, false, logger.Nop())(okHandler)

	tests := []struct {
		remote string
		want   int
	}{
		{"10.1.2.3:5555", http.StatusOK},
		{"192.168.1.1:5555", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("RemoteAddr %q: status = %d, want %d", tt.remote, rec.Code, tt.want)
		}
	}
}

func TestCORS(t *testing.T) {
	h := CORS("*.example.com")(okHandler)

	tests := []struct {
		name       string
		method     string
		origin     string
		preflight  bool
		wantStatus int
		wantOrigin string
	}{
		{"no origin", http.MethodGet, "", false, http.StatusOK, ""},
		{"allowed simple", http.MethodPost, "https://editor.example.com", false, http.StatusOK, "https://editor.example.com"},
		{"allowed preflight", http.MethodOptions, "https://editor.example.com", true, http.StatusNoContent, "https://editor.example.com"},
		{"refused preflight", http.MethodOptions, "https://evil.com", true, http.StatusNoContent, ""},
		{"refused simple", http.MethodGet, "https://evil.com", false, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/timeline", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestCORSOpenWhenUnconfigured(t *testing.T) {
	h := CORS()(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/api/timeline", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 1})(okHandler)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/undo", nil)
		req.RemoteAddr = "10.0.0.7:4242"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send(); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestLimiterRefill(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, RefillPerIPPerMin: 60})
	now := time.Now()

	if ok, _, _ := l.allow("a", now); !ok {
		t.Fatal("first request refused")
	}
	if ok, _, retry := l.allow("a", now); ok || retry != 1 {
		t.Fatalf("second request: ok=%v retry=%d, want refused with retry 1", ok, retry)
	}
	if ok, _, _ := l.allow("a", now.Add(time.Second)); !ok {
		t.Error("request after refill refused")
	}
	if ok, _, _ := l.allow("b", now); !ok {
		t.Error("other client shares a bucket")
	}
}

func TestLogPassesResponseThrough(t *testing.T) {
	h := Log(logger.Nop(), "/api/time")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/api/time", "/api/timeline"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
			t.Errorf("%s: got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

func TestStatusWriterDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}
	if _, err := sw.Write([]byte("abc")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if sw.status != http.StatusOK || sw.bytes != 3 {
		t.Errorf("status = %d, bytes = %d, want 200, 3", sw.status, sw.bytes)
	}
}
