package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/config"
)

func limiterContext(t *testing.T, userID any) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/listings")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestCurrentUserID(t *testing.T) {
	// JWTAuth stores the raw "sub" claim, so the float64 shape is the
	// one every signed-in request actually carries.
	cases := []struct {
		name   string
		userID any
		want   string
	}{
		{"guest", nil, "anon"},
		{"float64 claim", float64(42), "42"},
		{"uint64", uint64(7), "7"},
		{"int64", int64(9), "9"},
		{"int", 11, "11"},
		{"string", "13", "13"},
		{"empty string", "", "anon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := currentUserID(limiterContext(t, tc.userID)); got != tc.want {
				t.Errorf("currentUserID = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRateKey(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "ratelimit", KeyStrategy: "user"}

	t.Run("signed-in user gets an own bucket", func(t *testing.T) {
		got := rateKey(cfg, limiterContext(t, float64(42)))
		if got != "ratelimit:user:42" {
			t.Errorf("rateKey = %q, want %q", got, "ratelimit:user:42")
		}
	})

	t.Run("guests share the anon slot", func(t *testing.T) {
		got := rateKey(cfg, limiterContext(t, nil))
		if got != "ratelimit:user:anon" {
			t.Errorf("rateKey = %q, want %q", got, "ratelimit:user:anon")
		}
	})

	t.Run("default strategy keys ip, user and route", func(t *testing.T) {
		cfg := config.RateLimitConfig{Prefix: "ratelimit", KeyStrategy: ""}
		got := rateKey(cfg, limiterContext(t, float64(42)))
		want := "ratelimit:ip:203.0.113.7:user:42:route:GET /v1/listings"
		if got != want {
			t.Errorf("rateKey = %q, want %q", got, want)
		}
	})
}
