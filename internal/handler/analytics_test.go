package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/metrics"
)

func mortgageRequest(t *testing.T, h *AnalyticsHandler, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/mortgage?"+params.Encode(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.GetMortgage(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestGetMortgage(t *testing.T) {
	h := NewAnalyticsHandler(nil)

	t.Run("computes the loan summary", func(t *testing.T) {
		rec := mortgageRequest(t, h, url.Values{
			"price":        {"5000000"},
			"down_payment": {"1000000"},
			"rate":         {"12"},
			"term":         {"20"},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var got metrics.LoanSummary
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Principal != 4_000_000 {
			t.Errorf("expected principal 4000000, got %v", got.Principal)
		}
		if math.Abs(got.MonthlyPayment-44043.49) > 1 {
			t.Errorf("expected monthly ~44043.49, got %v", got.MonthlyPayment)
		}
		if got.TotalInterest <= 0 {
			t.Errorf("expected positive interest, got %v", got.TotalInterest)
		}
	})

	t.Run("missing parameters answer 400", func(t *testing.T) {
		rec := mortgageRequest(t, h, url.Values{"price": {"5000000"}})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("down payment covering the price answers 400", func(t *testing.T) {
		rec := mortgageRequest(t, h, url.Values{
			"price":        {"5000000"},
			"down_payment": {"5000000"},
			"rate":         {"12"},
			"term":         {"20"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for zero principal, got %d", rec.Code)
		}
	})
}
