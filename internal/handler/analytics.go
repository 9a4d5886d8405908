// This file serves the market analytics surface: the static market
// overview dataset, live per-city aggregates and the mortgage
// calculator.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/metrics"
	"github.com/Max1335/property-insights-hub/internal/repository"
)

// Static market overview dataset. These figures are product-owned copy
// maintained by the content team, not derived from the listings table;
// the live counters next to them come from StatsRepo.
var marketOverview = echo.Map{
	"total_active_listings": 9174,
	"listings_change_pct":   12.3,
	"avg_price_per_sqm":     34795,
	"avg_price_change_pct":  2.1,
	"price_trends": []echo.Map{
		{"month": "Jan", "kyiv": 43500, "kharkiv": 28000, "odesa": 37000, "dnipro": 25000, "lviv": 34000},
		{"month": "Feb", "kyiv": 44200, "kharkiv": 28200, "odesa": 37800, "dnipro": 25500, "lviv": 34500},
		{"month": "Mar", "kyiv": 44800, "kharkiv": 28400, "odesa": 38200, "dnipro": 25800, "lviv": 35000},
		{"month": "Apr", "kyiv": 45280, "kharkiv": 28650, "odesa": 38920, "dnipro": 26340, "lviv": 35780},
	},
	"price_distribution": []echo.Map{
		{"bucket": "Under ₴2M", "share": 25},
		{"bucket": "₴2M - ₴5M", "share": 35},
		{"bucket": "₴5M - ₴10M", "share": 25},
		{"bucket": "Over ₴10M", "share": 15},
	},
}

const cityStatsKey = "by_city"

// AnalyticsHandler serves market statistics and the mortgage
// calculator. Live per-city aggregates are cached in-process for a few
// minutes; the analytics page is read far more often than the listings
// table changes.
type AnalyticsHandler struct {
	Stats *repository.StatsRepo
	cache *ttlcache.Cache[string, []repository.CityStat]
}

func NewAnalyticsHandler(stats *repository.StatsRepo) *AnalyticsHandler {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, []repository.CityStat](10*time.Minute),
		ttlcache.WithDisableTouchOnHit[string, []repository.CityStat](),
	)
	go cache.Start()
	return &AnalyticsHandler{Stats: stats, cache: cache}
}

// GetMarketStats handles GET /v1/stats/market: the static overview
// dataset plus live per-city aggregates.
func (h *AnalyticsHandler) GetMarketStats(c echo.Context) error {
	var cities []repository.CityStat
	if item := h.cache.Get(cityStatsKey); item != nil {
		cities = item.Value()
	} else {
		fresh, err := h.Stats.ByCity(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		h.cache.Set(cityStatsKey, fresh, ttlcache.DefaultTTL)
		cities = fresh
	}
	return c.JSON(http.StatusOK, echo.Map{
		"overview": marketOverview,
		"cities":   cities,
	})
}

// GetMortgage handles GET /v1/mortgage. Parameters: price,
// down_payment, rate (annual percent), term (years). The principal is
// price minus down payment. Precondition violations map to 400.
func (h *AnalyticsHandler) GetMortgage(c echo.Context) error {
	price, err := strconv.ParseFloat(c.QueryParam("price"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price is required"})
	}
	downPayment, _ := strconv.ParseFloat(c.QueryParam("down_payment"), 64)
	rate, err := strconv.ParseFloat(c.QueryParam("rate"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rate is required"})
	}
	term, err := strconv.Atoi(c.QueryParam("term"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "term is required"})
	}

	summary, err := metrics.Summarize(price-downPayment, rate, term)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summary)
}
