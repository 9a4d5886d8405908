// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to search listings, open listing details and read
// price history. Only active listings are ever exposed here; pending and
// rejected rows stay visible to their owner and to admins only.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/model"
	"github.com/Max1335/property-insights-hub/internal/queue"
	"github.com/Max1335/property-insights-hub/internal/repository"
	"github.com/Max1335/property-insights-hub/internal/search"
	queue_publisher "github.com/Max1335/property-insights-hub/internal/service"
)

// PublicHandler aggregates the dependencies needed for unauthenticated
// browsing. The search runner enforces the bounded timeout and the
// last-configuration-wins guard on the search path.
type PublicHandler struct {
	Properties *repository.PropertyRepo
	Changes    *repository.ChangeRepo
	Users      *repository.UserRepo
	Runner     *search.Runner
}

func NewPublicHandler(props *repository.PropertyRepo, changes *repository.ChangeRepo, users *repository.UserRepo, runner *search.Runner) *PublicHandler {
	return &PublicHandler{Properties: props, Changes: changes, Users: users, Runner: runner}
}

// sellerPart is the sanitized seller contact block on a listing detail.
type sellerPart struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// listingDetail is a listing plus its seller contacts.
type listingDetail struct {
	model.Property
	Seller *sellerPart `json:"seller,omitempty"`
}

// SearchListings handles GET /v1/listings. Filter parameters: city,
// type, price_min, price_max, rooms, condition, min_year, q; sorting
// via sort (newest|price_asc|price_desc|area_desc); pagination via
// page/page_size. Any backend failure renders as an empty-result error
// payload the client can retry.
func (h *PublicHandler) SearchListings(c echo.Context) error {
	q := search.ListingQuery{
		City:         c.QueryParam("city"),
		PropertyType: c.QueryParam("type"),
		Condition:    c.QueryParam("condition"),
		Text:         c.QueryParam("q"),
		SortBy:       c.QueryParam("sort"),
	}
	q.PriceMin, _ = strconv.ParseFloat(c.QueryParam("price_min"), 64)
	q.PriceMax, _ = strconv.ParseFloat(c.QueryParam("price_max"), 64)
	q.Rooms, _ = strconv.Atoi(c.QueryParam("rooms"))
	q.MinYear, _ = strconv.Atoi(c.QueryParam("min_year"))
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	q.Normalize()

	res, err := h.Runner.Run(c.Request().Context(), searchSession(c), q)
	if err != nil {
		if errors.Is(err, search.ErrStale) {
			// A newer configuration superseded this call; its result
			// must not be displayed.
			return c.JSON(http.StatusConflict, echo.Map{"error": "superseded"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error":   "query_failed",
			"message": "search is temporarily unavailable, retry with the same filters",
			"data":    []model.Property{},
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":      res.Listings,
		"total":     res.Total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// GetFeatured handles GET /v1/listings/featured: the newest active
// listings for the home page.
func (h *PublicHandler) GetFeatured(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 12 {
		limit = 3
	}
	items, err := h.Properties.Featured(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetListing handles GET /v1/listings/:id. Opening a detail page
// publishes a view event; the broker call is fire-and-forget so the
// response never waits on it.
func (h *PublicHandler) GetListing(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPropertyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// Pending and rejected listings are only visible to their owner and admins.
	if p.Status != model.StatusActive && !canSeeInactive(c, p.SellerID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	resp := listingDetail{Property: p}
	if u, err := h.Users.GetByID(ctx, p.SellerID); err == nil {
		resp.Seller = &sellerPart{ID: u.ID, FullName: u.FullName, Phone: u.Phone}
	}

	if p.Status == model.StatusActive {
		ev := queue.ListingViewedEvent{
			PropertyID: p.ID,
			UserID:     optionalUserID(c),
			ViewedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		// Detach from the request context so the publish survives the
		// response being written.
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue_publisher.PublishListingViewed(pubCtx, ev)
		}()
	}

	return c.JSON(http.StatusOK, resp)
}

// searchSession identifies the client whose filter configurations
// supersede each other. Signed-in users get a stable key across
// devices; guests are keyed by IP. Queries from different sessions
// never invalidate one another.
func searchSession(c echo.Context) string {
	if uid, err := getUserID(c); err == nil {
		return "user:" + strconv.FormatUint(uid, 10)
	}
	if ip := c.RealIP(); ip != "" {
		return "ip:" + ip
	}
	return ""
}

// canSeeInactive reports whether the requester owns the listing or is
// an admin.
func canSeeInactive(c echo.Context, sellerID uint64) bool {
	if role, ok := c.Get("role").(string); ok && role == model.RoleAdmin {
		return true
	}
	if uid, err := getUserID(c); err == nil && uid == sellerID {
		return true
	}
	return false
}

// GetPriceHistory handles GET /v1/listings/:id/price-history and
// returns the newest recorded price changes for a listing.
func (h *PublicHandler) GetPriceHistory(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.Properties.GetByID(ctx, id); err != nil {
		if err == repository.ErrPropertyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	changes, err := h.Changes.PriceHistory(ctx, id, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": changes})
}
