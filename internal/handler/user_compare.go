package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Max1335/property-insights-hub/internal/compare"
	"github.com/Max1335/property-insights-hub/internal/repository"
)

// CompareHandler serves the per-user comparison set. The live set is
// held in Redis keyed by user id; when Redis is not configured it
// degrades to process memory so the feature keeps working in dev.
type CompareHandler struct {
	Properties  *repository.PropertyRepo
	Comparisons *repository.ComparisonRepo
	rdb         *redis.Client
	fallback    *compare.MemoryKeyspace
}

func NewCompareHandler(props *repository.PropertyRepo, comps *repository.ComparisonRepo, rdb *redis.Client) *CompareHandler {
	if props == nil || comps == nil {
		panic("nil repository passed to NewCompareHandler")
	}
	h := &CompareHandler{Properties: props, Comparisons: comps, rdb: rdb}
	if rdb == nil {
		h.fallback = compare.NewMemoryKeyspace()
	}
	return h
}

func (h *CompareHandler) storeFor(userID uint64) compare.Store {
	owner := strconv.FormatUint(userID, 10)
	if h.rdb != nil {
		return compare.NewRedisStore(h.rdb, owner)
	}
	return h.fallback.Store(owner)
}

// loadSet resolves the caller and restores their comparison set. On
// failure the response has already been written and ok is false.
func (h *CompareHandler) loadSet(c echo.Context) (uint64, *compare.Set, bool) {
	uid, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return 0, nil, false
	}
	set, err := compare.Restore(c.Request().Context(), h.storeFor(uid))
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load comparison set"})
		return 0, nil, false
	}
	return uid, set, true
}

// GetCompare handles GET /v1/compare. It returns the ordered ids plus
// the listings themselves so clients can render the table directly.
func (h *CompareHandler) GetCompare(c echo.Context) error {
	_, set, ok := h.loadSet(c)
	if !ok {
		return nil
	}
	ids := set.IDs()
	items, dbErr := h.Properties.GetMany(c.Request().Context(), ids)
	if dbErr != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ids":      ids,
		"items":    items,
		"count":    set.Len(),
		"capacity": compare.MaxItems,
	})
}

// AddToCompare handles POST /v1/compare/:id. Adding a listing already
// in the set is a no-op; a full set answers 409.
func (h *CompareHandler) AddToCompare(c echo.Context) error {
	_, set, ok := h.loadSet(c)
	if !ok {
		return nil
	}
	ctx := c.Request().Context()
	propertyID := c.Param("id")
	if _, err := h.Properties.GetByID(ctx, propertyID); err != nil {
		if err == repository.ErrPropertyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := set.Add(ctx, propertyID); err != nil {
		if errors.Is(err, compare.ErrCapacityExceeded) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":    "comparison set is full",
				"capacity": compare.MaxItems,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update comparison set"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ids": set.IDs(), "count": set.Len()})
}

// RemoveFromCompare handles DELETE /v1/compare/:id. Removing an id
// that is not in the set succeeds.
func (h *CompareHandler) RemoveFromCompare(c echo.Context) error {
	_, set, ok := h.loadSet(c)
	if !ok {
		return nil
	}
	if err := set.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update comparison set"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ids": set.IDs(), "count": set.Len()})
}

// ClearCompare handles DELETE /v1/compare.
func (h *CompareHandler) ClearCompare(c echo.Context) error {
	_, set, ok := h.loadSet(c)
	if !ok {
		return nil
	}
	if err := set.Clear(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not clear comparison set"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SaveCompare handles POST /v1/compare/save and snapshots the current
// set into the database. An empty set cannot be saved.
func (h *CompareHandler) SaveCompare(c echo.Context) error {
	uid, set, ok := h.loadSet(c)
	if !ok {
		return nil
	}
	ids := set.IDs()
	if len(ids) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comparison set is empty"})
	}
	snapID, err := h.Comparisons.SaveSnapshot(c.Request().Context(), uid, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save comparison"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": snapID, "property_ids": ids})
}

// ListSavedCompares handles GET /v1/compare/history.
func (h *CompareHandler) ListSavedCompares(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Comparisons.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
