package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// viewedItem pairs a history row with the listing it refers to.
type viewedItem struct {
	PropertyID string `json:"property_id"`
	ViewedAt   string `json:"viewed_at"`
	Listing    any    `json:"listing,omitempty"`
}

// ListViewHistory handles GET /v1/history/views: the listings the user
// opened most recently, newest first, each appearing once.
func (h *UserHandler) ListViewHistory(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	views, err := h.Views.RecentByUser(ctx, uid, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.PropertyID)
	}
	listings, err := h.Properties.GetMany(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	byID := make(map[string]any, len(listings))
	for _, p := range listings {
		byID[p.ID] = p
	}

	out := make([]viewedItem, 0, len(views))
	for _, v := range views {
		out = append(out, viewedItem{
			PropertyID: v.PropertyID,
			ViewedAt:   v.ViewedAt.UTC().Format("2006-01-02 15:04:05"),
			Listing:    byID[v.PropertyID],
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ----- saved searches -----

type savedSearchReq struct {
	Name    string          `json:"name"`
	Filters json.RawMessage `json:"filters"`
	Notify  bool            `json:"notify"`
}

// ListSavedSearches handles GET /v1/searches.
func (h *UserHandler) ListSavedSearches(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Searches.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateSavedSearch handles POST /v1/searches. The filters payload is
// stored as opaque JSON exactly as submitted so the client can re-run
// the search with its own parameter names.
func (h *UserHandler) CreateSavedSearch(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req savedSearchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	filters := string(req.Filters)
	if filters == "" {
		filters = "{}"
	}
	id, err := h.Searches.Create(c.Request().Context(), uid, name, filters, req.Notify)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save search"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": name})
}

// DeleteSavedSearch handles DELETE /v1/searches/:id.
func (h *UserHandler) DeleteSavedSearch(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Searches.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "saved search not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
