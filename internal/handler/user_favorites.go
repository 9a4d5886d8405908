package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/repository"
)

// UserHandler bundles repositories for the signed-in user's own data:
// favorites, view history and saved searches.
type UserHandler struct {
	Favorites  *repository.FavoriteRepo
	Views      *repository.ViewRepo
	Searches   *repository.SavedSearchRepo
	Properties *repository.PropertyRepo
}

func NewUserHandler(fav *repository.FavoriteRepo, views *repository.ViewRepo, searches *repository.SavedSearchRepo, props *repository.PropertyRepo) *UserHandler {
	if fav == nil || views == nil || searches == nil || props == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Favorites: fav, Views: views, Searches: searches, Properties: props}
}

// ListFavorites handles GET /v1/favorites and returns the favorited
// listings themselves, newest favorite first.
func (h *UserHandler) ListFavorites(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Favorites.ListProperties(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AddFavorite handles POST /v1/favorites/:id where :id is a listing id.
func (h *UserHandler) AddFavorite(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	propertyID := c.Param("id")
	if _, err := h.Properties.GetByID(ctx, propertyID); err != nil {
		if err == repository.ErrPropertyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	favID, err := h.Favorites.Add(ctx, uid, propertyID)
	if err != nil {
		if err == repository.ErrFavoriteExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add favorite"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": favID, "property_id": propertyID})
}

// RemoveFavorite handles DELETE /v1/favorites/:id. Removing a listing
// that was never favorited succeeds with no content.
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Favorites.Remove(c.Request().Context(), uid, c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not remove favorite"})
	}
	return c.NoContent(http.StatusNoContent)
}
