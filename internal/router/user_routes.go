package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/handler"
	"github.com/Max1335/property-insights-hub/internal/middleware"
	"github.com/Max1335/property-insights-hub/internal/model"
)

// RegisterUser registers the signed-in user's personal endpoints under
// /v1: favorites, view history, saved searches and the comparison set.
// Any authenticated role may use them.
func RegisterUser(e *echo.Echo, u *handler.UserHandler, cmp *handler.CompareHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleRealtor, model.RoleAdmin),
	)

	// ---- Favorites ----
	g.GET("/favorites", u.ListFavorites)
	g.POST("/favorites/:id", u.AddFavorite)
	g.DELETE("/favorites/:id", u.RemoveFavorite)

	// ---- View history ----
	g.GET("/history/views", u.ListViewHistory)

	// ---- Saved searches ----
	g.GET("/searches", u.ListSavedSearches)
	g.POST("/searches", u.CreateSavedSearch)
	g.DELETE("/searches/:id", u.DeleteSavedSearch)

	// ---- Comparison set ----
	g.GET("/compare", cmp.GetCompare)
	g.POST("/compare/save", cmp.SaveCompare)
	g.GET("/compare/history", cmp.ListSavedCompares)
	g.POST("/compare/:id", cmp.AddToCompare)
	g.DELETE("/compare/:id", cmp.RemoveFromCompare)
	g.DELETE("/compare", cmp.ClearCompare)
}
