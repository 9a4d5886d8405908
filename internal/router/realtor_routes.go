package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/handler"
	"github.com/Max1335/property-insights-hub/internal/middleware"
	"github.com/Max1335/property-insights-hub/internal/model"
)

// RegisterRealtor registers the listing submission endpoints. Admins
// are allowed through too so they can fix up listings directly.
func RegisterRealtor(e *echo.Echo, r *handler.RealtorHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleRealtor, model.RoleAdmin),
	)

	g.POST("/listings", r.CreateListing)
	g.PATCH("/listings/:id", r.UpdateListing)
	g.GET("/my/listings", r.MyListings)
}
