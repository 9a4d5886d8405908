package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/handler"
	"github.com/Max1335/property-insights-hub/internal/middleware"
	"github.com/Max1335/property-insights-hub/internal/model"
)

// RegisterAdmin registers the moderation and platform dashboard
// endpoints under /v1/admin. ADMIN role only.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Moderation queue ----
	g.GET("/listings/pending", a.ListPending)
	g.POST("/listings/:id/approve", a.ApproveListing)
	g.POST("/listings/:id/reject", a.RejectListing)

	// ---- Users ----
	g.GET("/users", a.ListUsers)
	// Accounts are deactivated, never hard-deleted; history rows keep
	// their author.
	g.DELETE("/users/:id", a.DeactivateUser)

	// ---- Dashboard ----
	g.GET("/stats", a.GetStats)
}
