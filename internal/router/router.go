package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Max1335/property-insights-hub/internal/config"
	"github.com/Max1335/property-insights-hub/internal/handler"
	"github.com/Max1335/property-insights-hub/internal/middleware"
	"github.com/Max1335/property-insights-hub/internal/model"
)

// RegisterRoutes registers routes that need no authentication and no
// other middleware. Currently that is only the health check used by
// load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register,
// login, refresh and logout live under /v1/auth and need no session;
// /v1/me requires a valid access token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access only issues a
	// new access token and leaves the refresh token alone.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleRealtor, model.RoleAdmin),
	)
	auth.GET("/me", a.Me)

	// Logout is also reachable without a bearer token; the refresh
	// token in the body is enough to end the session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the guest-visible browse API. The search
// and aggregate endpoints sit behind the Redis response cache and the
// token-bucket limiter; the listing detail endpoint skips the cache so
// every open still records a view.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, an *handler.AnalyticsHandler, jwtSecret string, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// OptionalJWT lets signed-in users be recognized here without
	// locking guests out: views get attributed and owners can open
	// their own pending listings.
	g := e.Group("/v1", middleware.OptionalJWT(jwtSecret), limiter)
	g.GET("/listings", p.SearchListings, cached)
	g.GET("/listings/featured", p.GetFeatured, cached)
	g.GET("/listings/:id", p.GetListing)
	g.GET("/listings/:id/price-history", p.GetPriceHistory)
	g.GET("/stats/market", an.GetMarketStats, cached)
	g.GET("/mortgage", an.GetMortgage)
}
