package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth validates the Bearer access token and puts the subject and
// role claims into the request context under "user_id" and "role".
// Handlers behind it read those keys; type assertions are left to the
// consumers.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return jwtAuth(secret, true)
}

// OptionalJWT attaches identity like JWTAuth when a valid bearer token
// is present but lets anonymous requests through. The public browse
// routes use it so view events and rate-limit buckets can be
// attributed to signed-in users, and owners can open their own pending
// listings.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return jwtAuth(secret, false)
}

func jwtAuth(secret string, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				if !required {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Tokens are always issued with HS256; anything else is forged.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				if !required {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				if !required {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}
