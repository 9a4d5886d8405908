package handler

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/model"
	"github.com/Max1335/property-insights-hub/internal/repository"
)

// AdminHandler serves the moderation queue and platform dashboards.
// Every route behind it requires the ADMIN role.
type AdminHandler struct {
	Properties *repository.PropertyRepo
	Users      *repository.UserRepo
	Tokens     *repository.TokenRepo
	Stats      *repository.StatsRepo
}

func NewAdminHandler(props *repository.PropertyRepo, users *repository.UserRepo, tokens *repository.TokenRepo, stats *repository.StatsRepo) *AdminHandler {
	if props == nil || users == nil || tokens == nil || stats == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Properties: props, Users: users, Tokens: tokens, Stats: stats}
}

// ListPending handles GET /v1/admin/listings/pending. Oldest
// submissions come first so moderators work the queue in order.
func (h *AdminHandler) ListPending(c echo.Context) error {
	items, err := h.Properties.ListPending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ApproveListing handles POST /v1/admin/listings/:id/approve.
func (h *AdminHandler) ApproveListing(c echo.Context) error {
	return h.moderate(c, model.StatusActive)
}

// RejectListing handles POST /v1/admin/listings/:id/reject.
func (h *AdminHandler) RejectListing(c echo.Context) error {
	return h.moderate(c, model.StatusRejected)
}

// moderate transitions one pending listing. A listing that already
// left the pending state answers 409 so double-clicks and concurrent
// moderators cannot flip a decision.
func (h *AdminHandler) moderate(c echo.Context, status string) error {
	id := c.Param("id")
	err := h.Properties.SetStatus(c.Request().Context(), id, status)
	switch err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
	case repository.ErrPropertyNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "listing already moderated"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update listing"})
	}
}

// adminUserPart is the user row shown on the admin dashboard. The
// password hash never leaves the repository layer.
type adminUserPart struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FullName  string `json:"full_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	users, err := h.Users.List(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]adminUserPart, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserPart{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			FullName:  u.FullName,
			Phone:     u.Phone,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// DeactivateUser handles DELETE /v1/admin/users/:id. Deletion is
// soft: the user keeps their rows but can no longer sign in.
func (h *AdminHandler) DeactivateUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if self, err := getUserID(c); err == nil && self == id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot deactivate yourself"})
	}
	ctx := c.Request().Context()
	if err := h.Users.Deactivate(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not deactivate user"})
	}
	// End their sessions too; an access token may stay valid until it
	// expires, but nothing can be refreshed anymore.
	_ = h.Tokens.RevokeAllForUser(ctx, id)
	return c.NoContent(http.StatusNoContent)
}

// GetStats handles GET /v1/admin/stats with the live platform counters.
func (h *AdminHandler) GetStats(c echo.Context) error {
	s, err := h.Stats.Admin(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, s)
}
