package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Max1335/property-insights-hub/internal/model"
	"github.com/Max1335/property-insights-hub/internal/queue"
	"github.com/Max1335/property-insights-hub/internal/repository"
	queue_publisher "github.com/Max1335/property-insights-hub/internal/service"
)

// RealtorHandler owns the listing submission and edit flow for
// authenticated realtors.
type RealtorHandler struct {
	Properties *repository.PropertyRepo
}

func NewRealtorHandler(props *repository.PropertyRepo) *RealtorHandler {
	if props == nil {
		panic("nil repository passed to NewRealtorHandler")
	}
	return &RealtorHandler{Properties: props}
}

type createListingReq struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Area            float64  `json:"area"`
	Rooms           *int     `json:"rooms"`
	City            string   `json:"city"`
	District        string   `json:"district"`
	Address         string   `json:"address"`
	PropertyType    string   `json:"property_type"`
	TransactionType string   `json:"transaction_type"`
	Floor           *int     `json:"floor"`
	TotalFloors     *int     `json:"total_floors"`
	BuildingYear    *int     `json:"building_year"`
	Condition       string   `json:"condition"`
	Features        []string `json:"features"`
	Images          []string `json:"images"`
}

func (r createListingReq) validate() string {
	switch {
	case r.Title == "":
		return "title is required"
	case r.Price <= 0:
		return "price must be positive"
	case r.Area <= 0:
		return "area must be positive"
	case !model.ValidCity(r.City):
		return "unknown city"
	case !model.ValidType(r.PropertyType):
		return "unknown property type"
	case r.TransactionType != model.TransactionSale && r.TransactionType != model.TransactionRent:
		return "transaction_type must be sale or rent"
	case !model.ValidCondition(r.Condition):
		return "unknown condition"
	}
	if r.Rooms != nil && *r.Rooms <= 0 {
		return "rooms must be positive"
	}
	return ""
}

// CreateListing handles POST /v1/listings. New submissions always
// enter moderation as pending; the realtor sees them immediately in
// their own list but the public does not until an admin approves.
func (h *RealtorHandler) CreateListing(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	p := model.Property{
		SellerID:        uid,
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		Area:            req.Area,
		Rooms:           req.Rooms,
		City:            req.City,
		District:        req.District,
		Address:         req.Address,
		PropertyType:    req.PropertyType,
		TransactionType: req.TransactionType,
		Floor:           req.Floor,
		TotalFloors:     req.TotalFloors,
		BuildingYear:    req.BuildingYear,
		Condition:       req.Condition,
		Features:        req.Features,
		Images:          req.Images,
	}
	if err := h.Properties.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create listing"})
	}
	return c.JSON(http.StatusCreated, p)
}

type updateListingReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Condition   *string  `json:"condition"`
	Features    []string `json:"features"`
	Images      []string `json:"images"`
}

// UpdateListing handles PATCH /v1/listings/:id. Only the owner may
// edit, and only a limited set of fields. A price move is announced on
// the broker so the history consumer can record it.
func (h *RealtorHandler) UpdateListing(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Price != nil && *req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}
	if req.Condition != nil && !model.ValidCondition(*req.Condition) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown condition"})
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	oldPrice, err := h.Properties.UpdateByOwner(ctx, id, uid, repository.PropertyUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Condition:   req.Condition,
		Features:    req.Features,
		Images:      req.Images,
	})
	if err != nil {
		switch err {
		case repository.ErrPropertyNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update listing"})
	}

	if req.Price != nil && *req.Price != oldPrice {
		ev := queue.PriceChangedEvent{
			PropertyID: id,
			OldPrice:   oldPrice,
			NewPrice:   *req.Price,
			ChangedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue_publisher.PublishPriceChanged(pubCtx, ev)
		}()
	}

	fresh, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load listing"})
	}
	return c.JSON(http.StatusOK, fresh)
}

// MyListings handles GET /v1/my/listings and returns every listing the
// caller submitted, including pending and rejected ones.
func (h *RealtorHandler) MyListings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Properties.ListBySeller(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
