package model

import "time"

// Property statuses. A listing is created as pending by a realtor
// submission, moderated to active or rejected by an admin, and is
// never hard-deleted.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
)

// Property types accepted by the listing form and the search filters.
const (
	TypeApartment  = "apartment"
	TypeHouse      = "house"
	TypeOffice     = "office"
	TypeCommercial = "commercial"
)

// Transaction types.
const (
	TransactionSale = "sale"
	TransactionRent = "rent"
)

// Property conditions.
const (
	ConditionNew         = "new"
	ConditionRenovated   = "renovated"
	ConditionGood        = "good"
	ConditionNeedsRepair = "needs_repair"
)

// Cities covered by the platform.
var Cities = []string{"Kyiv", "Kharkiv", "Odesa", "Dnipro", "Lviv"}

// Property represents one listing row in the `properties` table.
// The ID is a UUID string generated at insert time.  PricePerSqm is
// derived from Price/Area and kept in sync on every write; when both
// are present it must equal Price divided by Area within rounding
// tolerance.
//
// Fields:
//  ID              – UUID primary key.
//  SellerID        – users.id of the submitting realtor.
//  Title           – short headline.
//  Description     – free-form description text.
//  Price           – asking price in UAH.
//  PricePerSqm     – derived price per square meter.
//  Area            – floor area in square meters.
//  Rooms           – room count (nil for offices/commercial).
//  City            – one of the five covered cities.
//  District        – district within the city.
//  Address         – street address.
//  PropertyType    – apartment, house, office or commercial.
//  TransactionType – sale or rent.
//  Status          – pending, active or rejected.
//  Floor           – floor number (nullable).
//  TotalFloors     – floors in the building (nullable).
//  BuildingYear    – construction year (nullable).
//  Condition       – new, renovated, good or needs_repair.
//  Features        – ordered free-form feature tags, stored as JSON.
//  Images          – ordered image URLs, stored as JSON.
//  ViewsCount      – total recorded views.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Property struct {
	ID              string    `json:"id"`               // properties.id
	SellerID        uint64    `json:"seller_id"`        // properties.seller_id
	Title           string    `json:"title"`            // properties.title
	Description     string    `json:"description"`      // properties.description
	Price           float64   `json:"price"`            // properties.price
	PricePerSqm     float64   `json:"price_per_sqm"`    // properties.price_per_sqm
	Area            float64   `json:"area"`             // properties.area
	Rooms           *int      `json:"rooms,omitempty"`  // properties.rooms (nullable)
	City            string    `json:"city"`             // properties.city
	District        string    `json:"district"`         // properties.district
	Address         string    `json:"address"`          // properties.address
	PropertyType    string    `json:"property_type"`    // properties.property_type
	TransactionType string    `json:"transaction_type"` // properties.transaction_type
	Status          string    `json:"status"`           // properties.status
	Floor           *int      `json:"floor,omitempty"`        // properties.floor (nullable)
	TotalFloors     *int      `json:"total_floors,omitempty"` // properties.total_floors (nullable)
	BuildingYear    *int      `json:"building_year,omitempty"` // properties.building_year (nullable)
	Condition       string    `json:"condition"`        // properties.condition
	Features        []string  `json:"features"`         // properties.features (JSON array)
	Images          []string  `json:"images"`           // properties.images (JSON array)
	ViewsCount      uint64    `json:"views_count"`      // properties.views_count
	CreatedAt       time.Time `json:"created_at"`       // properties.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // properties.updated_at
}

// ValidType reports whether t is a recognized property type.
func ValidType(t string) bool {
	switch t {
	case TypeApartment, TypeHouse, TypeOffice, TypeCommercial:
		return true
	}
	return false
}

// ValidCondition reports whether c is a recognized condition value.
func ValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionRenovated, ConditionGood, ConditionNeedsRepair:
		return true
	}
	return false
}

// ValidCity reports whether city is one of the covered cities.
func ValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}
