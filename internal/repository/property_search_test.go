package repository

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Max1335/property-insights-hub/internal/model"
	"github.com/Max1335/property-insights-hub/internal/search"
)

func TestListingConditions(t *testing.T) {
	t.Run("empty query still constrains status and price floor", func(t *testing.T) {
		cond, args := listingConditions(search.ListingQuery{})
		if cond != "status = ? AND price >= ?" {
			t.Errorf("unexpected clause: %s", cond)
		}
		if !reflect.DeepEqual(args, []any{model.StatusActive, 0.0}) {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("price ceiling only when positive", func(t *testing.T) {
		cond, args := listingConditions(search.ListingQuery{PriceMin: 1_000_000, PriceMax: 5_000_000})
		if !strings.Contains(cond, "price <= ?") {
			t.Errorf("expected upper bound in clause: %s", cond)
		}
		if !reflect.DeepEqual(args, []any{model.StatusActive, 1_000_000.0, 5_000_000.0}) {
			t.Errorf("unexpected args: %v", args)
		}

		cond, _ = listingConditions(search.ListingQuery{PriceMax: 0})
		if strings.Contains(cond, "price <= ?") {
			t.Errorf("zero ceiling must mean unbounded: %s", cond)
		}
	})

	t.Run("each optional filter contributes one conjunct", func(t *testing.T) {
		tests := []struct {
			name string
			q    search.ListingQuery
			want string
			arg  any
		}{
			{"city", search.ListingQuery{City: "Kyiv"}, "city = ?", "Kyiv"},
			{"type", search.ListingQuery{PropertyType: model.TypeApartment}, "property_type = ?", "apartment"},
			{"rooms", search.ListingQuery{Rooms: 2}, "rooms = ?", 2},
			{"condition", search.ListingQuery{Condition: model.ConditionRenovated}, "`condition` = ?", "renovated"},
			{"year", search.ListingQuery{MinYear: 2010}, "building_year >= ?", 2010},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cond, args := listingConditions(tt.q)
				if !strings.Contains(cond, tt.want) {
					t.Errorf("expected %q in clause %q", tt.want, cond)
				}
				if got := args[len(args)-1]; got != tt.arg {
					t.Errorf("expected trailing arg %v, got %v", tt.arg, got)
				}
			})
		}
	})

	t.Run("free text searches title and description case-insensitively", func(t *testing.T) {
		cond, args := listingConditions(search.ListingQuery{Text: "Bright FLAT"})
		if !strings.Contains(cond, "LOWER(title) LIKE ?") || !strings.Contains(cond, "LOWER(description) LIKE ?") {
			t.Errorf("expected title and description match in clause %q", cond)
		}
		needle := args[len(args)-1]
		if needle != "%bright flat%" {
			t.Errorf("expected lowercased needle, got %v", needle)
		}
	})

	t.Run("filters combine by conjunction", func(t *testing.T) {
		cond, args := listingConditions(search.ListingQuery{
			City:         "Odesa",
			PropertyType: model.TypeHouse,
			PriceMin:     500_000,
			PriceMax:     3_000_000,
			Rooms:        3,
		})
		if got := strings.Count(cond, " AND "); got != 5 {
			t.Errorf("expected 6 conjuncts, found %d separators in %q", got, cond)
		}
		if len(args) != 6 {
			t.Errorf("expected 6 args, got %d: %v", len(args), args)
		}
	})
}

func TestListingOrder(t *testing.T) {
	tests := []struct {
		sortBy string
		want   string
	}{
		{search.SortPriceAsc, "price ASC, created_at DESC, id ASC"},
		{search.SortPriceDesc, "price DESC, created_at DESC, id ASC"},
		{search.SortAreaDesc, "area DESC, created_at DESC, id ASC"},
		{search.SortNewest, "created_at DESC, id ASC"},
		{"garbage", "created_at DESC, id ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			if got := listingOrder(tt.sortBy); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
