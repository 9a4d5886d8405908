package search

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// memorySearcher evaluates listing queries against an in-memory slice
// using the same contract the SQL composer implements: only active
// listings, inclusive price bounds, conjunctive filters and the
// deterministic sort orders with created_at/id tie-breaks.
type memorySearcher struct {
	rows []model.Property
}

func (m *memorySearcher) SearchListings(_ context.Context, q ListingQuery) ([]model.Property, int64, error) {
	var matched []model.Property
	for _, p := range m.rows {
		if m.matches(p, q) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return listingLess(matched[i], matched[j], q.SortBy)
	})

	total := int64(len(matched))
	start := (q.Page - 1) * q.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *memorySearcher) matches(p model.Property, q ListingQuery) bool {
	if p.Status != model.StatusActive {
		return false
	}
	if p.Price < q.PriceMin {
		return false
	}
	if q.PriceMax > 0 && p.Price > q.PriceMax {
		return false
	}
	if q.City != "" && p.City != q.City {
		return false
	}
	if q.PropertyType != "" && p.PropertyType != q.PropertyType {
		return false
	}
	if q.Rooms > 0 && (p.Rooms == nil || *p.Rooms != q.Rooms) {
		return false
	}
	if q.Condition != "" && p.Condition != q.Condition {
		return false
	}
	if q.MinYear > 0 && (p.BuildingYear == nil || *p.BuildingYear < q.MinYear) {
		return false
	}
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}

func listingLess(a, b model.Property, sortBy string) bool {
	switch sortBy {
	case SortPriceAsc:
		if a.Price != b.Price {
			return a.Price < b.Price
		}
	case SortPriceDesc:
		if a.Price != b.Price {
			return a.Price > b.Price
		}
	case SortAreaDesc:
		if a.Area != b.Area {
			return a.Area > b.Area
		}
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

func fixtureListings() []model.Property {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
	}
	return []model.Property{
		{ID: "kyiv-mid", City: "Kyiv", Price: 3_250_000, Status: model.StatusActive, CreatedAt: day(1)},
		{ID: "kyiv-low", City: "Kyiv", Price: 1_850_000, Status: model.StatusActive, CreatedAt: day(2)},
		{ID: "kyiv-lux", City: "Kyiv", Price: 7_400_000, Status: model.StatusActive, CreatedAt: day(3)},
		{ID: "kyiv-pending", City: "Kyiv", Price: 2_500_000, Status: model.StatusPending, CreatedAt: day(4)},
		{ID: "lviv-mid", City: "Lviv", Price: 2_100_000, Status: model.StatusActive, CreatedAt: day(5)},
		{ID: "odesa-low", City: "Odesa", Price: 950_000, Status: model.StatusActive, CreatedAt: day(6)},
	}
}

func resultIDs(res Result) []string {
	ids := make([]string, 0, len(res.Listings))
	for _, p := range res.Listings {
		ids = append(ids, p.ID)
	}
	return ids
}

// TestSearchScenario runs full filter configurations end to end
// through the runner and asserts the exact returned sequences, not
// just the generated predicates.
func TestSearchScenario(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(&memorySearcher{rows: fixtureListings()}, time.Second)

	t.Run("kyiv under five million, cheapest first", func(t *testing.T) {
		q := ListingQuery{City: "Kyiv", PriceMin: 0, PriceMax: 5_000_000, SortBy: SortPriceAsc}
		q.Normalize()
		res, err := r.Run(ctx, "user:1", q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"kyiv-low", "kyiv-mid"}
		got := resultIDs(res)
		if res.Total != 2 || len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("expected %v (total 2), got %v (total %d)", want, got, res.Total)
		}
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		q := ListingQuery{City: "Kyiv", PriceMin: 1_850_000, PriceMax: 3_250_000, SortBy: SortPriceAsc}
		q.Normalize()
		res, err := r.Run(ctx, "user:1", q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := resultIDs(res)
		if len(got) != 2 || got[0] != "kyiv-low" || got[1] != "kyiv-mid" {
			t.Errorf("listings priced exactly at the bounds must match, got %v", got)
		}
	})

	t.Run("pending listings never surface", func(t *testing.T) {
		q := ListingQuery{City: "Kyiv"}
		q.Normalize()
		res, err := r.Run(ctx, "user:1", q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, id := range resultIDs(res) {
			if id == "kyiv-pending" {
				t.Fatalf("pending listing leaked into results: %v", resultIDs(res))
			}
		}
		if res.Total != 3 {
			t.Errorf("expected the 3 active Kyiv listings, got total %d", res.Total)
		}
	})

	t.Run("equal prices break ties by newest then id", func(t *testing.T) {
		same := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
		rows := []model.Property{
			{ID: "b", City: "Dnipro", Price: 1_000_000, Status: model.StatusActive, CreatedAt: same},
			{ID: "a", City: "Dnipro", Price: 1_000_000, Status: model.StatusActive, CreatedAt: same},
			{ID: "c", City: "Dnipro", Price: 1_000_000, Status: model.StatusActive, CreatedAt: same.Add(time.Hour)},
		}
		r := NewRunner(&memorySearcher{rows: rows}, time.Second)

		q := ListingQuery{City: "Dnipro", SortBy: SortPriceAsc}
		q.Normalize()
		res, err := r.Run(ctx, "user:1", q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"c", "a", "b"}
		got := resultIDs(res)
		if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
			t.Errorf("expected deterministic order %v, got %v", want, got)
		}
	})

	t.Run("rerunning the same configuration is idempotent", func(t *testing.T) {
		q := ListingQuery{City: "Kyiv", PriceMax: 5_000_000, SortBy: SortPriceAsc}
		q.Normalize()
		first, err := r.Run(ctx, "user:1", q)
		if err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		second, err := r.Run(ctx, "user:1", q)
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}
		a, b := resultIDs(first), resultIDs(second)
		if len(a) != len(b) {
			t.Fatalf("result lengths differ: %v vs %v", a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("sequences diverge at %d: %v vs %v", i, a, b)
			}
		}
	})
}
