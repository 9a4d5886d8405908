package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// fakeSearcher drives Run deterministically: queries whose Text is
// "slow" block until release is closed, everything else resolves
// immediately.
type fakeSearcher struct {
	started  chan struct{}
	release  chan struct{}
	listings []model.Property
	err      error
}

func (f *fakeSearcher) SearchListings(ctx context.Context, q ListingQuery) ([]model.Property, int64, error) {
	if q.Text == "slow" {
		close(f.started)
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.listings, int64(len(f.listings)), nil
}

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the resolved page", func(t *testing.T) {
		fake := &fakeSearcher{listings: []model.Property{{ID: "a"}, {ID: "b"}}}
		r := NewRunner(fake, time.Second)
		res, err := r.Run(ctx, "user:1", ListingQuery{City: "Kyiv"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Listings) != 2 || res.Total != 2 {
			t.Errorf("expected 2 listings, got %d (total %d)", len(res.Listings), res.Total)
		}
	})

	t.Run("wraps backend failures in ErrQueryFailed", func(t *testing.T) {
		fake := &fakeSearcher{err: errors.New("connection refused")}
		r := NewRunner(fake, time.Second)
		_, err := r.Run(ctx, "user:1", ListingQuery{})
		if !errors.Is(err, ErrQueryFailed) {
			t.Fatalf("expected ErrQueryFailed, got %v", err)
		}
	})

	t.Run("deadline expiry surfaces as ErrQueryFailed", func(t *testing.T) {
		fake := &fakeSearcher{
			started: make(chan struct{}),
			release: make(chan struct{}), // never closed; only ctx unblocks
		}
		r := NewRunner(fake, 10*time.Millisecond)
		_, err := r.Run(ctx, "user:1", ListingQuery{Text: "slow"})
		if !errors.Is(err, ErrQueryFailed) {
			t.Fatalf("expected ErrQueryFailed, got %v", err)
		}
	})

	t.Run("superseded run reports ErrStale", func(t *testing.T) {
		fake := &fakeSearcher{
			started:  make(chan struct{}),
			release:  make(chan struct{}),
			listings: []model.Property{{ID: "a"}},
		}
		r := NewRunner(fake, time.Second)

		type outcome struct {
			res Result
			err error
		}
		slowDone := make(chan outcome, 1)
		go func() {
			res, err := r.Run(ctx, "user:1", ListingQuery{Text: "slow"})
			slowDone <- outcome{res, err}
		}()

		// Wait until the slow run is inside the searcher, then issue a
		// newer configuration from the same session.
		<-fake.started
		if _, err := r.Run(ctx, "user:1", ListingQuery{City: "Lviv"}); err != nil {
			t.Fatalf("fresh run failed: %v", err)
		}

		close(fake.release)
		got := <-slowDone
		if !errors.Is(got.err, ErrStale) {
			t.Fatalf("expected ErrStale, got %v (result %+v)", got.err, got.res)
		}
	})

	t.Run("other sessions never supersede a run", func(t *testing.T) {
		fake := &fakeSearcher{
			started:  make(chan struct{}),
			release:  make(chan struct{}),
			listings: []model.Property{{ID: "a"}},
		}
		r := NewRunner(fake, time.Second)

		type outcome struct {
			res Result
			err error
		}
		firstDone := make(chan outcome, 1)
		go func() {
			res, err := r.Run(ctx, "user:1", ListingQuery{Text: "slow", City: "Kyiv"})
			firstDone <- outcome{res, err}
		}()

		// A second client searches while the first run is still inside
		// the searcher. The first run is its session's latest
		// configuration and must still resolve.
		<-fake.started
		if _, err := r.Run(ctx, "user:2", ListingQuery{City: "Lviv"}); err != nil {
			t.Fatalf("second session's run failed: %v", err)
		}

		close(fake.release)
		got := <-firstDone
		if got.err != nil {
			t.Fatalf("run superseded across sessions: %v", got.err)
		}
		if len(got.res.Listings) != 1 || got.res.Listings[0].ID != "a" {
			t.Errorf("expected the session's own page, got %+v", got.res)
		}
	})

	t.Run("empty session skips the staleness guard", func(t *testing.T) {
		fake := &fakeSearcher{listings: []model.Property{{ID: "a"}}}
		r := NewRunner(fake, time.Second)
		if _, err := r.Run(ctx, "", ListingQuery{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestListingQueryNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := ListingQuery{}
		q.Normalize()
		if q.SortBy != SortNewest {
			t.Errorf("expected default sort %q, got %q", SortNewest, q.SortBy)
		}
		if q.Page != 1 || q.PageSize != 20 {
			t.Errorf("expected page 1 size 20, got page %d size %d", q.Page, q.PageSize)
		}
	})

	t.Run("clamps out-of-range values", func(t *testing.T) {
		q := ListingQuery{PriceMin: -100, Page: -3, PageSize: 5000, SortBy: "rating"}
		q.Normalize()
		if q.PriceMin != 0 {
			t.Errorf("expected price_min 0, got %v", q.PriceMin)
		}
		if q.Page != 1 {
			t.Errorf("expected page 1, got %d", q.Page)
		}
		if q.PageSize != 100 {
			t.Errorf("expected page size capped at 100, got %d", q.PageSize)
		}
		if q.SortBy != SortNewest {
			t.Errorf("unknown sort must fall back to %q, got %q", SortNewest, q.SortBy)
		}
	})

	t.Run("trims string filters", func(t *testing.T) {
		q := ListingQuery{City: "  Kyiv ", Text: " bright flat "}
		q.Normalize()
		if q.City != "Kyiv" {
			t.Errorf("expected trimmed city, got %q", q.City)
		}
		if q.Text != "bright flat" {
			t.Errorf("expected trimmed text, got %q", q.Text)
		}
	})

	t.Run("known sorts survive", func(t *testing.T) {
		for _, sort := range []string{SortNewest, SortPriceAsc, SortPriceDesc, SortAreaDesc} {
			q := ListingQuery{SortBy: sort}
			q.Normalize()
			if q.SortBy != sort {
				t.Errorf("sort %q must survive normalization, got %q", sort, q.SortBy)
			}
		}
	})
}
