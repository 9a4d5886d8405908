package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// ErrQueryFailed wraps any transport or backend error raised while
// executing a search.  Callers recover by rendering an empty result
// and may retry with the same configuration.
var ErrQueryFailed = errors.New("listing query failed")

// ErrStale marks a result that resolved after the same session issued
// a newer configuration.  Stale results must be discarded, never
// displayed.
var ErrStale = errors.New("stale query result")

// DefaultTimeout bounds a single search when no explicit timeout is
// configured.
const DefaultTimeout = 15 * time.Second

// sessionTTL is how long an idle session keeps its epoch counter.
// Entries are touched on every query, so only abandoned sessions age
// out.
const sessionTTL = 30 * time.Minute

// Searcher executes one listing query.  The repository's search
// implements it; tests substitute fakes.
type Searcher interface {
	SearchListings(ctx context.Context, q ListingQuery) ([]model.Property, int64, error)
}

// Result is one resolved page of listings.
type Result struct {
	Listings []model.Property
	Total    int64
}

// Runner executes listing queries with a bounded timeout and enforces
// last-configuration-wins per session: each Run is tagged with an
// epoch taken from its session's counter when it starts, and a run
// whose session issued a newer configuration before it resolved
// reports ErrStale instead of its (outdated) result.  Sessions never
// affect each other; two clients searching concurrently both get
// their results.
type Runner struct {
	searcher Searcher
	timeout  time.Duration

	// mu serializes the read-modify-write on a session's counter; the
	// cache itself is safe for concurrent use but its Get/Set pair is
	// not atomic.
	mu     sync.Mutex
	epochs *ttlcache.Cache[string, uint64]
}

// NewRunner wraps a Searcher.  A non-positive timeout falls back to
// DefaultTimeout.
func NewRunner(s Searcher, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	epochs := ttlcache.New(
		ttlcache.WithTTL[string, uint64](sessionTTL),
	)
	go epochs.Start()
	return &Runner{searcher: s, timeout: timeout, epochs: epochs}
}

// next advances the session's epoch and returns the new value.
func (r *Runner) next(session string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n uint64
	if item := r.epochs.Get(session); item != nil {
		n = item.Value()
	}
	n++
	r.epochs.Set(session, n, ttlcache.DefaultTTL)
	return n
}

// current reads the session's epoch without advancing it.
func (r *Runner) current(session string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item := r.epochs.Get(session); item != nil {
		return item.Value()
	}
	return 0
}

// Run executes q for the given session and returns the matching page.
// An empty session skips the staleness guard.  Failures of any kind,
// including the deadline expiring, surface as ErrQueryFailed; the call
// has no side effects, so retrying with the same configuration is
// always safe.
func (r *Runner) Run(ctx context.Context, session string, q ListingQuery) (Result, error) {
	var tag uint64
	if session != "" {
		tag = r.next(session)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	listings, total, err := r.searcher.SearchListings(ctx, q)
	if session != "" && r.current(session) != tag {
		return Result{}, ErrStale
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return Result{Listings: listings, Total: total}, nil
}
