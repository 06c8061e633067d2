package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"l1board/models"
)

// genericFetchError is shown when the transport fails without a message of
// its own.
const genericFetchError = "failed to load metrics"

// MetricsFetcher is the transport collaborator. Implementations must observe
// ctx and abort the underlying call promptly once it is cancelled; a late
// result is discarded by the session regardless.
type MetricsFetcher interface {
	FetchMetrics(ctx context.Context, address string, start, end time.Time, bucket models.TimeUnit) (*models.MetricsResult, error)
}

// CommitObserver is notified after every successful commit. Used by the alert
// service; nil disables notification.
type CommitObserver interface {
	MetricsCommitted(address string, result *models.MetricsResult)
}

// ChartSession coordinates metrics fetches for one dashboard view. It owns at
// most one in-flight fetch at a time: a new view selection cancels the
// previous fetch's context and bumps the generation, so a slow response for
// an abandoned period can never overwrite freshly committed data. That
// ordering guarantee is the point of the cancellation plumbing; it is not an
// optimization.
type ChartSession struct {
	fetcher  MetricsFetcher
	store    *DisplayState
	observer CommitObserver
	now      func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	gen     uint64
	address string
	period  models.TimePeriod
	started bool
}

func NewChartSession(fetcher MetricsFetcher, observer CommitObserver) *ChartSession {
	return &ChartSession{
		fetcher:  fetcher,
		store:    NewDisplayState(),
		observer: observer,
		now:      time.Now,
	}
}

// SetView is invoked whenever the address or the selected period changes,
// including the first view of a session. An empty address means the route is
// not resolved yet: nothing is fetched and no state changes. Re-invoking with
// unchanged inputs is a no-op, matching the change-driven contract.
func (s *ChartSession) SetView(address string, period models.TimePeriod) {
	if address == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started && address == s.address && period == s.period {
		return
	}
	s.address = address
	s.period = period
	s.started = true

	descriptor := ResolveChartDescriptor(period, s.now())

	// Cancel the superseded fetch before starting the next one. Its
	// completion, whenever it arrives, belongs to a dead generation.
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.gen++
	gen := s.gen

	s.store.SetLoading(true)
	s.store.SetError("")

	go s.fetch(ctx, gen, address, descriptor)
}

func (s *ChartSession) fetch(ctx context.Context, gen uint64, address string, descriptor models.ChartDescriptor) {
	result, err := s.fetcher.FetchMetrics(ctx, address, descriptor.Range.Start, descriptor.Range.End, descriptor.BucketUnit)

	// Store writes happen under the session lock so a superseding SetView
	// can never interleave between the generation check and the commit.
	s.mu.Lock()
	if gen != s.gen || ctx.Err() != nil {
		// Superseded: a newer invocation owns all state transitions from
		// here on. Touch nothing, not even the loading flag.
		s.mu.Unlock()
		return
	}

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			msg := err.Error()
			if msg == "" {
				msg = genericFetchError
			}
			// Previous dataset and descriptor stay committed; no flicker to
			// an empty chart on failure.
			s.store.SetError(msg)
			s.store.SetLoading(false)
		}
		s.mu.Unlock()
		return
	}

	// Commit the descriptor that was resolved for this fetch, never the
	// session's current one, so axes and data always describe the same range.
	s.store.Commit(descriptor, result)
	s.store.SetLoading(false)
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer.MetricsCommitted(address, result)
	}
}

// Snapshot returns the current composed display state.
func (s *ChartSession) Snapshot() models.ChartState {
	return s.store.Snapshot()
}

// Period returns the currently selected period.
func (s *ChartSession) Period() models.TimePeriod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

// Close cancels any outstanding fetch. Its completion is ignored the same way
// a superseded fetch is.
func (s *ChartSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

// SessionRegistry hands out one ChartSession per operator address, created on
// demand.
type SessionRegistry struct {
	fetcher  MetricsFetcher
	observer CommitObserver

	mu       sync.Mutex
	sessions map[string]*ChartSession
}

func NewSessionRegistry(fetcher MetricsFetcher, observer CommitObserver) *SessionRegistry {
	return &SessionRegistry{
		fetcher:  fetcher,
		observer: observer,
		sessions: make(map[string]*ChartSession),
	}
}

// Session returns the session for address, creating it on first use.
func (r *SessionRegistry) Session(address string) *ChartSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[address]; ok {
		return s
	}
	s := NewChartSession(r.fetcher, r.observer)
	r.sessions[address] = s
	return s
}

// Close tears down every session.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		s.Close()
	}
	r.sessions = make(map[string]*ChartSession)
}
