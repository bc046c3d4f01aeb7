package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/delivery-area-service/internal/domain"
	"github.com/couchcryptid/delivery-area-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// DefaultQuietPeriod is how long a Session waits after the last keystroke
// before validating.
const DefaultQuietPeriod = 500 * time.Millisecond

// Checker validates an address. *Orchestrator satisfies it.
type Checker interface {
	Validate(ctx context.Context, address string, coords *domain.Coordinate) (domain.Verdict, error)
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context, address string, coords *domain.Coordinate) (domain.Verdict, error)

// Validate calls f.
func (f CheckerFunc) Validate(ctx context.Context, address string, coords *domain.Coordinate) (domain.Verdict, error) {
	return f(ctx, address, coords)
}

// Result is a verdict for the Submit call numbered Seq.
type Result struct {
	Seq     uint64
	Address string
	Verdict domain.Verdict
}

// Session drives a Checker from a live input field. Submits inside the quiet
// period are coalesced, and a newer Submit cancels any in-flight check, so only
// the most recent input can produce a Result.
type Session struct {
	checker Checker
	deliver func(Result)
	clock   clockwork.Clock
	quiet   time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics

	ctx  context.Context
	stop context.CancelFunc

	mu       sync.Mutex
	seq      uint64
	timer    clockwork.Timer
	inflight context.CancelFunc
	closed   bool

	// deliverMu serializes callbacks so a stale result can never land after
	// a newer one.
	deliverMu sync.Mutex
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionClock sets the clock used for the debounce timer.
func WithSessionClock(c clockwork.Clock) SessionOption {
	return func(s *Session) { s.clock = c }
}

// WithQuietPeriod sets the debounce window.
func WithQuietPeriod(d time.Duration) SessionOption {
	return func(s *Session) { s.quiet = d }
}

// NewSession creates a Session that calls deliver with each current Result.
// deliver runs on a background goroutine and may call Submit.
func NewSession(checker Checker, deliver func(Result), logger *slog.Logger, metrics *observability.Metrics, opts ...SessionOption) *Session {
	s := &Session{
		checker: checker,
		deliver: deliver,
		clock:   clockwork.NewRealClock(),
		quiet:   DefaultQuietPeriod,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.stop = context.WithCancel(context.Background())
	return s
}

// Submit schedules a check of address after the quiet period and returns its
// sequence number. It supersedes every earlier Submit. Returns 0 once closed.
func (s *Session) Submit(address string, coords *domain.Coordinate) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}

	s.seq++
	seq := s.seq

	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	var c *domain.Coordinate
	if coords != nil {
		cp := *coords
		c = &cp
	}
	s.timer = s.clock.AfterFunc(s.quiet, func() { s.fire(seq, address, c) })
	return seq
}

// Close cancels any pending or in-flight check. Later Submits are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
	s.stop()
}

func (s *Session) fire(seq uint64, address string, coords *domain.Coordinate) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.inflight = cancel
	s.mu.Unlock()

	go s.run(ctx, cancel, seq, address, coords)
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, seq uint64, address string, coords *domain.Coordinate) {
	defer cancel()

	verdict, err := s.checker.Validate(ctx, address, coords)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if !s.isCurrent(seq) {
		s.metrics.SupersededRequests.Inc()
		s.logger.Debug("discarding superseded check", "seq", seq)
		return
	}
	if err != nil {
		s.logger.Debug("check abandoned", "seq", seq, "error", err)
		return
	}
	s.deliver(Result{Seq: seq, Address: address, Verdict: verdict})
}

func (s *Session) isCurrent(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && seq == s.seq
}
