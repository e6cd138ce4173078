package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/logging"
	"github.com/preston-bernstein/donor-home-service/internal/metrics"
)

const (
	defaultInterval = 5 * time.Minute
	// Readiness is lost after this many failed refreshes in a row.
	maxConsecutiveFailures = 3
)

// Refresher reloads a cached upstream view. Featured campaigns are the only one today.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Poller runs a Refresher on an interval and tracks whether it keeps succeeding.
type Poller struct {
	refresher Refresher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxConsecutiveFailures
}

// New constructs a Poller with sane defaults.
func New(refresher Refresher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		refresher: refresher,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
// The first refresh runs immediately so the cache is warm before traffic arrives.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) refreshOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)

	var err error
	if p.refresher != nil {
		err = p.refresher.Refresh(ctx)
	}
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		logging.Error(p.logger, "poller refresh failed", err, slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	p.recordSuccess(start)
	logging.Info(p.logger, "poller refreshed", logging.FieldDurationMS, elapsed.Milliseconds())
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
