package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures in-memory counters for upstream calls and home resolution,
// mirroring them to OpenTelemetry instruments when Setup enabled them.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*providerStats
	eligibility map[string]int
	degraded    map[string]int
	cacheHits   int
	cacheMisses int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:       make(map[string]*providerStats),
		eligibility: make(map[string]int),
		degraded:    make(map[string]int),
		otel:        otel,
	}
}

// RecordProviderAttempt increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordEligibilitySource counts which rule decided a user's eligibility.
func (r *Recorder) RecordEligibilitySource(source string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.eligibility[source]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordEligibility(source)
	}
}

// RecordHomeDegraded counts home payloads served without full upstream data.
func (r *Recorder) RecordHomeDegraded(reason string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.degraded[reason]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDegraded(reason)
	}
}

// RecordCacheLookup counts featured-campaign cache hits and misses.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if hit {
		r.cacheHits++
	} else {
		r.cacheMisses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(hit)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// EligibilitySources returns how often each eligibility rule decided.
func (r *Recorder) EligibilitySources() map[string]int {
	if r == nil {
		return map[string]int{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyCounts(r.eligibility)
}

// DegradedResponses returns degraded home payload counts by reason.
func (r *Recorder) DegradedResponses() map[string]int {
	if r == nil {
		return map[string]int{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyCounts(r.degraded)
}

// CacheLookups returns featured-campaign cache hits and misses.
func (r *Recorder) CacheLookups() (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheHits, r.cacheMisses
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks campaign refresh cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
