package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("donorapi", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("donorapi", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("donorapi"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("donorapi"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("donorapi"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("donorapi")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if empty := rec.Snapshot("unknown"); empty != (Snapshot{}) {
		t.Fatalf("expected zero snapshot for unseen provider, got %+v", empty)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("donorapi", 5*time.Second)
	rec.RecordRateLimit("donorapi", 0)

	if got := rec.RateLimitHits("donorapi"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("donorapi"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksHomeResolution(t *testing.T) {
	rec := NewRecorder()
	rec.RecordEligibilitySource("explicit")
	rec.RecordEligibilitySource("explicit")
	rec.RecordEligibilitySource("last_donation")
	rec.RecordHomeDegraded(ReasonFallback)
	rec.RecordCacheLookup(true)
	rec.RecordCacheLookup(false)
	rec.RecordCacheLookup(false)

	sources := rec.EligibilitySources()
	if sources["explicit"] != 2 || sources["last_donation"] != 1 {
		t.Fatalf("unexpected eligibility counts %+v", sources)
	}
	if got := rec.DegradedResponses()[ReasonFallback]; got != 1 {
		t.Fatalf("expected 1 fallback response, got %d", got)
	}
	hits, misses := rec.CacheLookups()
	if hits != 1 || misses != 2 {
		t.Fatalf("expected 1 hit and 2 misses, got %d/%d", hits, misses)
	}

	sources["explicit"] = 100
	if rec.EligibilitySources()["explicit"] != 2 {
		t.Fatal("expected counts to be returned as a copy")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("donorapi", time.Millisecond, nil)
	rec.RecordEligibilitySource("default")
	rec.RecordHomeDegraded(ReasonPartial)
	rec.RecordCacheLookup(true)
	if got := rec.ProviderCalls("donorapi"); got != 0 {
		t.Fatalf("expected 0 calls on nil recorder, got %d", got)
	}
	if len(rec.EligibilitySources()) != 0 {
		t.Fatal("expected empty counts on nil recorder")
	}
}

func TestRecorderIsSafeForConcurrentUse(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.RecordProviderAttempt("donorapi", time.Millisecond, nil)
			rec.RecordEligibilitySource("default")
		}()
	}
	wg.Wait()
	if got := rec.ProviderCalls("donorapi"); got != 20 {
		t.Fatalf("expected 20 calls, got %d", got)
	}
}
