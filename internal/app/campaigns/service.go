package campaigns

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	domaincampaigns "github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/logging"
	"github.com/preston-bernstein/donor-home-service/internal/metrics"
	"github.com/preston-bernstein/donor-home-service/internal/store"
)

const (
	featuredKey = "campaigns:featured"
	defaultTTL  = 15 * time.Minute
)

// Source fetches featured campaigns from upstream.
type Source interface {
	FetchFeaturedCampaigns(ctx context.Context) ([]domaincampaigns.Campaign, error)
}

// Service serves featured campaigns through a shared cache.
type Service struct {
	source   Source
	cache    store.Cache
	ttl      time.Duration
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewService constructs a Service. A nil cache falls back to an in-memory store.
func NewService(source Source, cache store.Cache, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if cache == nil {
		cache = store.NewMemoryStore()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{
		source:   source,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
		recorder: recorder,
	}
}

// Featured returns cached featured campaigns, fetching upstream on a miss.
// Cache failures are logged and treated as misses.
func (s *Service) Featured(ctx context.Context) ([]domaincampaigns.Campaign, error) {
	logger := logging.FromContext(ctx, s.logger)

	raw, ok, err := s.cache.Get(ctx, featuredKey)
	if err != nil {
		logging.Warn(logger, "featured campaign cache read failed", "err", err)
	}
	if ok {
		var cached []domaincampaigns.Campaign
		if err := json.Unmarshal(raw, &cached); err == nil {
			s.recorder.RecordCacheLookup(true)
			return cached, nil
		}
		logging.Warn(logger, "discarding unreadable featured campaign cache entry")
	}
	s.recorder.RecordCacheLookup(false)
	return s.fetch(ctx)
}

// Refresh fetches featured campaigns upstream and replaces the cached copy.
func (s *Service) Refresh(ctx context.Context) error {
	_, err := s.fetch(ctx)
	return err
}

func (s *Service) fetch(ctx context.Context) ([]domaincampaigns.Campaign, error) {
	if s.source == nil {
		return nil, fmt.Errorf("featured campaigns: no source configured")
	}
	list, err := s.source.FetchFeaturedCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("featured campaigns: %w", err)
	}
	if list == nil {
		list = []domaincampaigns.Campaign{}
	}

	encoded, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("featured campaigns: encode: %w", err)
	}
	if err := s.cache.Set(ctx, featuredKey, encoded, s.ttl); err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "featured campaign cache write failed", "err", err)
	}
	logging.Info(logging.FromContext(ctx, s.logger), "featured campaigns refreshed", logging.FieldCount, len(list))
	return list, nil
}
