package server

import (
	"context"
	"log/slog"
	"net/http"

	appcampaigns "github.com/preston-bernstein/donor-home-service/internal/app/campaigns"
	apphome "github.com/preston-bernstein/donor-home-service/internal/app/home"
	"github.com/preston-bernstein/donor-home-service/internal/config"
	"github.com/preston-bernstein/donor-home-service/internal/domain/stats"
	httpserver "github.com/preston-bernstein/donor-home-service/internal/http"
	"github.com/preston-bernstein/donor-home-service/internal/http/handlers"
	"github.com/preston-bernstein/donor-home-service/internal/logging"
	"github.com/preston-bernstein/donor-home-service/internal/metrics"
	"github.com/preston-bernstein/donor-home-service/internal/poller"
	"github.com/preston-bernstein/donor-home-service/internal/providers"
	"github.com/preston-bernstein/donor-home-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg             config.Config
	logger          *slog.Logger
	metrics         *metrics.Recorder
	cache           store.Cache
	cacheClose      func() error
	homeService     *apphome.Service
	campaignService *appcampaigns.Service
	httpServer      httpServer
	metricsServer   httpServer
	poller          Poller
	metricsStop     func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), cfg.DonorAPI.RetryAttempts, 0)
	}

	cache, cacheClose := buildCache(context.Background(), cfg.Cache, logger)
	campaignSvc, homeSvc := buildServices(cfg, provider, cache, logger, recorder)
	plr := poller.New(campaignSvc, logger, recorder, cfg.CampaignRefresh)
	httpSrv := buildHTTPServer(cfg, homeSvc, campaignSvc, logger, recorder, plr)

	return &Server{
		cfg:             cfg,
		logger:          logger,
		metrics:         recorder,
		cache:           cache,
		cacheClose:      cacheClose,
		homeService:     homeSvc,
		campaignService: campaignSvc,
		httpServer:      httpSrv,
		metricsServer:   metricsSrv,
		poller:          plr,
		metricsStop:     metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildServices(cfg config.Config, provider providers.DataProvider, cache store.Cache, logger *slog.Logger, recorder *metrics.Recorder) (*appcampaigns.Service, *apphome.Service) {
	campaignSvc := appcampaigns.NewService(provider, cache, cfg.Cache.TTL, logger, recorder)
	resolver := stats.NewResolver(stats.WithDeferralDays(cfg.DeferralDays))
	homeSvc := apphome.NewService(provider, campaignSvc, resolver, logger, recorder)
	return campaignSvc, homeSvc
}

func buildHTTPServer(cfg config.Config, homeSvc *apphome.Service, campaignSvc *appcampaigns.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(homeSvc, campaignSvc, logger, statusFn)
	router := httpserver.NewRouter(handler, logger, recorder)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.cacheClose != nil {
		if err := s.cacheClose(); err != nil && s.logger != nil {
			s.logger.Warn("cache close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
