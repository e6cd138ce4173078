package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/donor-home-service/internal/config"
	"github.com/preston-bernstein/donor-home-service/internal/providers"
	"github.com/preston-bernstein/donor-home-service/internal/providers/donorapi"
	"github.com/preston-bernstein/donor-home-service/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch strings.ToLower(cfg.Provider) {
	case "fixture", "":
		return fixture.New()
	case "donorapi":
		return donorapi.NewClient(donorapi.Config{
			BaseURL: cfg.DonorAPI.BaseURL,
			Token:   cfg.DonorAPI.Token,
			Timeout: cfg.DonorAPI.Timeout,
			Logger:  logger,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
