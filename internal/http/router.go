package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/donor-home-service/internal/http/handlers"
	"github.com/preston-bernstein/donor-home-service/internal/http/middleware"
	"github.com/preston-bernstein/donor-home-service/internal/metrics"
)

// NewRouter registers HTTP routes on a ServeMux and wraps them with request logging.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	mux := nethttp.NewServeMux()
	handler.Register(mux)
	return middleware.LoggingMiddleware(logger, recorder, mux)
}
