package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
	domainhome "github.com/preston-bernstein/donor-home-service/internal/domain/home"
	"github.com/preston-bernstein/donor-home-service/internal/domain/stats"
	"github.com/preston-bernstein/donor-home-service/internal/logging"
	"github.com/preston-bernstein/donor-home-service/internal/poller"
)

// HomeService is the aggregation surface the user routes depend on.
type HomeService interface {
	HomeData(ctx context.Context, userID string) (domainhome.Data, error)
	Fallback() domainhome.Data
	Stats(ctx context.Context, userID string) (stats.Stats, error)
	Appointments(ctx context.Context, userID string) ([]appointments.Appointment, error)
	Emergencies(ctx context.Context) ([]emergencies.Request, error)
}

// CampaignService serves featured campaigns.
type CampaignService interface {
	Featured(ctx context.Context) ([]campaigns.Campaign, error)
}

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:@-]{1,128}$`)

// Handler wires HTTP routes to the home and campaign services.
type Handler struct {
	home      HomeService
	campaigns CampaignService
	logger    *slog.Logger
	statusFn  func() poller.Status
	mux       *http.ServeMux
}

// NewHandler constructs a Handler. statusFn may be nil, in which case /ready always succeeds.
func NewHandler(home HomeService, campaigns CampaignService, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	h := &Handler{
		home:      home,
		campaigns: campaigns,
		logger:    logger,
		statusFn:  statusFn,
		mux:       http.NewServeMux(),
	}
	h.Register(h.mux)
	return h
}

// Register adds every route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)
	mux.HandleFunc("/users/{id}/home", h.Home)
	mux.HandleFunc("/users/{id}/stats", h.Stats)
	mux.HandleFunc("/users/{id}/appointments", h.Appointments)
	mux.HandleFunc("/campaigns/featured", h.FeaturedCampaigns)
	mux.HandleFunc("/emergencies", h.Emergencies)
	mux.HandleFunc("/", h.NotFound)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether featured campaigns have been refreshed recently.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Home returns the aggregated home screen. Aggregation failures are answered with the
// degraded default payload rather than an error status.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	data, err := h.home.HomeData(r.Context(), userID)
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "home aggregation failed, serving fallback", err,
			slog.String(logging.FieldUserID, userID))
		data = h.home.Fallback()
	}
	writeJSON(w, http.StatusOK, data, h.logger)
}

// Stats returns the user's stats record with eligibility resolved.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	record, err := h.home.Stats(r.Context(), userID)
	if err != nil {
		h.upstreamFailed(w, r, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, record, h.logger)
}

// Appointments returns the user's upcoming appointments.
func (h *Handler) Appointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	list, err := h.home.Appointments(r.Context(), userID)
	if err != nil {
		h.upstreamFailed(w, r, "appointments", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": list}, h.logger)
}

// FeaturedCampaigns returns the cached featured campaigns.
func (h *Handler) FeaturedCampaigns(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}
	list, err := h.campaigns.Featured(r.Context())
	if err != nil {
		h.upstreamFailed(w, r, "featured campaigns", err)
		return
	}
	if list == nil {
		list = []campaigns.Campaign{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaigns": list}, h.logger)
}

// Emergencies returns active emergency requests.
func (h *Handler) Emergencies(w http.ResponseWriter, r *http.Request) {
	if !h.allowGet(w, r) {
		return
	}
	list, err := h.home.Emergencies(r.Context())
	if err != nil {
		h.upstreamFailed(w, r, "emergencies", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"emergencies": list}, h.logger)
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

func (h *Handler) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return false
	}
	return true
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !h.allowGet(w, r) {
		return "", false
	}
	id := r.PathValue("id")
	if !userIDPattern.MatchString(id) {
		writeError(w, r, http.StatusBadRequest, "invalid user id", h.logger)
		return "", false
	}
	return id, true
}

func (h *Handler) upstreamFailed(w http.ResponseWriter, r *http.Request, what string, err error) {
	logging.Error(loggerFromContext(r, h.logger), "upstream read failed", err, slog.String("resource", what))
	writeUpstreamError(w, r, err, h.logger)
}
