package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/campushot/server/internal/config"
	"github.com/campushot/server/internal/engagement"
	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/models"
	"github.com/campushot/server/internal/trending"
)

// HotAPI handles engagement and trending HTTP endpoints
type HotAPI struct {
	engagementSvc *engagement.Service
	trendingSvc   *trending.Service
	defaults      config.TrendingConfig
	logger        *logging.Logger
}

// NewHotAPI creates a new engagement/trending API handler
func NewHotAPI(engagementSvc *engagement.Service, trendingSvc *trending.Service, defaults config.TrendingConfig, logger *logging.Logger) *HotAPI {
	return &HotAPI{
		engagementSvc: engagementSvc,
		trendingSvc:   trendingSvc,
		defaults:      defaults,
		logger:        logger,
	}
}

// RegisterRoutes registers engagement routes on the given mux
func (api *HotAPI) RegisterRoutes(mux *http.ServeMux, middleware func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("/api/hot/click", middleware(api.handleClick))
	mux.HandleFunc("/api/hot/count", middleware(api.handleCount))
	mux.HandleFunc("/api/hot/counts", middleware(api.handleCounts))
	mux.HandleFunc("/api/hot/top", middleware(api.handleTop))
	mux.HandleFunc("/api/trending", middleware(api.handleTrending))
}

type clickRequest struct {
	ID             string `json:"id"`
	Title          string `json:"title,omitempty"`
	SourceURL      string `json:"sourceUrl,omitempty"`
	PosterImageURL string `json:"posterImageUrl,omitempty"`
}

// handleClick handles POST /api/hot/click. A blank id is accepted and
// ignored; a store write failure is the one error surfaced to the caller.
func (api *HotAPI) handleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	meta := models.ClickMeta{
		Title:          req.Title,
		SourceURL:      req.SourceURL,
		PosterImageURL: req.PosterImageURL,
	}
	if err := api.engagementSvc.IncrementClick(r.Context(), req.ID, meta); err != nil {
		writeError(w, http.StatusInternalServerError, "click_not_recorded", "failed to record click")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCount handles GET /api/hot/count?id=X
func (api *HotAPI) handleCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	count := api.engagementSvc.GetCount(r.Context(), id)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":    id,
		"count": count,
	})
}

type countsRequest struct {
	IDs []string `json:"ids"`
}

// handleCounts handles POST /api/hot/counts. Ids without a counter are
// omitted from the response map, not zero-filled.
func (api *HotAPI) handleCounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req countsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	counts := api.engagementSvc.GetCounts(r.Context(), req.IDs)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"counts": counts,
	})
}

// handleTop handles GET /api/hot/top?limit=N, the global leaderboard.
func (api *HotAPI) handleTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := api.defaults.TopK
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := api.trendingSvc.Leaderboard(r.Context(), limit)
	if err != nil {
		// Degraded reads render as an empty list, not an error screen.
		api.logger.Error("Leaderboard failed", logging.WithField("error", err.Error()))
		items = []models.RankedItem{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

// handleTrending handles GET /api/trending?days=30&limit=10
func (api *HotAPI) handleTrending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days := api.defaults.WindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	limit := api.defaults.TopK
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := api.trendingSvc.GetTrending(r.Context(), days, limit)
	if err != nil {
		// Degraded reads render as an empty list, not an error screen.
		api.logger.Error("Trending failed", logging.WithField("error", err.Error()))
		items = []models.RankedItem{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":      items,
		"windowDays": days,
	})
}
