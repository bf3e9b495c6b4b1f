package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"bookcal/pkg/config"
	httputil "bookcal/pkg/http"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type healthHandler struct {
	cfg *config.Config
}

func newHealthHandler(cfg *config.Config) *healthHandler {
	return &healthHandler{cfg: cfg}
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"}); err != nil {
		h.cfg.Log.Error("failed to write JSON response", "handler", "Health", "error", err)
	}
}

// Ready answers 503 until Mongo responds to a ping.
func (h *healthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.cfg.Client.Mongo.Ping(ctx, nil); err != nil {
		h.cfg.Log.Error("Database health check failed", "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "unavailable",
			Database: "error",
		}); writeErr != nil {
			h.cfg.Log.Error("failed to write JSON response", "handler", "Ready", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.cfg.Log.Error("failed to write JSON response", "handler", "Ready", "error", err)
	}
}

func (h *healthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
