package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bookcal/internal/availability/service"
	apperrors "bookcal/pkg/errors"
	httputil "bookcal/pkg/http"
	"bookcal/pkg/logger"
	"bookcal/pkg/middleware"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, auth *middleware.Authenticator, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	resourceID := query.Get("resourceId")
	if resourceID == "" {
		h.writeErr(w, "Get", apperrors.InvalidInput("resourceId query parameter is required"))
		return
	}

	date, err := httputil.ExtractDate(r, "date")
	if err != nil {
		h.writeErr(w, "Get", err)
		return
	}

	day, err := h.service.ComputeDay(r.Context(), resourceID, date)
	if err != nil {
		h.writeErr(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, day); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

func (h *AvailabilityHandler) writeErr(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability", h.auth.Require(h.Get))
}
