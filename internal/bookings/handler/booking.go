package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"bookcal/internal/bookings/service"
	apperrors "bookcal/pkg/errors"
	httputil "bookcal/pkg/http"
	"bookcal/pkg/logger"
	"bookcal/pkg/middleware"
	"bookcal/pkg/model"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	service service.BookingService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, auth *middleware.Authenticator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type createBookingBody struct {
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.writeErr(w, "Create", apperrors.Unauthorized("Authentication required"))
		return
	}

	var body createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	date, err := parseDate(body.Date)
	if err != nil {
		h.writeErr(w, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), service.CreateBookingRequest{
		ResourceID: body.ResourceID,
		Date:       date,
		Time:       body.Time,
		OwnerID:    principal.UserID,
		OwnerEmail: principal.Email,
	})
	if err != nil {
		h.writeErr(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// List answers the calendar month view: confirmed bookings in a date range,
// optionally narrowed to one resource.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	startDate, err := httputil.ExtractOptionalDate(r, "startDate")
	if err != nil {
		h.writeErr(w, "List", err)
		return
	}
	endDate, err := httputil.ExtractOptionalDate(r, "endDate")
	if err != nil {
		h.writeErr(w, "List", err)
		return
	}
	if startDate.IsZero() != endDate.IsZero() {
		h.writeErr(w, "List", apperrors.InvalidInput("startDate and endDate must be provided together"))
		return
	}

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.ParseInt(query.Get("offset"), 10, 64)

	bookings, err := h.service.ListConfirmedInRange(r.Context(), startDate, endDate, query.Get("resourceId"), limit, offset)
	if err != nil {
		h.writeErr(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

// ListMine returns the principal's future bookings sorted by (date, time).
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.writeErr(w, "ListMine", apperrors.Unauthorized("Authentication required"))
		return
	}

	bookings, err := h.service.ListFutureForOwner(r.Context(), principal.UserID, time.Now())
	if err != nil {
		h.writeErr(w, "ListMine", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.writeErr(w, "Cancel", apperrors.Unauthorized("Authentication required"))
		return
	}

	booking, err := h.service.Cancel(r.Context(), ps.ByName("id"), principal)
	if err != nil {
		h.writeErr(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "error", err)
	}
}

func (h *BookingHandler) writeErr(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, apperrors.InvalidInput("'date' is required")
	}
	if parsed, err := time.Parse(dateLayout, raw); err == nil {
		return model.NormalizeDate(parsed), nil
	}
	// The web client historically sent full ISO timestamps.
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return model.NormalizeDate(parsed), nil
	}
	return time.Time{}, apperrors.InvalidInput("invalid date format, must be YYYY-MM-DD")
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.auth.Require(h.Create))
	router.GET("/api/v1/bookings", h.auth.Require(h.List))
	router.GET("/api/v1/bookings/mine", h.auth.Require(h.ListMine))
	router.PATCH("/api/v1/bookings/id/:id/cancel", h.auth.Require(h.Cancel))
}
