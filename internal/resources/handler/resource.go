package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bookcal/internal/resources/service"
	httputil "bookcal/pkg/http"
	"bookcal/pkg/logger"
	"bookcal/pkg/middleware"
	"bookcal/pkg/model"
)

type ResourceHandler struct {
	service service.ResourceService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewResourceHandler(service service.ResourceService, auth *middleware.Authenticator, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var resource model.Resource
	if err := json.NewDecoder(r.Body).Decode(&resource); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &resource); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, resource); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resources, err := h.service.ListActive(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resources); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *ResourceHandler) GetByResourceID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resource, err := h.service.GetByResourceID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByResourceID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resource); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByResourceID", "error", err)
	}
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ResourceUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	resource, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resource); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *ResourceHandler) Deactivate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resource, err := h.service.Deactivate(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Deactivate", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resource); err != nil {
		h.log.Error("failed to write success response", "handler", "Deactivate", "error", err)
	}
}

func (h *ResourceHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/resources", h.auth.Require(h.List))
	router.POST("/api/v1/resources", h.auth.Require(h.Create))
	router.GET("/api/v1/resources/id/:id", h.auth.Require(h.GetByResourceID))
	router.PATCH("/api/v1/resources/id/:id", h.auth.Require(h.Update))
	router.DELETE("/api/v1/resources/id/:id", h.auth.Require(h.Deactivate))
}
