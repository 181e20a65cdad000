package handler

import (
	"net/http"

	"docportal/internal/catalog/service"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")

	options, err := h.service.Availability(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if options == nil {
		options = []*model.AppointmentOption{}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, options); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Availability", "operation", "WriteJSON", "error", err)
	}
}

func (h *CatalogHandler) Specialties(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	names, err := h.service.Specialties(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Specialties", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if names == nil {
		names = []*model.SpecialtyOption{}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, names); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Specialties", "operation", "WriteJSON", "error", err)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/appointmentOptions", h.Availability)
	router.GET("/appointmentSpecialty", h.Specialties)
}
