package handler

import (
	"encoding/json"
	"net/http"

	"docportal/internal/doctors/service"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// DoctorHandler exposes the doctor roster. Every route sits behind the JWT
// and admin gates.
type DoctorHandler struct {
	service      service.DoctorService
	log          *logger.Logger
	requireJWT   func(httprouter.Handle) httprouter.Handle
	requireAdmin func(httprouter.Handle) httprouter.Handle
}

func NewDoctorHandler(
	service service.DoctorService,
	log *logger.Logger,
	requireJWT func(httprouter.Handle) httprouter.Handle,
	requireAdmin func(httprouter.Handle) httprouter.Handle,
) *DoctorHandler {
	return &DoctorHandler{
		service:      service,
		log:          log,
		requireJWT:   requireJWT,
		requireAdmin: requireAdmin,
	}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if doctors == nil {
		doctors = []*model.Doctor{}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, doctors); err != nil {
		h.log.Error("failed to write JSON response", "handler", "List", "operation", "WriteJSON", "error", err)
	}
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doctor model.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Create(r.Context(), &doctor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", err)
	}
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.Delete(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Delete", "operation", "WriteJSON", "error", err)
	}
}

func (h *DoctorHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/doctors", h.requireJWT(h.requireAdmin(h.List)))
	router.POST("/doctors", h.requireJWT(h.requireAdmin(h.Create)))
	router.DELETE("/deleteDoctor/:id", h.requireJWT(h.requireAdmin(h.Delete)))
}
