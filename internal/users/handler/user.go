package handler

import (
	"encoding/json"
	"net/http"

	"docportal/internal/users/service"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service      service.UserService
	log          *logger.Logger
	requireJWT   func(httprouter.Handle) httprouter.Handle
	requireAdmin func(httprouter.Handle) httprouter.Handle
}

func NewUserHandler(
	service service.UserService,
	log *logger.Logger,
	requireJWT func(httprouter.Handle) httprouter.Handle,
	requireAdmin func(httprouter.Handle) httprouter.Handle,
) *UserHandler {
	return &UserHandler{
		service:      service,
		log:          log,
		requireJWT:   requireJWT,
		requireAdmin: requireAdmin,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if users == nil {
		users = []*model.User{}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, users); err != nil {
		h.log.Error("failed to write JSON response", "handler", "List", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Message: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Create(r.Context(), &user)
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

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.Promote(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Promote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Promote", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	isAdmin, err := h.service.IsAdmin(r.Context(), ps.ByName("email"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAdmin", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "CheckAdmin", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/users", h.List)
	router.GET("/users/admin/:email", h.CheckAdmin)
	router.POST("/users", h.Create)
	router.DELETE("/delete/:id", h.Delete)
	router.PUT("/users/admin/:id", h.requireJWT(h.requireAdmin(h.Promote)))
}
