package handlers

import (
	"net/http"

	"github.com/Charanos/andishi-mvp-sub001/services"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	UserService         *services.UserService
	NotificationService *services.NotificationService
}

func NewUserHandler(userService *services.UserService, notificationService *services.NotificationService) *UserHandler {
	return &UserHandler{UserService: userService, NotificationService: notificationService}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "users": users})
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, err := h.UserService.GetUserByID(r.Context(), vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

func (h *UserHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notifications, err := h.NotificationService.GetNotificationsByUser(r.Context(), vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "notifications": notifications})
}

func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.NotificationService.MarkAsRead(r.Context(), vars["notificationId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Notification marked as read"})
}
