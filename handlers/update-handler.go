package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Charanos/andishi-mvp-sub001/models"
	"github.com/Charanos/andishi-mvp-sub001/services"
	"github.com/Charanos/andishi-mvp-sub001/utils"

	"github.com/gorilla/mux"
)

type UpdateHandler struct {
	Service *services.UpdateService
}

func NewUpdateHandler(service *services.UpdateService) *UpdateHandler {
	return &UpdateHandler{Service: service}
}

func (h *UpdateHandler) AddUpdate(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, models.NewValidationError("body", "invalid request payload"))
		return
	}

	author := "client"
	if name, err := utils.AdminFromRequest(r); err == nil {
		author = name
	}

	vars := mux.Vars(r)
	update, err := h.Service.AddUpdate(r.Context(), vars["id"], input, author)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "update": update})
}

// ReplyToUpdate posts an admin response threaded onto an existing update.
func (h *UpdateHandler) ReplyToUpdate(w http.ResponseWriter, r *http.Request) {
	adminName, err := utils.AdminFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var input services.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, models.NewValidationError("body", "invalid request payload"))
		return
	}

	vars := mux.Vars(r)
	reply, err := h.Service.ReplyToUpdate(r.Context(), vars["id"], vars["updateId"], input, adminName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "update": reply})
}

func (h *UpdateHandler) AttachFile(w http.ResponseWriter, r *http.Request) {
	var input services.FileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, models.NewValidationError("body", "invalid request payload"))
		return
	}

	vars := mux.Vars(r)
	file, err := h.Service.AttachFile(r.Context(), vars["id"], input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "file": file})
}
