package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Charanos/andishi-mvp-sub001/models"
	"github.com/Charanos/andishi-mvp-sub001/services"
	"github.com/Charanos/andishi-mvp-sub001/utils"

	"github.com/gorilla/mux"
)

type MilestoneHandler struct {
	Service *services.MilestoneService
}

func NewMilestoneHandler(service *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{Service: service}
}

func (h *MilestoneHandler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	var input models.MilestoneInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, models.NewValidationError("body", "invalid request payload"))
		return
	}

	// Admins originate pre-approved milestones; everything else enters
	// the approval queue as client-submitted.
	submittedBy := models.SubmittedByClient
	if _, err := utils.AdminFromRequest(r); err == nil {
		submittedBy = models.SubmittedByAdmin
	}

	vars := mux.Vars(r)
	milestone, err := h.Service.AddMilestone(r.Context(), vars["id"], input, submittedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "milestone": milestone})
}

func (h *MilestoneHandler) ApproveMilestone(w http.ResponseWriter, r *http.Request) {
	adminName, err := utils.AdminFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	milestone, err := h.Service.ApproveMilestone(r.Context(), vars["id"], vars["milestoneId"], adminName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "milestone": milestone})
}

func (h *MilestoneHandler) RejectMilestone(w http.ResponseWriter, r *http.Request) {
	adminName, err := utils.AdminFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("body", "invalid request payload"))
		return
	}
	if strings.TrimSpace(payload.Reason) == "" {
		writeError(w, models.NewValidationError("reason", "rejection reason is required"))
		return
	}

	vars := mux.Vars(r)
	milestone, err := h.Service.RejectMilestone(r.Context(), vars["id"], vars["milestoneId"], adminName, payload.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "milestone": milestone})
}

func (h *MilestoneHandler) ToggleMilestoneProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	milestone, err := h.Service.ToggleMilestoneProgress(r.Context(), vars["id"], vars["milestoneId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "milestone": milestone})
}

// CancelMilestone handles the DELETE route as a soft cancel.
func (h *MilestoneHandler) CancelMilestone(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	milestone, err := h.Service.CancelMilestone(r.Context(), vars["id"], vars["milestoneId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "milestone": milestone})
}
