package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Charanos/andishi-mvp-sub001/models"
	"github.com/Charanos/andishi-mvp-sub001/services"
	"github.com/Charanos/andishi-mvp-sub001/utils"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.GetAllProjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "projects": projects})
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	project, err := h.Service.GetProjectByID(r.Context(), vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "project": project})
}

// ChangeStatus applies an admin status transition; the acting admin comes
// from the token, never from ambient state.
func (h *ProjectHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	adminName, err := utils.AdminFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("body", "invalid request payload"))
		return
	}
	if payload.Status == "" {
		writeError(w, models.NewValidationError("status", "status is required"))
		return
	}

	vars := mux.Vars(r)
	project, err := h.Service.ChangeStatus(r.Context(), vars["id"], payload.Status, adminName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "project": project})
}

func (h *ProjectHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Progress *int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, models.NewValidationError("body", "invalid request payload"))
		return
	}
	if payload.Progress == nil {
		writeError(w, models.NewValidationError("progress", "progress is required"))
		return
	}

	vars := mux.Vars(r)
	project, err := h.Service.SetProgress(r.Context(), vars["id"], *payload.Progress)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "project": project})
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Service.DeleteProject(r.Context(), vars["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Project deleted successfully"})
}

func (h *ProjectHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	report, err := h.Service.GetReport(r.Context(), vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "report": report})
}
