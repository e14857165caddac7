package handlers

import (
	"io"
	"net/http"

	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/models"
	"github.com/Charanos/andishi-mvp-sub001/services"
)

type SubmissionHandler struct {
	Service *services.SubmissionService
}

func NewSubmissionHandler(service *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{Service: service}
}

type submissionResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
	IsNewUser  bool   `json:"isNewUser"`
}

// CreateProject is the public submission endpoint: validate the payload,
// resolve or create the owning user and insert the pending project.
func (h *SubmissionHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, models.NewValidationError("body", "failed to read request body"))
		return
	}

	sub, err := h.Service.ParseSubmission(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}

	insertedID, isNewUser, err := h.Service.CreateProject(r.Context(), sub)
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: SUBMISSION_ACCEPTED, Description: Project %s created from submission", insertedID)
	writeJSON(w, http.StatusCreated, submissionResponse{
		Success:    true,
		Message:    "Project submitted successfully",
		InsertedID: insertedID,
		IsNewUser:  isNewUser,
	})
}
