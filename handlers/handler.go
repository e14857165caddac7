package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Charanos/andishi-mvp-sub001/logging"
	"github.com/Charanos/andishi-mvp-sub001/models"
)

type apiResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
	}
}

// writeError maps the error taxonomy onto precise HTTP status codes:
// validation 400, not found 404, illegal transition or state 409,
// everything else 500.
func writeError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "validation failed", Errors: vErr.Fields})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, apiResponse{Success: false, Message: err.Error()})
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrInvalidState):
		writeJSON(w, http.StatusConflict, apiResponse{Success: false, Message: err.Error()})
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Message: "internal server error"})
	}
}
