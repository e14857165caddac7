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

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var input services.PaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, models.NewValidationError("body", "invalid request payload"))
		return
	}

	submittedBy := models.SubmittedByClient
	if _, err := utils.AdminFromRequest(r); err == nil {
		submittedBy = models.SubmittedByAdmin
	}

	vars := mux.Vars(r)
	payment, err := h.Service.RecordPayment(r.Context(), vars["id"], input, submittedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "payment": payment})
}

func (h *PaymentHandler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	adminName, err := utils.AdminFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	payment, err := h.Service.ApprovePayment(r.Context(), vars["id"], vars["paymentId"], adminName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "payment": payment})
}

func (h *PaymentHandler) RejectPayment(w http.ResponseWriter, r *http.Request) {
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
	payment, err := h.Service.RejectPayment(r.Context(), vars["id"], vars["paymentId"], adminName, payload.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "payment": payment})
}
