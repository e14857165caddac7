package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Charanos/andishi-mvp-sub001/handlers"
	"github.com/Charanos/andishi-mvp-sub001/services"
	"github.com/Charanos/andishi-mvp-sub001/utils"

	"github.com/gorilla/mux"
)

func adminToken(t *testing.T) string {
	t.Helper()
	os.Setenv("JWT_SECRET", "test-secret")
	t.Cleanup(func() { os.Unsetenv("JWT_SECRET") })
	token, err := utils.GenerateToken("Joy", "admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestCreateProject_ValidationFailureReturns400WithFieldMap(t *testing.T) {
	service, err := services.NewSubmissionService(nil, nil, nil)
	if err != nil {
		t.Fatalf("failed to build submission service: %v", err)
	}
	h := handlers.NewSubmissionHandler(service)

	payload := `{"userInfo": {"firstName": "OnlyFirst"}, "projectDetails": {}}`
	r := httptest.NewRequest("POST", "/api/projects", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	h.CreateProject(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Error("expected success=false")
	}
	if errs, ok := body["errors"].(map[string]interface{}); !ok || len(errs) == 0 {
		t.Errorf("expected field-keyed errors map, got: %v", body["errors"])
	}
}

func TestCreateProject_MalformedJSONReturns400(t *testing.T) {
	service, err := services.NewSubmissionService(nil, nil, nil)
	if err != nil {
		t.Fatalf("failed to build submission service: %v", err)
	}
	h := handlers.NewSubmissionHandler(service)

	r := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()

	h.CreateProject(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRejectMilestone_EmptyReasonReturns400(t *testing.T) {
	token := adminToken(t)
	h := handlers.NewMilestoneHandler(services.NewMilestoneService(nil))

	r := httptest.NewRequest("PATCH", "/api/projects/p1/milestones/m1/reject", strings.NewReader(`{"reason": "   "}`))
	r.Header.Set("Authorization", "Bearer "+token)
	r = mux.SetURLVars(r, map[string]string{"id": "p1", "milestoneId": "m1"})
	rec := httptest.NewRecorder()

	h.RejectMilestone(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if errs, ok := body["errors"].(map[string]interface{}); !ok || errs["reason"] == nil {
		t.Errorf("expected reason in errors map, got: %v", body["errors"])
	}
}

func TestRejectMilestone_MissingTokenReturns401(t *testing.T) {
	h := handlers.NewMilestoneHandler(services.NewMilestoneService(nil))

	r := httptest.NewRequest("PATCH", "/api/projects/p1/milestones/m1/reject", strings.NewReader(`{"reason": "x"}`))
	r = mux.SetURLVars(r, map[string]string{"id": "p1", "milestoneId": "m1"})
	rec := httptest.NewRecorder()

	h.RejectMilestone(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRejectPayment_EmptyReasonReturns400(t *testing.T) {
	token := adminToken(t)
	h := handlers.NewPaymentHandler(services.NewPaymentService(nil))

	r := httptest.NewRequest("PATCH", "/api/projects/p1/payments/pay1/reject", strings.NewReader(`{"reason": ""}`))
	r.Header.Set("Authorization", "Bearer "+token)
	r = mux.SetURLVars(r, map[string]string{"id": "p1", "paymentId": "pay1"})
	rec := httptest.NewRecorder()

	h.RejectPayment(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChangeStatus_MissingStatusReturns400(t *testing.T) {
	token := adminToken(t)
	h := handlers.NewProjectHandler(services.NewProjectService(nil, nil, nil))

	r := httptest.NewRequest("PATCH", "/api/projects/p1/status", strings.NewReader(`{}`))
	r.Header.Set("Authorization", "Bearer "+token)
	r = mux.SetURLVars(r, map[string]string{"id": "p1"})
	rec := httptest.NewRecorder()

	h.ChangeStatus(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSetProgress_MissingProgressReturns400(t *testing.T) {
	h := handlers.NewProjectHandler(services.NewProjectService(nil, nil, nil))

	r := httptest.NewRequest("PATCH", "/api/projects/p1/progress", strings.NewReader(`{}`))
	r = mux.SetURLVars(r, map[string]string{"id": "p1"})
	rec := httptest.NewRecorder()

	h.SetProgress(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
