package utils_test

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Charanos/andishi-mvp-sub001/utils"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := utils.GenerateToken("Joy", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Name != "Joy" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	if _, err := utils.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestValidateToken_NoExpiry(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	// Well-signed but carrying no exp claim; must be refused, not panic.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.Claims{Name: "Joy", Role: "admin"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := utils.ValidateToken(signed); err == nil {
		t.Fatal("expected error for token without expiry")
	}
}

func TestAdminFromRequest(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := utils.GenerateToken("Joy", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	r := httptest.NewRequest("PATCH", "/api/projects/1/status", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	name, err := utils.AdminFromRequest(r)
	if err != nil {
		t.Fatalf("AdminFromRequest failed: %v", err)
	}
	if name != "Joy" {
		t.Errorf("expected acting admin Joy, got %q", name)
	}
}

func TestAdminFromRequest_NonAdminRole(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := utils.GenerateToken("Sam", "client")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	r := httptest.NewRequest("PATCH", "/api/projects/1/status", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	if _, err := utils.AdminFromRequest(r); err == nil {
		t.Fatal("expected error for non-admin role")
	}
}

func TestAdminFromRequest_MissingHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/projects", nil)
	if _, err := utils.AdminFromRequest(r); err == nil {
		t.Fatal("expected error when Authorization header is missing")
	}
}
