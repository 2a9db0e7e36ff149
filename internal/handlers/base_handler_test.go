package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/tygart-labs/employee-portal-service/internal/services"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"employee not found", services.ErrEmployeeNotFound, http.StatusNotFound},
		{"user not found", services.ErrUserNotFound, http.StatusNotFound},
		{"grid setting not found", services.ErrGridSettingNotFound, http.StatusNotFound},
		{"unknown lookup", services.ErrUnknownLookup, http.StatusNotFound},
		{"unauthenticated", services.ErrUnauthenticated, http.StatusUnauthorized},
		{"user already exists", services.ErrUserAlreadyExist, http.StatusConflict},
		{"permission denied", services.NewPermissionError("u1", "directory", "list", "admin role required"), http.StatusForbidden},
		{"business rule violation", services.NewBusinessRuleError("skills", "at least one skill is required"), http.StatusUnprocessableEntity},
		{"validation errors", validator.ValidationErrors{{Field: "name", Message: "required"}}, http.StatusBadRequest},
		{"wrapped not found", errors.Join(errors.New("lookup"), services.ErrEmployeeNotFound), http.StatusNotFound},
		{"unrecognized error", errors.New("connection refused"), http.StatusInternalServerError},
	}

	h := NewBaseHandler(newTestLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodGet, "/")

			h.handleServiceError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}

	t.Run("internal detail does not leak", func(t *testing.T) {
		c, w := newTestContext(t, http.MethodGet, "/")

		h.handleServiceError(c, errors.New("password=hunter2 dial failed"))

		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("malformed error body: %v", err)
		}
		if resp.Message != "Internal server error" {
			t.Errorf("message = %q", resp.Message)
		}
	})
}
