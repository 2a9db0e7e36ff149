package validator

import (
	"encoding/json"

	"github.com/tygart-labs/employee-portal-service/internal/models"
)

// EmployeeSaveRequest carries an employee document as submitted by a
// client. The list fields arrive as raw JSON so historical shapes can
// be accepted and canonicalized in one place; employee saves replace
// the whole document.
type EmployeeSaveRequest struct {
	Name           models.Name     `json:"name"`
	Skills         json.RawMessage `json:"skills"`
	Certifications json.RawMessage `json:"certifications"`
	Education      json.RawMessage `json:"education"`
	OtherTrainings json.RawMessage `json:"otherTrainings"`
	OtherTraining  json.RawMessage `json:"otherTraining"` // legacy singular
	Languages      json.RawMessage `json:"languages"`
	ClearanceLevel string          `json:"clearanceLevel" validate:"omitempty,max=100"`
}

// TrainingList returns the canonical trainings payload, falling back
// to the legacy singular key.
func (r *EmployeeSaveRequest) TrainingList() json.RawMessage {
	if len(r.OtherTrainings) > 0 {
		return r.OtherTrainings
	}
	return r.OtherTraining
}

// UserCreateRequest creates an account mirror document.
type UserCreateRequest struct {
	UID         string   `json:"uid" validate:"required,max=255"`
	Email       string   `json:"email" validate:"omitempty,email,max=255"`
	DisplayName string   `json:"displayName" validate:"omitempty,max=255"`
	PhoneNumber string   `json:"phoneNumber" validate:"omitempty,max=50"`
	Disabled    bool     `json:"disabled"`
	Roles       []string `json:"roles" validate:"omitempty,dive,max=50"`
	Role        string   `json:"role" validate:"omitempty,max=50"`
	IsAdmin     bool     `json:"isAdmin"`
}

// UserUpdateRequest updates an account mirror document. Nil fields are
// left untouched.
type UserUpdateRequest struct {
	Email       *string  `json:"email" validate:"omitempty,email,max=255"`
	DisplayName *string  `json:"displayName" validate:"omitempty,max=255"`
	PhoneNumber *string  `json:"phoneNumber" validate:"omitempty,max=50"`
	Disabled    *bool    `json:"disabled"`
	Roles       []string `json:"roles" validate:"omitempty,dive,max=50"`
	Role        *string  `json:"role" validate:"omitempty,max=50"`
	IsAdmin     *bool    `json:"isAdmin"`
}

// GridSettingSaveRequest stores a user's grid layout blob.
type GridSettingSaveRequest struct {
	State json.RawMessage `json:"state" validate:"required"`
}
