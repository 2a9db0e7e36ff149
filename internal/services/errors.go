package services

import (
	"errors"
	"fmt"
)

// ===== SENTINEL ERRORS =====

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrGridSettingNotFound  = errors.New("grid setting not found")
	ErrUnknownLookup        = errors.New("unknown lookup collection")
	ErrUnauthenticated      = errors.New("caller is not authenticated")
	ErrEmployeeAlreadyExist = errors.New("employee already exists")
	ErrUserAlreadyExist     = errors.New("user already exists")
)

// ===== TYPED ERRORS =====

// PermissionError describes a denied operation on a resource.
type PermissionError struct {
	UserID   string
	Resource string
	Action   string
	Reason   string
}

func NewPermissionError(userID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

// BusinessRuleError carries a user-facing message for a rejected request,
// such as a failed roster field validation.
type BusinessRuleError struct {
	Field   string
	Message string
}

func NewBusinessRuleError(field, message string) *BusinessRuleError {
	return &BusinessRuleError{Field: field, Message: message}
}

func (e *BusinessRuleError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
