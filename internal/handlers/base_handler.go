package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tygart-labs/employee-portal-service/internal/services"
	"github.com/tygart-labs/employee-portal-service/internal/utils"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

// BaseHandler carries the pieces every handler shares: request-scoped
// logging and service error translation.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// handleServiceError maps service errors onto HTTP statuses. Anything
// unrecognized is a 500 without the internal detail leaking out.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var permErr *services.PermissionError
	var ruleErr *services.BusinessRuleError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrGridSettingNotFound),
		errors.Is(err, services.ErrUnknownLookup):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})

	case errors.Is(err, services.ErrEmployeeAlreadyExist),
		errors.Is(err, services.ErrUserAlreadyExist):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})

	case errors.As(err, &permErr):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Insufficient permissions", Details: permErr.Reason})

	case errors.As(err, &ruleErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: ruleErr.Message, Details: ruleErr.Field})

	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Details: validationErrs})

	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
