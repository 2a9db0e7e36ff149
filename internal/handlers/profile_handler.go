package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tygart-labs/employee-portal-service/internal/services"
	"github.com/tygart-labs/employee-portal-service/internal/utils"
)

type ProfileHandler struct {
	BaseHandler
	userService        services.UserService
	gridSettingService services.GridSettingService
}

func NewProfileHandler(userService services.UserService, gridSettingService services.GridSettingService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:        NewBaseHandler(logger),
		userService:        userService,
		gridSettingService: gridSettingService,
	}
}

// GetProfile returns the caller's own mirror document
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Success 200 {object} services.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	uid, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	profile, err := h.userService.GetByID(c.Request.Context(), uid)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetGridSetting loads the caller's saved layout for a grid
// @Summary Get grid setting
// @Tags grid-settings
// @Produce json
// @Param grid path string true "Grid ID"
// @Success 200 {object} services.GridSettingResponse
// @Failure 404 {object} ErrorResponse
// @Router /grid-settings/{grid} [get]
func (h *ProfileHandler) GetGridSetting(c *gin.Context) {
	uid, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	setting, err := h.gridSettingService.Get(c.Request.Context(), uid, c.Param("grid"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

// SaveGridSetting stores the caller's layout for a grid
// @Summary Save grid setting
// @Tags grid-settings
// @Accept json
// @Produce json
// @Param grid path string true "Grid ID"
// @Param setting body services.SaveGridSettingRequest true "Layout blob"
// @Success 200 {object} services.GridSettingResponse
// @Failure 400 {object} ErrorResponse
// @Router /grid-settings/{grid} [put]
func (h *ProfileHandler) SaveGridSetting(c *gin.Context) {
	uid, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.SaveGridSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	setting, err := h.gridSettingService.Save(c.Request.Context(), uid, c.Param("grid"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}
