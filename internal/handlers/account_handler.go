package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tygart-labs/employee-portal-service/internal/services"
	"github.com/tygart-labs/employee-portal-service/internal/utils"
)

type AccountHandler struct {
	BaseHandler
	directoryService services.DirectoryService
}

func NewAccountHandler(directoryService services.DirectoryService, logger utils.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler:      NewBaseHandler(logger),
		directoryService: directoryService,
	}
}

// ListAccounts lists every account in the identity provider directory
// @Summary List directory accounts
// @Description Pages through the identity provider and returns the full listing
// @Tags accounts
// @Produce json
// @Success 200 {object} services.AccountListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	caller := callerFromContext(c)

	h.LogRequest(c, "Listing directory accounts", "caller", caller.UID)

	response, err := h.directoryService.ListAccounts(c.Request.Context(), caller)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAccount retrieves a single directory account
// @Summary Get directory account
// @Tags accounts
// @Produce json
// @Param id path string true "Account UID"
// @Success 200 {object} repositories.AccountInfo
// @Failure 403 {object} ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	uid := c.Param("id")
	if uid == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Account UID is required"})
		return
	}

	account, err := h.directoryService.GetAccount(c.Request.Context(), callerFromContext(c), uid)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
