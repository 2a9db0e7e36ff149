package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tygart-labs/employee-portal-service/internal/services"
	"github.com/tygart-labs/employee-portal-service/internal/utils"
)

type LookupHandler struct {
	BaseHandler
	lookupService services.LookupService
}

func NewLookupHandler(lookupService services.LookupService, logger utils.Logger) *LookupHandler {
	return &LookupHandler{
		BaseHandler:   NewBaseHandler(logger),
		lookupService: lookupService,
	}
}

type lookupOptionRequest struct {
	Name string `json:"name"`
}

// GetCollection returns the options of a reference collection
// @Summary Get lookup collection
// @Tags lookups
// @Produce json
// @Param collection path string true "Collection name"
// @Success 200 {object} services.LookupResponse
// @Failure 404 {object} ErrorResponse
// @Router /lookups/{collection} [get]
func (h *LookupHandler) GetCollection(c *gin.Context) {
	collection := c.Param("collection")

	response, err := h.lookupService.GetCollection(c.Request.Context(), collection)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AddOption adds an option to a reference collection
// @Summary Add lookup option
// @Tags lookups
// @Accept json
// @Param collection path string true "Collection name"
// @Param option body lookupOptionRequest true "Option"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /lookups/{collection}/options [post]
func (h *LookupHandler) AddOption(c *gin.Context) {
	collection := c.Param("collection")

	var req lookupOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Adding lookup option", "collection", collection, "name", req.Name)

	if err := h.lookupService.AddOption(c.Request.Context(), collection, req.Name); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveOption removes an option from a reference collection
// @Summary Remove lookup option
// @Tags lookups
// @Param collection path string true "Collection name"
// @Param name path string true "Option name"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /lookups/{collection}/options/{name} [delete]
func (h *LookupHandler) RemoveOption(c *gin.Context) {
	collection := c.Param("collection")
	name := c.Param("name")

	h.LogRequest(c, "Removing lookup option", "collection", collection, "name", name)

	if err := h.lookupService.RemoveOption(c.Request.Context(), collection, name); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
