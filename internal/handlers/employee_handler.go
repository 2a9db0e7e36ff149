package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tygart-labs/employee-portal-service/internal/grid"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
	"github.com/tygart-labs/employee-portal-service/internal/services"
	"github.com/tygart-labs/employee-portal-service/internal/utils"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

type EmployeeHandler struct {
	BaseHandler
	employeeService services.EmployeeService
	validator       *validator.Validator
}

func NewEmployeeHandler(
	employeeService services.EmployeeService,
	validator *validator.Validator,
	logger utils.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler:     NewBaseHandler(logger),
		employeeService: employeeService,
		validator:       validator,
	}
}

// CreateEmployee creates a new employee record
// @Summary Create employee
// @Description Creates an employee record from a roster document
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body services.SaveEmployeeRequest true "Employee document"
// @Success 201 {object} services.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req services.SaveEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployee retrieves an employee by ID
// @Summary Get employee
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} services.EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Employee ID is required"})
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee replaces an employee document
// @Summary Update employee
// @Description Replaces the whole employee document; the last write wins
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param employee body services.SaveEmployeeRequest true "Employee document"
// @Success 200 {object} services.EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Employee ID is required"})
		return
	}

	var req services.SaveEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee removes an employee record
// @Summary Delete employee
// @Tags employees
// @Param id path string true "Employee ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Employee ID is required"})
		return
	}

	h.LogRequest(c, "Deleting employee", "employee_id", id)

	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEmployees lists employee rows with optional filtering
// @Summary List employees
// @Tags employees
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 50, max: 500)"
// @Param fullname query string false "Substring match on fullname"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} services.EmployeeListResponse
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	filters := h.parseEmployeeFilters(c)

	response, err := h.employeeService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// QueryEmployees applies a grid state to the roster
// @Summary Query employees
// @Description Applies a grid state (filter tree, sort, page window) server-side
// @Tags employees
// @Accept json
// @Produce json
// @Param state body grid.State true "Grid state"
// @Success 200 {object} services.EmployeeQueryResponse
// @Failure 400 {object} ErrorResponse
// @Router /employees/query [post]
func (h *EmployeeHandler) QueryEmployees(c *gin.Context) {
	var state grid.State
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid grid state",
			Details: err.Error(),
		})
		return
	}

	response, err := h.employeeService.Query(c.Request.Context(), state)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetEmployeesBySkill lists employees holding a skill
// @Summary List employees by skill
// @Tags employees
// @Produce json
// @Param skill path string true "Skill name"
// @Success 200 {object} services.EmployeeListResponse
// @Router /employees/by-skill/{skill} [get]
func (h *EmployeeHandler) GetEmployeesBySkill(c *gin.Context) {
	skill := c.Param("skill")
	if skill == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Skill is required"})
		return
	}

	response, err := h.employeeService.GetBySkill(c.Request.Context(), skill)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ImportEmployees ingests a snapshot of raw employee documents
// @Summary Import employees
// @Description Upserts raw employee documents keyed by id, as produced by older exports
// @Tags employees
// @Accept json
// @Produce json
// @Param documents body map[string]map[string]interface{} true "Documents keyed by id"
// @Success 200 {object} services.EmployeeImportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /employees/import [post]
func (h *EmployeeHandler) ImportEmployees(c *gin.Context) {
	var docs map[string]map[string]any
	if err := c.ShouldBindJSON(&docs); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Importing employee documents", "count", len(docs))

	response, err := h.employeeService.Import(c.Request.Context(), docs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExportEmployees downloads the roster as an xlsx workbook
// @Summary Export roster
// @Tags employees
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /employees/export [get]
func (h *EmployeeHandler) ExportEmployees(c *gin.Context) {
	h.LogRequest(c, "Exporting employee roster")

	data, err := h.employeeService.Export(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("employees-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== HELPER METHODS =====

func (h *EmployeeHandler) parseEmployeeFilters(c *gin.Context) repositories.EmployeeFilters {
	// Parse pagination using page and size
	page := 1
	size := 50

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 500 {
			size = s
		}
	}

	filters := repositories.EmployeeFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "fullname"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
	}

	if fullname := c.Query("fullname"); fullname != "" {
		filters.Fullname = &fullname
	}

	return filters
}
