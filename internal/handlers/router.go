package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tygart-labs/employee-portal-service/internal/config"
	"github.com/tygart-labs/employee-portal-service/internal/services"
	"github.com/tygart-labs/employee-portal-service/internal/utils"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

type HandlerManager struct {
	employeeHandler *EmployeeHandler
	userHandler     *UserHandler
	accountHandler  *AccountHandler
	lookupHandler   *LookupHandler
	profileHandler  *ProfileHandler
	authMiddleware  *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, serviceManager.User())

	return &HandlerManager{
		employeeHandler: NewEmployeeHandler(serviceManager.Employee(), validator, logger),
		userHandler:     NewUserHandler(serviceManager.User(), logger),
		accountHandler:  NewAccountHandler(serviceManager.Directory(), logger),
		lookupHandler:   NewLookupHandler(serviceManager.Lookup(), logger),
		profileHandler:  NewProfileHandler(serviceManager.User(), serviceManager.GridSetting(), logger),
		authMiddleware:  authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware()) // Apply authentication to all API routes
	{
		// Employee roster routes - Admins only
		employees := v1.Group("/employees")
		employees.Use(hm.authMiddleware.RequireAdminMiddleware())
		{
			employees.GET("", hm.employeeHandler.ListEmployees)
			employees.POST("", hm.employeeHandler.CreateEmployee)
			employees.POST("/query", hm.employeeHandler.QueryEmployees)
			employees.POST("/import", hm.employeeHandler.ImportEmployees)
			employees.GET("/export", hm.employeeHandler.ExportEmployees)
			employees.GET("/by-skill/:skill", hm.employeeHandler.GetEmployeesBySkill)
			employees.GET("/:id", hm.employeeHandler.GetEmployee)
			employees.PUT("/:id", hm.employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", hm.employeeHandler.DeleteEmployee)
		}

		// Account mirror routes - Admins only
		users := v1.Group("/users")
		users.Use(hm.authMiddleware.RequireAdminMiddleware())
		{
			users.GET("", hm.userHandler.ListUsers)
			users.POST("", hm.userHandler.CreateUser)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}

		// Identity provider directory - Admins only
		accounts := v1.Group("/accounts")
		accounts.Use(hm.authMiddleware.RequireAdminMiddleware())
		{
			accounts.GET("", hm.accountHandler.ListAccounts)
			accounts.GET("/:id", hm.accountHandler.GetAccount)
		}

		// Reference collections - all authenticated users read,
		// admins manage
		lookups := v1.Group("/lookups")
		{
			lookups.GET("/:collection", hm.lookupHandler.GetCollection)
			lookups.POST("/:collection/options", hm.authMiddleware.RequireAdminMiddleware(), hm.lookupHandler.AddOption)
			lookups.DELETE("/:collection/options/:name", hm.authMiddleware.RequireAdminMiddleware(), hm.lookupHandler.RemoveOption)
		}

		// Caller-scoped routes
		v1.GET("/profile", hm.profileHandler.GetProfile)
		v1.GET("/grid-settings/:grid", hm.profileHandler.GetGridSetting)
		v1.PUT("/grid-settings/:grid", hm.profileHandler.SaveGridSetting)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "employee-portal-service",
		})
	})
}
