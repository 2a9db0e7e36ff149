package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/events"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// Logging configuration
	EnableDebugLogging bool
	LogLevel           slog.Level

	// Service-specific configurations
	Employee    ServiceConfig
	User        ServiceConfig
	Directory   ServiceConfig
	Lookup      ServiceConfig
	GridSetting ServiceConfig

	// Global settings
	DefaultTimeout time.Duration
	MaxRetries     int
}

type ServiceConfig struct {
	Enabled      bool
	CacheEnabled bool
	CacheTTL     time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	config    ServiceManagerConfig

	// Service instances
	employeeService      EmployeeService
	userService          UserService
	directoryService     DirectoryService
	lookupService        LookupService
	accountMirrorService AccountMirrorService
	gridSettingService   GridSettingService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		config:    config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,

		Employee: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     5 * time.Minute,
		},
		User: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     15 * time.Minute,
		},
		Directory: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     5 * time.Minute,
		},
		Lookup: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     30 * time.Minute,
		},
		GridSetting: ServiceConfig{
			Enabled:      true,
			CacheEnabled: false,
			CacheTTL:     0,
		},

		DefaultTimeout: 30 * time.Second,
		MaxRetries:     3,
	}

	return NewServiceManager(db, repo, logger, validator, publisher, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if err := sm.initializeServices(ctx); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices(_ context.Context) error {
	// Initialize LookupService first; EmployeeService feeds it on save
	if sm.config.Lookup.Enabled {
		sm.lookupService = NewLookupService(sm.repo, sm.db, sm.logger)
		sm.logger.Info("Lookup service initialized")
	}

	// Initialize EmployeeService
	if sm.config.Employee.Enabled {
		sm.employeeService = NewEmployeeService(sm.repo, sm.db, sm.logger, sm.validator, sm.lookupService)
		sm.logger.Info("Employee service initialized")
	}

	// Initialize UserService
	if sm.config.User.Enabled {
		sm.userService = NewUserService(sm.repo, sm.db, sm.logger, sm.validator, sm.publisher)
		sm.logger.Info("User service initialized")
	}

	// Initialize DirectoryService
	if sm.config.Directory.Enabled {
		sm.directoryService = NewDirectoryService(sm.repo, sm.userService, sm.logger)
		sm.logger.Info("Directory service initialized")
	}

	// Initialize AccountMirrorService
	sm.accountMirrorService = NewAccountMirrorService(sm.repo, sm.db, sm.logger)
	sm.logger.Info("Account mirror service initialized")

	// Initialize GridSettingService
	if sm.config.GridSetting.Enabled {
		sm.gridSettingService = NewGridSettingService(sm.repo, sm.db, sm.logger, sm.validator)
		sm.logger.Info("Grid setting service initialized")
	}

	return nil
}

// Service getters
func (sm *serviceManager) Employee() EmployeeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Employee.Enabled && sm.employeeService != nil {
		return sm.employeeService
	}

	panic("employee service not enabled or not initialized")
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.User.Enabled && sm.userService != nil {
		return sm.userService
	}

	panic("user service not enabled or not initialized")
}

func (sm *serviceManager) Directory() DirectoryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Directory.Enabled && sm.directoryService != nil {
		return sm.directoryService
	}

	panic("directory service not enabled or not initialized")
}

func (sm *serviceManager) Lookup() LookupService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Lookup.Enabled && sm.lookupService != nil {
		return sm.lookupService
	}

	panic("lookup service not enabled or not initialized")
}

func (sm *serviceManager) AccountMirror() AccountMirrorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.accountMirrorService != nil {
		return sm.accountMirrorService
	}

	panic("account mirror service not initialized")
}

func (sm *serviceManager) GridSetting() GridSettingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.GridSetting.Enabled && sm.gridSettingService != nil {
		return sm.gridSettingService
	}

	panic("grid setting service not enabled or not initialized")
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	// Check repository health
	if repoManager, ok := sm.repo.(repositories.RepositoryManager); ok {
		if err := repoManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("repository health check failed: %w", err)
		}
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	// Shutdown repository manager
	if repoManager, ok := sm.repo.(repositories.RepositoryManager); ok {
		if err := repoManager.Shutdown(ctx); err != nil {
			sm.logger.Error("Failed to shutdown repository manager", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// ===== UTILITY METHODS =====

// GetConfig returns the service manager configuration
func (sm *serviceManager) GetConfig() ServiceManagerConfig {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.config
}

// IsInitialized returns whether the service manager has been initialized
func (sm *serviceManager) IsInitialized() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.initialized
}

// IsShutdown returns whether the service manager has been shut down
func (sm *serviceManager) IsShutdown() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.shutdown
}

// ===== HELPER FUNCTIONS =====

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}

// ===== CONFIGURATION VALIDATION =====

// Validate validates the service manager configuration
func (config *ServiceManagerConfig) Validate() error {
	var errors []string

	if config.DefaultTimeout <= 0 {
		errors = append(errors, "default timeout must be positive")
	}

	if config.MaxRetries < 0 {
		errors = append(errors, "max retries cannot be negative")
	}

	for name, sc := range map[string]ServiceConfig{
		"employee":     config.Employee,
		"user":         config.User,
		"directory":    config.Directory,
		"lookup":       config.Lookup,
		"grid_setting": config.GridSetting,
	} {
		if sc.CacheTTL < 0 {
			errors = append(errors, fmt.Sprintf("%s: cache TTL cannot be negative", name))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}
