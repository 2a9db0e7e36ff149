package repositories

import "context"

// Repository aggregates all repository interfaces.
type Repository interface {
	// Employee domain
	Employee() EmployeeRepository

	// Account mirror domain
	User() UserRepository

	// Identity provider directory (read-only)
	Directory() DirectoryRepository

	// Reference data
	Lookup() LookupRepository

	// Per-user grid layout blobs
	GridSetting() GridSettingRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
