package services

import (
	"context"
	"encoding/json"

	"github.com/tygart-labs/employee-portal-service/internal/events"
	"github.com/tygart-labs/employee-portal-service/internal/grid"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type SaveEmployeeRequest = validator.EmployeeSaveRequest
type CreateUserRequest = validator.UserCreateRequest
type UpdateUserRequest = validator.UserUpdateRequest
type SaveGridSettingRequest = validator.GridSettingSaveRequest

type EmployeeResponse struct {
	models.EmployeeRow
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type EmployeeListResponse struct {
	Employees []models.EmployeeRow `json:"employees"`
	Total     int64                `json:"total"`
	Page      int                  `json:"page"`
	Size      int                  `json:"size"`
}

// EmployeeQueryResponse is the page a grid state produced: the rows in
// the requested window plus the total after filtering.
type EmployeeQueryResponse struct {
	Employees []models.EmployeeRow `json:"employees"`
	Total     int                  `json:"total"`
}

// EmployeeImportResponse summarizes a raw-document import.
type EmployeeImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

type UserResponse struct {
	*models.User
	Roles []string `json:"roles"`
}

type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

type AccountListResponse struct {
	Accounts []repositories.AccountInfo `json:"accounts"`
	Total    int                        `json:"total"`
}

type LookupResponse struct {
	Collection string   `json:"collection"`
	Options    []string `json:"options"`
}

type GridSettingResponse struct {
	GridID string          `json:"gridId"`
	State  json.RawMessage `json:"state"`
}

// ===== SERVICE INTERFACES =====

type EmployeeService interface {
	// Core CRUD operations
	Create(ctx context.Context, req *SaveEmployeeRequest) (*EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*EmployeeResponse, error)
	Update(ctx context.Context, id string, req *SaveEmployeeRequest) (*EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	// List and query operations
	List(ctx context.Context, filters repositories.EmployeeFilters) (*EmployeeListResponse, error)
	Query(ctx context.Context, state grid.State) (*EmployeeQueryResponse, error)
	GetBySkill(ctx context.Context, skill string) (*EmployeeListResponse, error)

	// Bulk ingestion of raw documents keyed by id
	Import(ctx context.Context, docs map[string]map[string]any) (*EmployeeImportResponse, error)

	// Export
	Export(ctx context.Context) ([]byte, error)
}

type UserService interface {
	// Core CRUD operations
	Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	GetByID(ctx context.Context, uid string) (*UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*UserResponse, error)
	Update(ctx context.Context, uid string, req *UpdateUserRequest) (*UserResponse, error)
	Delete(ctx context.Context, uid string) error

	// List operations
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)

	// Role resolution
	ResolveRoles(ctx context.Context, uid string) ([]string, error)
	IsAdmin(ctx context.Context, uid, email string) (bool, error)
}

// Caller is the authenticated request principal as resolved by the
// auth middleware. Admin carries the middleware's role resolution,
// including the token-claim short-circuit, so services do not have to
// re-resolve it from the mirror.
type Caller struct {
	UID   string
	Email string
	Admin bool
}

type DirectoryService interface {
	ListAccounts(ctx context.Context, caller Caller) (*AccountListResponse, error)
	GetAccount(ctx context.Context, caller Caller, uid string) (*repositories.AccountInfo, error)
}

type LookupService interface {
	GetCollection(ctx context.Context, collection string) (*LookupResponse, error)
	AddOption(ctx context.Context, collection, name string) error
	RemoveOption(ctx context.Context, collection, name string) error

	// AbsorbEmployee folds a saved roster document into the option
	// collections. The accumulation is a set union, so replaying or
	// reordering saves converges on the same collections.
	AbsorbEmployee(ctx context.Context, emp *models.Employee) error
}

type AccountMirrorService interface {
	HandleAccountCreated(ctx context.Context, account events.AccountEvent) error
	HandleAccountDeleted(ctx context.Context, account events.AccountEvent) error
}

type GridSettingService interface {
	Get(ctx context.Context, userID, gridID string) (*GridSettingResponse, error)
	Save(ctx context.Context, userID, gridID string, req *SaveGridSettingRequest) (*GridSettingResponse, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Employee() EmployeeService
	User() UserService
	Directory() DirectoryService
	Lookup() LookupService
	AccountMirror() AccountMirrorService
	GridSetting() GridSettingService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
