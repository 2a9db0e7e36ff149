package repositories

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// EmployeeFilters defines filters for employee queries
type EmployeeFilters struct {
	Fullname *string `json:"fullname"` // Substring match on the persisted fullname
	Skill    *string `json:"skill"`    // Substring match on the persisted skill names

	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "fullname", "created_at", "updated_at", "id"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// ===== EMPLOYEE DOMAIN =====

// EmployeeRepository stores employee documents.
type EmployeeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, employee *models.Employee) error
	Update(ctx context.Context, tx *gorm.DB, employee *models.Employee) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Employee, error)
	List(ctx context.Context, tx *gorm.DB, filters EmployeeFilters) ([]*models.Employee, int64, error)

	ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

// ===== REFERENCE DATA =====

// LookupRepository stores the reference collections.
type LookupRepository interface {
	ListByCollection(ctx context.Context, collection models.LookupCollection) ([]*models.LookupOption, error)
	Names(ctx context.Context, collection models.LookupCollection) ([]string, error)

	Add(ctx context.Context, tx *gorm.DB, option *models.LookupOption) error
	Remove(ctx context.Context, tx *gorm.DB, collection models.LookupCollection, name string) error
}

// GridSettingRepository stores per-user grid layout blobs.
type GridSettingRepository interface {
	Get(ctx context.Context, userID, gridID string) (*models.GridSetting, error)
	Save(ctx context.Context, userID, gridID string, state datatypes.JSON) error
}

// ===== IDENTITY PROVIDER DIRECTORY =====

// AccountMetadata carries provider timestamps for a directory account.
type AccountMetadata struct {
	CreationTime   string `json:"creationTime"`
	LastSignInTime string `json:"lastSignInTime"`
}

// AccountInfo is one account as reported by the identity provider.
type AccountInfo struct {
	UID         string          `json:"uid"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	PhoneNumber string          `json:"phoneNumber"`
	Disabled    bool            `json:"disabled"`
	Metadata    AccountMetadata `json:"metadata"`
}

// DirectoryRepository reads accounts from the identity provider.
type DirectoryRepository interface {
	// ListPage returns one page of accounts (1-based page index) and
	// the total account count.
	ListPage(ctx context.Context, page, pageSize int) ([]AccountInfo, int, error)

	GetByID(ctx context.Context, uid string) (*AccountInfo, error)
}
