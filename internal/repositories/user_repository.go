package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/models"
)

// UserFilters defines filters for account mirror queries
type UserFilters struct {
	Query  string // Search query for display name or email
	Limit  int    // Page size
	Offset int    // Offset for pagination
}

// UserRepository stores the mirrored account documents.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error

	// Upsert merges the given fields into an existing mirror document,
	// creating it when absent. Zero-valued fields on user do not
	// overwrite stored values.
	Upsert(ctx context.Context, tx *gorm.DB, user *models.User) error

	Delete(ctx context.Context, tx *gorm.DB, uid string) error

	GetByID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	ExistsByID(ctx context.Context, uid string) (bool, error)
	HasRole(ctx context.Context, uid string, role models.UserRole) (bool, error)
}
