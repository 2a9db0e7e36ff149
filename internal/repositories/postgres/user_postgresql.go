package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/cache"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

const (
	userCacheTTL   = 15 * time.Minute
	existsCacheTTL = 1 * time.Minute
)

type userRepository struct {
	db          *gorm.DB
	cache       *cache.CacheHelper
	existsCache *cache.CacheHelper
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &userRepository{
		db:          db,
		cache:       cache.NewCacheHelper(redisClient, cache.UserCacheConfig.Prefix),
		existsCache: cache.NewCacheHelper(redisClient, cache.ExistsCacheConfig.Prefix),
	}
}

// ===== WRITE OPERATIONS =====

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	user.NormalizeRoles()
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	r.invalidate(ctx, user.UID, user.Email)
	return nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	user.NormalizeRoles()
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return handleDBError(err, "update user")
	}
	r.invalidate(ctx, user.UID, user.Email)
	return nil
}

// Upsert merges the incoming document into the stored mirror. Fields
// left at their zero value do not clobber existing data, matching the
// merge semantics of the account-created mirror path.
func (r *userRepository) Upsert(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)

	var existing models.User
	err := db.WithContext(ctx).First(&existing, "uid = ?", user.UID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user.NormalizeRoles()
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return handleDBError(err, "create user mirror")
		}
		r.invalidate(ctx, user.UID, user.Email)
		return nil
	}
	if err != nil {
		return handleDBError(err, "load user mirror for upsert")
	}

	updates := map[string]interface{}{
		"disabled": user.Disabled,
	}
	if user.Email != "" {
		updates["email"] = user.Email
	}
	if user.DisplayName != "" {
		updates["display_name"] = user.DisplayName
	}
	if user.PhoneNumber != "" {
		updates["phone_number"] = user.PhoneNumber
	}
	if len(user.Roles) > 0 {
		updates["roles"] = user.Roles
	}
	if user.Role != "" {
		updates["role"] = user.Role
	}
	if user.IsAdmin {
		updates["is_admin"] = true
	}
	if user.CreationTime != nil {
		updates["creation_time"] = user.CreationTime
	}
	if user.LastSignInTime != nil {
		updates["last_sign_in_time"] = user.LastSignInTime
	}

	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("uid = ?", user.UID).
		Updates(updates).Error; err != nil {
		return handleDBError(err, "upsert user mirror")
	}

	r.invalidate(ctx, user.UID, existing.Email)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, uid string) error {
	db := r.getDB(tx)

	// Load first so the email cache key can be dropped too
	var existing models.User
	if err := db.WithContext(ctx).First(&existing, "uid = ?", uid).Error; err != nil {
		return handleDBError(err, "load user for delete")
	}

	if err := db.WithContext(ctx).Delete(&models.User{}, "uid = ?", uid).Error; err != nil {
		return handleDBError(err, "delete user")
	}

	r.invalidate(ctx, uid, existing.Email)
	return nil
}

// ===== READ OPERATIONS =====

func (r *userRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := r.cache.CacheOrExecute(ctx, fmt.Sprintf("id:%s", uid), &user, userCacheTTL, func() (interface{}, error) {
		var u models.User
		if err := r.db.WithContext(ctx).First(&u, "uid = ?", uid).Error; err != nil {
			return nil, handleDBError(err, "get user by id")
		}
		return &u, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.cache.CacheOrExecute(ctx, fmt.Sprintf("email:%s", email), &user, userCacheTTL, func() (interface{}, error) {
		var u models.User
		if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
			return nil, handleDBError(err, "get user by email")
		}
		return &u, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})
	if filters.Query != "" {
		search := "%" + filters.Query + "%"
		query = query.Where("display_name ILIKE ? OR email ILIKE ?", search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count users")
	}

	query = query.Order("display_name ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, 0, handleDBError(err, "list users")
	}

	return users, total, nil
}

// ===== VALIDATION =====

func (r *userRepository) ExistsByID(ctx context.Context, uid string) (bool, error) {
	key := fmt.Sprintf("user:%s", uid)
	if cached, err := r.existsCache.GetString(ctx, key); err == nil {
		return cached == "1", nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("uid = ?", uid).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check user exists")
	}

	value := "0"
	if count > 0 {
		value = "1"
	}
	_ = r.existsCache.SetString(ctx, key, value, existsCacheTTL)

	return count > 0, nil
}

func (r *userRepository) HasRole(ctx context.Context, uid string, role models.UserRole) (bool, error) {
	user, err := r.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	for _, r := range user.RoleSet() {
		if r == string(role) {
			return true, nil
		}
	}
	return false, nil
}

// ===== HELPER METHODS =====

func (r *userRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepository) invalidate(ctx context.Context, uid, email string) {
	keys := []string{"id:" + uid}
	if email != "" {
		keys = append(keys, "email:"+email)
	}
	cache.SafeDelete(ctx, r.cache, keys...)
	cache.SafeDelete(ctx, r.existsCache, "user:"+uid)
}
