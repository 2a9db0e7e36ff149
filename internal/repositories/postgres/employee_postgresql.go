package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/cache"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

type employeeRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

// cachedEmployeeList bundles a page with its filtered total so both
// survive a cache round-trip together.
type cachedEmployeeList struct {
	Employees []*models.Employee `json:"employees"`
	Total     int64              `json:"total"`
}

func NewEmployeePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.EmployeeRepository {
	return &employeeRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, cache.EmployeeCacheConfig.Prefix),
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *employeeRepository) Create(ctx context.Context, tx *gorm.DB, employee *models.Employee) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(employee).Error; err != nil {
		return handleDBError(err, "create employee")
	}
	r.invalidate(ctx, employee.ID)
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, tx *gorm.DB, employee *models.Employee) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(employee).Error; err != nil {
		return handleDBError(err, "update employee")
	}
	r.invalidate(ctx, employee.ID)
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id).Error; err != nil {
		return handleDBError(err, "delete employee")
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Employee, error) {
	// Transactional reads must see the transaction's view, not a cached one
	if tx != nil {
		return r.getByIDFromDB(ctx, tx, id)
	}

	var employee models.Employee
	err := r.cache.CacheOrExecute(ctx, "id:"+id, &employee, cache.EmployeeCacheConfig.TTL, func() (interface{}, error) {
		return r.getByIDFromDB(ctx, r.db, id)
	})
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) getByIDFromDB(ctx context.Context, db *gorm.DB, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get employee by id")
	}
	return &employee, nil
}

// ===== QUERY OPERATIONS =====

func (r *employeeRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.EmployeeFilters) ([]*models.Employee, int64, error) {
	if tx != nil {
		return r.listFromDB(ctx, tx, filters)
	}

	var page cachedEmployeeList
	err := r.cache.CacheOrExecute(ctx, listCacheKey(filters), &page, cache.EmployeeCacheConfig.TTL, func() (interface{}, error) {
		employees, total, err := r.listFromDB(ctx, r.db, filters)
		if err != nil {
			return nil, err
		}
		return &cachedEmployeeList{Employees: employees, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page.Employees, page.Total, nil
}

func (r *employeeRepository) listFromDB(ctx context.Context, db *gorm.DB, filters repositories.EmployeeFilters) ([]*models.Employee, int64, error) {
	var employees []*models.Employee
	var total int64

	query := db.WithContext(ctx).Model(&models.Employee{})
	query = applyEmployeeFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count employees")
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&employees).Error; err != nil {
		return nil, 0, handleDBError(err, "list employees")
	}

	return employees, total, nil
}

// ===== VALIDATION =====

func (r *employeeRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check employee exists")
	}

	return count > 0, nil
}

// ===== HELPER METHODS =====

func (r *employeeRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// listCacheKey folds every filter knob into the key so distinct pages
// never collide. Writes drop the whole list namespace via invalidate.
func listCacheKey(filters repositories.EmployeeFilters) string {
	fullname, skill := "", ""
	if filters.Fullname != nil {
		fullname = *filters.Fullname
	}
	if filters.Skill != nil {
		skill = *filters.Skill
	}
	return fmt.Sprintf("list:%s|%s|%s|%s|%d|%d",
		fullname, skill, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)
}

func (r *employeeRepository) invalidate(ctx context.Context, id string) {
	cache.SafeDelete(ctx, r.cache, "id:"+id)
	cache.SafeInvalidatePattern(ctx, r.cache, "list:*")
}
