package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

// handleDBError is a package-level helper for handling database errors
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// applyEmployeeFilters applies common filters to employee queries
func applyEmployeeFilters(query *gorm.DB, filters repositories.EmployeeFilters) *gorm.DB {
	if filters.Fullname != nil {
		query = query.Where("fullname ILIKE ?", "%"+*filters.Fullname+"%")
	}
	if filters.Skill != nil {
		query = query.Where("skill_names ILIKE ?", "%"+*filters.Skill+"%")
	}
	return query
}

// applyPaginationAndSort applies pagination and sorting with SQL injection protection
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns: map API keys to SQL identifiers
	sortKeyToColumn := map[string]string{
		"fullname":    "fullname",
		"created_at":  "created_at",
		"updated_at":  "updated_at",
		"id":          "id",
		"skill_names": "skill_names",
	}

	column, ok := sortKeyToColumn[sortBy]
	if !ok {
		column = "fullname"
	}

	order := "ASC"
	if sortOrder == "desc" || sortOrder == "DESC" {
		order = "DESC"
	}

	// Use only mapped SQL column name and constant sort order
	query = query.Order(fmt.Sprintf("%s %s", column, order))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
