package postgres

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

type gridSettingRepository struct {
	db *gorm.DB
}

func NewGridSettingPostgreSQL(db *gorm.DB) repositories.GridSettingRepository {
	return &gridSettingRepository{db: db}
}

func (r *gridSettingRepository) Get(ctx context.Context, userID, gridID string) (*models.GridSetting, error) {
	var setting models.GridSetting
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND grid_id = ?", userID, gridID).
		First(&setting).Error; err != nil {
		return nil, handleDBError(err, "get grid setting")
	}
	return &setting, nil
}

// Save upserts the layout blob. The blob is opaque to the server; no
// shape validation is applied.
func (r *gridSettingRepository) Save(ctx context.Context, userID, gridID string, state datatypes.JSON) error {
	setting := models.GridSetting{
		UserID: userID,
		GridID: gridID,
		State:  state,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "grid_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
		}).
		Create(&setting).Error; err != nil {
		return handleDBError(err, "save grid setting")
	}
	return nil
}
