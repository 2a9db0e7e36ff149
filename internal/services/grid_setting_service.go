package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/repositories"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

type gridSettingService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGridSettingService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) GridSettingService {
	return &gridSettingService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *gridSettingService) Get(ctx context.Context, userID, gridID string) (*GridSettingResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	setting, err := s.repo.GridSetting().Get(ctx, userID, gridID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrGridSettingNotFound
		}
		return nil, fmt.Errorf("failed to get grid setting: %w", err)
	}

	return &GridSettingResponse{
		GridID: setting.GridID,
		State:  json.RawMessage(setting.State),
	}, nil
}

// Save stores the layout blob as-is. The state is opaque to the
// server; only well-formed JSON is required.
func (s *gridSettingService) Save(ctx context.Context, userID, gridID string, req *SaveGridSettingRequest) (*GridSettingResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	// Validate request
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !json.Valid(req.State) {
		return nil, NewBusinessRuleError("state", "Grid state must be valid JSON.")
	}

	if err := s.repo.GridSetting().Save(ctx, userID, gridID, datatypes.JSON(req.State)); err != nil {
		return nil, fmt.Errorf("failed to save grid setting: %w", err)
	}

	s.logger.Info("Grid setting saved", "user_id", userID, "grid_id", gridID)

	return &GridSettingResponse{
		GridID: gridID,
		State:  req.State,
	}, nil
}
