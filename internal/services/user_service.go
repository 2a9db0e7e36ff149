package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/events"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
	"github.com/tygart-labs/employee-portal-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) UserService {
	return &userService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	s.logger.Info("Creating user mirror", "uid", req.UID)

	// Validate request
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := s.repo.User().ExistsByID(ctx, req.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user exists: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExist
	}

	user := &models.User{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhoneNumber: req.PhoneNumber,
		Disabled:    req.Disabled,
		Role:        req.Role,
		IsAdmin:     req.IsAdmin,
	}
	if len(req.Roles) > 0 {
		if data, merr := json.Marshal(req.Roles); merr == nil {
			user.Roles = data
		}
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publishAccountEvent(ctx, events.AccountCreatedEvent, user)

	s.logger.Info("User mirror created successfully", "uid", user.UID)

	return buildUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, uid string) (*UserResponse, error) {
	user, err := s.repo.User().GetByID(ctx, uid)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return buildUserResponse(user), nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return buildUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, uid string, req *UpdateUserRequest) (*UserResponse, error) {
	s.logger.Info("Updating user mirror", "uid", uid)

	// Validate request
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.repo.User().GetByID(ctx, uid)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Apply updates
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}
	if req.Roles != nil {
		if data, merr := json.Marshal(req.Roles); merr == nil {
			user.Roles = data
		}
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User().Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User mirror updated successfully", "uid", uid)

	return buildUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, uid string) error {
	s.logger.Info("Deleting user mirror", "uid", uid)

	user, err := s.repo.User().GetByID(ctx, uid)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	// Soft delete
	if err := s.repo.User().Delete(ctx, nil, uid); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.publishAccountEvent(ctx, events.AccountDeletedEvent, user)

	s.logger.Info("User mirror deleted successfully", "uid", uid)
	return nil
}

// ===== LIST OPERATIONS =====

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	// Build response
	response := &UserListResponse{
		Users: make([]*UserResponse, len(users)),
		Total: total,
		Page:  (filters.Offset / max(filters.Limit, 1)) + 1,
		Size:  filters.Limit,
	}

	for i, user := range users {
		response.Users[i] = buildUserResponse(user)
	}

	return response, nil
}

// ===== ROLE RESOLUTION =====

func (s *userService) ResolveRoles(ctx context.Context, uid string) ([]string, error) {
	user, err := s.repo.User().GetByID(ctx, uid)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	roles := user.RoleSet()
	if len(roles) == 0 {
		roles = []string{string(models.RoleEmployee)}
	}
	return roles, nil
}

// IsAdmin resolves the admin role from the mirror, first by uid, then
// by email. A missing document or a resolution error is non-admin.
func (s *userService) IsAdmin(ctx context.Context, uid, email string) (bool, error) {
	if uid != "" {
		user, err := s.repo.User().GetByID(ctx, uid)
		if err == nil {
			return user.HasAdminRole(), nil
		}
		if !repositories.IsNotFoundError(err) {
			return false, fmt.Errorf("failed to resolve roles by uid: %w", err)
		}
	}

	if email != "" {
		user, err := s.repo.User().GetByEmail(ctx, email)
		if err == nil {
			return user.HasAdminRole(), nil
		}
		if !repositories.IsNotFoundError(err) {
			return false, fmt.Errorf("failed to resolve roles by email: %w", err)
		}
	}

	return false, nil
}

// ===== HELPER METHODS =====

func buildUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		User:  user,
		Roles: user.RoleSet(),
	}
}

// publishAccountEvent emits an account lifecycle event. Publishing is
// best effort; a broker outage must not fail the mirror write.
func (s *userService) publishAccountEvent(ctx context.Context, eventType string, user *models.User) {
	if s.publisher == nil {
		return
	}

	data := events.AccountEvent{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhoneNumber: user.PhoneNumber,
		Disabled:    user.Disabled,
	}
	if user.CreationTime != nil {
		data.CreationTime = user.CreationTime.Format(time.RFC3339)
	}
	if user.LastSignInTime != nil {
		data.LastSignInTime = user.LastSignInTime.Format(time.RFC3339)
	}

	if err := s.publisher.Publish(ctx, events.Event{Type: eventType, Data: data}); err != nil {
		s.logger.Warn("Failed to publish account event", "event_type", eventType, "uid", user.UID, "error", err)
	}
}
