package services

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/events"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

// accountMirrorService keeps the local account mirror in step with
// account lifecycle events from the identity provider.
type accountMirrorService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewAccountMirrorService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) AccountMirrorService {
	return &accountMirrorService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// HandleAccountCreated merge-upserts the mirror document for a new
// account. Mirror maintenance must never fail the signup path, so any
// error is logged and swallowed.
func (s *accountMirrorService) HandleAccountCreated(ctx context.Context, account events.AccountEvent) error {
	s.logger.Info("Mirroring created account", "uid", account.UID)

	user := &models.User{
		UID:            account.UID,
		Email:          account.Email,
		DisplayName:    account.DisplayName,
		PhoneNumber:    account.PhoneNumber,
		Disabled:       account.Disabled,
		CreationTime:   parseProviderTime(account.CreationTime),
		LastSignInTime: parseProviderTime(account.LastSignInTime),
	}

	if err := s.repo.User().Upsert(ctx, nil, user); err != nil {
		s.logger.Error("Failed to mirror created account", "uid", account.UID, "error", err)
		return nil
	}

	s.logger.Info("Account mirrored", "uid", account.UID)
	return nil
}

// HandleAccountDeleted removes the mirror document. Deletion is best
// effort; a missing document or a storage error only gets logged.
func (s *accountMirrorService) HandleAccountDeleted(ctx context.Context, account events.AccountEvent) error {
	s.logger.Info("Removing mirrored account", "uid", account.UID)

	if err := s.repo.User().Delete(ctx, nil, account.UID); err != nil {
		if repositories.IsNotFoundError(err) {
			s.logger.Info("Mirrored account already absent", "uid", account.UID)
			return nil
		}
		s.logger.Warn("Failed to remove mirrored account", "uid", account.UID, "error", err)
		return nil
	}

	s.logger.Info("Mirrored account removed", "uid", account.UID)
	return nil
}

// parseProviderTime parses a provider timestamp. Providers are not
// consistent about the exact layout, so a few are tried.
func parseProviderTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.RFC1123, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
