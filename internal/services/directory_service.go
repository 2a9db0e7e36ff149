package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

// directoryPageSize is the provider page size used when stitching the
// full account listing together.
const directoryPageSize = 1000

type directoryService struct {
	repo   repositories.Repository
	users  UserService
	logger *slog.Logger
}

func NewDirectoryService(repo repositories.Repository, users UserService, logger *slog.Logger) DirectoryService {
	return &directoryService{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// ListAccounts returns every account the identity provider knows about.
// Only admins may call it; an unauthenticated caller is rejected before
// any role lookup.
func (s *directoryService) ListAccounts(ctx context.Context, caller Caller) (*AccountListResponse, error) {
	if err := s.requireAdmin(ctx, caller, "list"); err != nil {
		return nil, err
	}

	accounts, err := s.listAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	return &AccountListResponse{
		Accounts: accounts,
		Total:    len(accounts),
	}, nil
}

func (s *directoryService) GetAccount(ctx context.Context, caller Caller, uid string) (*repositories.AccountInfo, error) {
	if err := s.requireAdmin(ctx, caller, "read"); err != nil {
		return nil, err
	}

	account, err := s.repo.Directory().GetByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get directory account: %w", err)
	}
	return account, nil
}

// listAllAccounts pages through the provider and concatenates the
// pages. Paging stops when the reported total is reached or a page
// comes back empty.
func (s *directoryService) listAllAccounts(ctx context.Context) ([]repositories.AccountInfo, error) {
	var accounts []repositories.AccountInfo

	for page := 1; ; page++ {
		batch, total, err := s.repo.Directory().ListPage(ctx, page, directoryPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list directory page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}

		accounts = append(accounts, batch...)
		if total > 0 && len(accounts) >= total {
			break
		}
	}

	s.logger.Info("Directory listing assembled", "account_count", len(accounts))

	return accounts, nil
}

func (s *directoryService) requireAdmin(ctx context.Context, caller Caller, action string) error {
	if caller.UID == "" {
		return ErrUnauthenticated
	}

	// The middleware already resolved the token-claim admin path; only
	// unresolved callers fall back to the mirror, by uid then email.
	if caller.Admin {
		return nil
	}

	// Any resolution failure is treated as non-admin
	isAdmin, err := s.users.IsAdmin(ctx, caller.UID, caller.Email)
	if err != nil {
		s.logger.Warn("Role resolution failed for directory access", "uid", caller.UID, "error", err)
		isAdmin = false
	}
	if !isAdmin {
		return NewPermissionError(caller.UID, "directory", action, "admin role required")
	}
	return nil
}
