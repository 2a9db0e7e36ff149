package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

// adminMirror returns a user repo lookup that resolves every uid to an
// admin mirror document.
func adminMirror(ctx context.Context, uid string) (*models.User, error) {
	return &models.User{UID: uid, IsAdmin: true}, nil
}

func newDirectoryFixture(repo *mockRepository) DirectoryService {
	users := NewUserService(repo, nil, newTestLogger(), newTestValidator(), nil)
	return NewDirectoryService(repo, users, newTestLogger())
}

func TestNewDirectoryService(t *testing.T) {
	if svc := newDirectoryFixture(newMockRepository()); svc == nil {
		t.Fatal("NewDirectoryService returned nil")
	}
}

func TestDirectoryServiceListAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("stitches provider pages", func(t *testing.T) {
		const total = 2500
		repo := newMockRepository()
		repo.users.getByIDFn = adminMirror
		repo.directory.listPageFn = func(ctx context.Context, page, pageSize int) ([]repositories.AccountInfo, int, error) {
			start := (page - 1) * pageSize
			if start >= total {
				return nil, total, nil
			}
			end := start + pageSize
			if end > total {
				end = total
			}
			batch := make([]repositories.AccountInfo, 0, end-start)
			for i := start; i < end; i++ {
				batch = append(batch, repositories.AccountInfo{UID: fmt.Sprintf("u%04d", i)})
			}
			return batch, total, nil
		}
		svc := newDirectoryFixture(repo)

		resp, err := svc.ListAccounts(ctx, Caller{UID: "admin-uid"})
		if err != nil {
			t.Fatalf("ListAccounts failed: %v", err)
		}
		if resp.Total != total || len(resp.Accounts) != total {
			t.Fatalf("Total = %d, len = %d, want %d", resp.Total, len(resp.Accounts), total)
		}
		if resp.Accounts[0].UID != "u0000" || resp.Accounts[total-1].UID != "u2499" {
			t.Errorf("page order broken: first %q last %q", resp.Accounts[0].UID, resp.Accounts[total-1].UID)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		repo := newMockRepository()
		repo.users.getByIDFn = adminMirror
		svc := newDirectoryFixture(repo)

		resp, err := svc.ListAccounts(ctx, Caller{UID: "admin-uid"})
		if err != nil {
			t.Fatalf("ListAccounts failed: %v", err)
		}
		if resp.Total != 0 || len(resp.Accounts) != 0 {
			t.Errorf("resp = %+v, want empty", resp)
		}
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		svc := newDirectoryFixture(newMockRepository())
		if _, err := svc.ListAccounts(ctx, Caller{}); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("err = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("claim-resolved admin needs no mirror document", func(t *testing.T) {
		repo := newMockRepository()
		var lookedUp bool
		repo.users.getByIDFn = func(ctx context.Context, uid string) (*models.User, error) {
			lookedUp = true
			return nil, errors.New("mirror must not be consulted")
		}
		svc := newDirectoryFixture(repo)

		resp, err := svc.ListAccounts(ctx, Caller{UID: "admin-uid", Admin: true})
		if err != nil {
			t.Fatalf("ListAccounts failed: %v", err)
		}
		if lookedUp {
			t.Error("mirror was consulted despite the resolved admin bit")
		}
		if resp.Total != 0 {
			t.Errorf("Total = %d", resp.Total)
		}
	})

	t.Run("admin by email fallback", func(t *testing.T) {
		repo := newMockRepository()
		repo.users.getByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, IsAdmin: true}, nil
		}
		svc := newDirectoryFixture(repo)

		if _, err := svc.ListAccounts(ctx, Caller{UID: "u1", Email: "jane@example.com"}); err != nil {
			t.Errorf("ListAccounts failed for email-resolved admin: %v", err)
		}
	})

	t.Run("non-admin caller", func(t *testing.T) {
		repo := newMockRepository()
		repo.users.getByIDFn = func(ctx context.Context, uid string) (*models.User, error) {
			return &models.User{UID: uid, Role: "employee"}, nil
		}
		svc := newDirectoryFixture(repo)

		_, err := svc.ListAccounts(ctx, Caller{UID: "user-uid"})
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Fatalf("err = %v, want PermissionError", err)
		}
		if permErr.Action != "list" {
			t.Errorf("Action = %q, want list", permErr.Action)
		}
	})

	t.Run("role resolution failure is non-admin", func(t *testing.T) {
		repo := newMockRepository()
		repo.users.getByIDFn = func(ctx context.Context, uid string) (*models.User, error) {
			return nil, errors.New("connection refused")
		}
		svc := newDirectoryFixture(repo)

		_, err := svc.ListAccounts(ctx, Caller{UID: "user-uid"})
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Errorf("err = %v, want PermissionError", err)
		}
	})

	t.Run("provider error surfaces", func(t *testing.T) {
		repo := newMockRepository()
		repo.users.getByIDFn = adminMirror
		repo.directory.listPageFn = func(ctx context.Context, page, pageSize int) ([]repositories.AccountInfo, int, error) {
			return nil, 0, errors.New("provider unavailable")
		}
		svc := newDirectoryFixture(repo)

		if _, err := svc.ListAccounts(ctx, Caller{UID: "admin-uid"}); err == nil {
			t.Error("expected provider error")
		}
	})
}

func TestDirectoryServiceGetAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("admin reads an account", func(t *testing.T) {
		repo := newMockRepository()
		repo.users.getByIDFn = adminMirror
		repo.directory.getByIDFn = func(ctx context.Context, uid string) (*repositories.AccountInfo, error) {
			return &repositories.AccountInfo{UID: uid, Email: "jane@example.com"}, nil
		}
		svc := newDirectoryFixture(repo)

		account, err := svc.GetAccount(ctx, Caller{UID: "admin-uid"}, "u1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if account.UID != "u1" || account.Email != "jane@example.com" {
			t.Errorf("account = %+v", account)
		}
	})

	t.Run("non-admin caller", func(t *testing.T) {
		svc := newDirectoryFixture(newMockRepository())
		_, err := svc.GetAccount(ctx, Caller{UID: "user-uid"}, "u1")
		var permErr *PermissionError
		if !errors.As(err, &permErr) {
			t.Errorf("err = %v, want PermissionError", err)
		}
	})
}
