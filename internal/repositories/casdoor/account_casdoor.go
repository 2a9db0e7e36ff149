package casdoor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/redis/go-redis/v9"

	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// AccountCasdoor reads the account directory from Casdoor. Pages are
// cached briefly since the admin roster view re-requests them often.
type AccountCasdoor struct {
	client *casdoorsdk.Client
	redis  *redis.Client
	config CasdoorConfig

	cachePrefix string
	cacheTTL    time.Duration
}

func NewAccountCasdoor(config CasdoorConfig, redisClient *redis.Client) repositories.DirectoryRepository {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &AccountCasdoor{
		client:      client,
		redis:       redisClient,
		config:      config,
		cachePrefix: "directory:",
		cacheTTL:    5 * time.Minute,
	}
}

// ===== CONVERSION =====

func (a *AccountCasdoor) convertCasdoorUserToAccount(casdoorUser *casdoorsdk.User) repositories.AccountInfo {
	account := repositories.AccountInfo{
		UID:         casdoorUser.Id,
		Email:       casdoorUser.Email,
		DisplayName: casdoorUser.DisplayName,
		PhoneNumber: casdoorUser.Phone,
		Disabled:    casdoorUser.IsForbidden || casdoorUser.IsDeleted,
	}
	account.Metadata = repositories.AccountMetadata{
		CreationTime:   casdoorUser.CreatedTime,
		LastSignInTime: casdoorUser.LastSigninTime,
	}
	return account
}

// ===== DIRECTORY OPERATIONS =====

// ListPage returns one page of directory accounts. page is 1-based.
func (a *AccountCasdoor) ListPage(ctx context.Context, page, pageSize int) ([]repositories.AccountInfo, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}

	casdoorUsers, total, err := a.client.GetPaginationUsers(page, pageSize, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts from Casdoor: %w", err)
	}

	accounts := make([]repositories.AccountInfo, 0, len(casdoorUsers))
	for _, casdoorUser := range casdoorUsers {
		if casdoorUser == nil {
			continue
		}
		accounts = append(accounts, a.convertCasdoorUserToAccount(casdoorUser))
	}

	return accounts, total, nil
}

// GetByID retrieves a single directory account.
func (a *AccountCasdoor) GetByID(ctx context.Context, uid string) (*repositories.AccountInfo, error) {
	cacheKey := fmt.Sprintf("%sid:%s", a.cachePrefix, uid)
	if cached := a.getAccountFromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	casdoorUser, err := a.client.GetUserByUserId(uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get account from Casdoor: %w", err)
	}
	if casdoorUser == nil {
		return nil, fmt.Errorf("account not found with uid %s", uid)
	}

	account := a.convertCasdoorUserToAccount(casdoorUser)
	a.setAccountCache(ctx, cacheKey, &account)

	return &account, nil
}

// ===== CACHE METHODS =====

func (a *AccountCasdoor) getAccountFromCache(ctx context.Context, cacheKey string) *repositories.AccountInfo {
	if a.redis == nil {
		return nil
	}

	data, err := a.redis.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil
	}

	var account repositories.AccountInfo
	if err := json.Unmarshal([]byte(data), &account); err != nil {
		return nil
	}
	return &account
}

func (a *AccountCasdoor) setAccountCache(ctx context.Context, cacheKey string, account *repositories.AccountInfo) {
	if a.redis == nil {
		return
	}

	data, err := json.Marshal(account)
	if err != nil {
		return
	}
	a.redis.Set(ctx, cacheKey, data, a.cacheTTL)
}
