package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tygart-labs/employee-portal-service/internal/cache"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/repositories"
)

const lookupCacheTTL = 30 * time.Minute

type lookupRepository struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewLookupPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.LookupRepository {
	return &lookupRepository{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, cache.LookupCacheConfig.Prefix),
	}
}

func (r *lookupRepository) ListByCollection(ctx context.Context, collection models.LookupCollection) ([]*models.LookupOption, error) {
	var options []*models.LookupOption
	err := r.cache.CacheOrExecute(ctx, fmt.Sprintf("collection:%s", collection), &options, lookupCacheTTL, func() (interface{}, error) {
		var opts []*models.LookupOption
		if err := r.db.WithContext(ctx).
			Where("collection = ?", string(collection)).
			Order("sort_order ASC, name ASC").
			Find(&opts).Error; err != nil {
			return nil, handleDBError(err, "list lookup options")
		}
		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *lookupRepository) Names(ctx context.Context, collection models.LookupCollection) ([]string, error) {
	options, err := r.ListByCollection(ctx, collection)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(options))
	for _, opt := range options {
		names = append(names, opt.Name)
	}
	return names, nil
}

func (r *lookupRepository) Add(ctx context.Context, tx *gorm.DB, option *models.LookupOption) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(option).Error; err != nil {
		return handleDBError(err, "add lookup option")
	}
	cache.SafeDelete(ctx, r.cache, "collection:"+option.Collection)
	return nil
}

func (r *lookupRepository) Remove(ctx context.Context, tx *gorm.DB, collection models.LookupCollection, name string) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Where("collection = ? AND name = ?", string(collection), name).
		Delete(&models.LookupOption{}).Error; err != nil {
		return handleDBError(err, "remove lookup option")
	}
	cache.SafeDelete(ctx, r.cache, "collection:"+string(collection))
	return nil
}

func (r *lookupRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
