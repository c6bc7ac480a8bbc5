package ingredientcache

import (
	"context"
	"errors"

	"recipe-radar/domain"
	"recipe-radar/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CacheRepository interface {
		Lookup(ctx context.Context, description string) (uuid.UUID, bool, error)
		Insert(ctx context.Context, entry *entities.IngredientCache) error
	}

	cacheRepository struct {
		db *gorm.DB
	}
)

func NewCacheRepository(db *gorm.DB) CacheRepository {
	return &cacheRepository{db: db}
}

// Lookup is an exact, case-sensitive match. Duplicate descriptions can
// exist; the oldest row wins so repeated lookups stay deterministic.
func (r *cacheRepository) Lookup(ctx context.Context, description string) (uuid.UUID, bool, error) {
	var entry entities.IngredientCache
	err := r.db.WithContext(ctx).
		Where("description = ?", description).
		Order("created_at asc, id asc").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, domain.NewStoreError("cache lookup", err)
	}
	return entry.ProductID, true, nil
}

// Insert is a plain insert with no conflict clause: concurrent resolutions
// of the same description accumulate as separate rows.
func (r *cacheRepository) Insert(ctx context.Context, entry *entities.IngredientCache) error {
	return domain.NewStoreError("cache insert", r.db.WithContext(ctx).Create(entry).Error)
}
