package ingredientcache

import (
	"context"
	"errors"

	"recipe-radar/entities"
	"recipe-radar/pkg/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoMatch reports that neither the cache nor the external resolver could
// map a description to a product.
var ErrNoMatch = errors.New("no product matches ingredient description")

type (
	CacheService interface {
		Resolve(ctx context.Context, description string) (uuid.UUID, error)
	}

	cacheService struct {
		cacheRepository CacheRepository
		resolver        provider.ProductResolver
		log             *zap.Logger
	}
)

func NewCacheService(cacheRepository CacheRepository, resolver provider.ProductResolver, log *zap.Logger) CacheService {
	return &cacheService{
		cacheRepository: cacheRepository,
		resolver:        resolver,
		log:             log,
	}
}

// Resolve memoizes ingredient resolution: exact-match lookup first, then
// the external resolver, writing the answer back for the next identical
// description. Store failures propagate; a silent miss here would cost a
// redundant resolver call every time.
func (s *cacheService) Resolve(ctx context.Context, description string) (uuid.UUID, error) {
	productID, hit, err := s.cacheRepository.Lookup(ctx, description)
	if err != nil {
		return uuid.Nil, err
	}
	if hit {
		return productID, nil
	}

	productID, found, err := s.resolver.Resolve(ctx, description)
	if err != nil {
		return uuid.Nil, err
	}
	if !found {
		return uuid.Nil, ErrNoMatch
	}

	entry := &entities.IngredientCache{
		ID:          uuid.New(),
		Description: description,
		ProductID:   productID,
	}
	if err := s.cacheRepository.Insert(ctx, entry); err != nil {
		return uuid.Nil, err
	}
	s.log.Debug("ingredient resolved",
		zap.String("description", description),
		zap.String("product_id", productID.String()),
	)
	return productID, nil
}
