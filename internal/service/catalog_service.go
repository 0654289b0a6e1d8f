package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/pkg/util"
)

const catalogCacheKey = "catalog:all"

// CatalogService serves the read-only product listing, grouped by domain
// with the grouping key dropped from the payload. Results are cached in
// Redis; an unavailable cache degrades to store reads.
type CatalogService struct {
	products repository.ProductRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCatalogService builds the service. A nil cache client disables caching.
func NewCatalogService(products repository.ProductRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ListAll returns every domain's product list.
func (s *CatalogService) ListAll(ctx context.Context) ([][]domain.Product, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, catalogCacheKey).Bytes(); err == nil {
			var groups [][]domain.Product
			if err := json.Unmarshal(raw, &groups); err == nil {
				return groups, nil
			}
		}
	}

	groups, err := s.products.ListGroupedByDomain(ctx)
	if err != nil {
		return nil, util.NewPersistenceError(err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(groups); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}
	return groups, nil
}
