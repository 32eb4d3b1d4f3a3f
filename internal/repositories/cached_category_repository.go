package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	categoryKeyPrefix     = "category:"
	categoryListKeyPrefix = "categories:"
)

// cachedCategoryRepository is a read-through Redis cache in front of the
// category table. Categories are immutable, so entries only expire by TTL.
// Any Redis failure falls through to the wrapped repository.
type cachedCategoryRepository struct {
	next   CategoryRepositoryInterface
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCategoryRepository wraps next with a Redis cache. A nil client
// disables caching.
func NewCachedCategoryRepository(next CategoryRepositoryInterface, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) CategoryRepositoryInterface {
	if client == nil {
		return next
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cachedCategoryRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *cachedCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	key := categoryKey(id)

	var category models.Category
	if r.load(ctx, key, &category) {
		return &category, nil
	}

	found, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, found)
	return found, nil
}

func (r *cachedCategoryRepository) List(ctx context.Context, categoryType string) ([]models.Category, error) {
	key := categoryListKey(categoryType)

	var categories []models.Category
	if r.load(ctx, key, &categories) {
		return categories, nil
	}

	found, err := r.next.List(ctx, categoryType)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, found)
	return found, nil
}

func (r *cachedCategoryRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}

// CreateBatch writes through and drops the cached lists.
func (r *cachedCategoryRepository) CreateBatch(ctx context.Context, categories []models.Category) error {
	if err := r.next.CreateBatch(ctx, categories); err != nil {
		return err
	}

	keys := []string{categoryListKey(""), categoryListKey(models.TransactionTypeIncome), categoryListKey(models.TransactionTypeExpense)}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("failed to invalidate category cache", "error", err)
	}
	return nil
}

func (r *cachedCategoryRepository) load(ctx context.Context, key string, dest any) bool {
	cached, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("category cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		r.logger.Warn("discarding malformed category cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (r *cachedCategoryRepository) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.SetEx(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("category cache write failed", "key", key, "error", err)
	}
}

func categoryKey(id uuid.UUID) string {
	return categoryKeyPrefix + id.String()
}

func categoryListKey(categoryType string) string {
	if categoryType == "" {
		return categoryListKeyPrefix + "all"
	}
	return fmt.Sprintf("%s%s", categoryListKeyPrefix, categoryType)
}
