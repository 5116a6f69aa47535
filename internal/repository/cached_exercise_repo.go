package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fitstack/fitstack/internal/domain"
)

const (
	exerciseByIDKeyPrefix = "exercise:id:"
	exerciseListKeyPrefix = "exercise:list:"
	exerciseCacheTTL      = 10 * time.Minute
)

// CachedExerciseRepository wraps the exercise collection with Redis caching.
// The exercise library is global and read-heavy: every list page, every
// workout form and every plan form reads it, while writes are admin-only.
type CachedExerciseRepository struct {
	mongo domain.ListRepository[domain.Exercise]
	cache *RedisCacheRepository
}

// NewCachedExerciseRepository creates a new cached exercise repository
func NewCachedExerciseRepository(mongo domain.ListRepository[domain.Exercise], cache *RedisCacheRepository) *CachedExerciseRepository {
	return &CachedExerciseRepository{
		mongo: mongo,
		cache: cache,
	}
}

// GetByID retrieves an exercise by ID with read-through caching
func (r *CachedExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	key := exerciseByIDKeyPrefix + id

	var ex domain.Exercise
	if err := r.cache.Get(ctx, key, &ex); err == nil {
		return &ex, nil
	}

	result, err := r.mongo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Store in cache (ignore cache errors)
	_ = r.cache.Set(ctx, key, result, exerciseCacheTTL)

	return result, nil
}

// List retrieves one page with read-through caching keyed on the query.
func (r *CachedExerciseRepository) List(ctx context.Context, q domain.ListQuery) (*domain.ListResult[domain.Exercise], error) {
	key := fmt.Sprintf("%sp%d:l%d:s%s:%s:%s:q%s",
		exerciseListKeyPrefix, q.Page, q.Limit, q.Sort, q.Order, q.Owner, q.Search)

	var cached domain.ListResult[domain.Exercise]
	if err := r.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	result, err := r.mongo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, key, result, exerciseCacheTTL)

	return result, nil
}

// Create inserts and invalidates list pages
func (r *CachedExerciseRepository) Create(ctx context.Context, ex *domain.Exercise) error {
	if err := r.mongo.Create(ctx, ex); err != nil {
		return err
	}
	_ = r.cache.DeleteByPattern(ctx, exerciseListKeyPrefix+"*")
	return nil
}

// Update replaces and invalidates both the detail and list caches
func (r *CachedExerciseRepository) Update(ctx context.Context, id string, ex *domain.Exercise) (*domain.Exercise, error) {
	updated, err := r.mongo.Update(ctx, id, ex)
	if err != nil {
		return nil, err
	}
	_ = r.cache.Delete(ctx, exerciseByIDKeyPrefix+id)
	_ = r.cache.DeleteByPattern(ctx, exerciseListKeyPrefix+"*")
	return updated, nil
}

// Delete removes and invalidates both the detail and list caches
func (r *CachedExerciseRepository) Delete(ctx context.Context, id string) error {
	if err := r.mongo.Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, exerciseByIDKeyPrefix+id)
	_ = r.cache.DeleteByPattern(ctx, exerciseListKeyPrefix+"*")
	return nil
}

// Count passes through (no caching)
func (r *CachedExerciseRepository) Count(ctx context.Context, owner string) (int64, error) {
	return r.mongo.Count(ctx, owner)
}
