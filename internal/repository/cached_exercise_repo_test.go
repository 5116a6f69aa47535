package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitstack/fitstack/internal/domain"
)

// memExerciseRepo is an in-memory ListRepository that counts backend hits.
type memExerciseRepo struct {
	byID      map[string]*domain.Exercise
	getCalls  int
	listCalls int
}

func newMemExerciseRepo(exercises ...*domain.Exercise) *memExerciseRepo {
	m := &memExerciseRepo{byID: map[string]*domain.Exercise{}}
	for _, ex := range exercises {
		m.byID[ex.ID] = ex
	}
	return m
}

func (m *memExerciseRepo) Create(_ context.Context, ex *domain.Exercise) error {
	m.byID[ex.ID] = ex
	return nil
}

func (m *memExerciseRepo) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	m.getCalls++
	ex, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ex, nil
}

func (m *memExerciseRepo) List(_ context.Context, _ domain.ListQuery) (*domain.ListResult[domain.Exercise], error) {
	m.listCalls++
	result := &domain.ListResult[domain.Exercise]{}
	for _, ex := range m.byID {
		result.Items = append(result.Items, ex)
	}
	result.Total = int64(len(result.Items))
	return result, nil
}

func (m *memExerciseRepo) Update(_ context.Context, id string, ex *domain.Exercise) (*domain.Exercise, error) {
	ex.ID = id
	m.byID[id] = ex
	return ex, nil
}

func (m *memExerciseRepo) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func (m *memExerciseRepo) Count(_ context.Context, _ string) (int64, error) {
	return int64(len(m.byID)), nil
}

func setupCachedRepo(t *testing.T, exercises ...*domain.Exercise) (*CachedExerciseRepository, *memExerciseRepo, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	mem := newMemExerciseRepo(exercises...)
	return NewCachedExerciseRepository(mem, NewRedisCacheRepository(client)), mem, mr
}

func benchPress() *domain.Exercise {
	ex := &domain.Exercise{Name: "Bench Press", MuscleGroup: "chest"}
	ex.ID = "01HXBENCH"
	return ex
}

func TestCachedGetByIDReadThrough(t *testing.T) {
	repo, mem, _ := setupCachedRepo(t, benchPress())
	ctx := context.Background()

	first, err := repo.GetByID(ctx, "01HXBENCH")
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", first.Name)
	assert.Equal(t, 1, mem.getCalls)

	// Second read is served from Redis.
	second, err := repo.GetByID(ctx, "01HXBENCH")
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, mem.getCalls)
}

func TestCachedListKeyedOnQuery(t *testing.T) {
	repo, mem, _ := setupCachedRepo(t, benchPress())
	ctx := context.Background()

	q := domain.ListQuery{Page: 1, Limit: 10, Sort: "name", Order: domain.OrderAsc}
	_, err := repo.List(ctx, q)
	require.NoError(t, err)
	_, err = repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 1, mem.listCalls)

	// A different page misses the cache.
	q.Page = 2
	_, err = repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, mem.listCalls)
}

func TestCachedWritesInvalidate(t *testing.T) {
	repo, mem, _ := setupCachedRepo(t, benchPress())
	ctx := context.Background()

	q := domain.ListQuery{Page: 1, Limit: 10, Sort: "name", Order: domain.OrderAsc}
	_, err := repo.List(ctx, q)
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, "01HXBENCH")
	require.NoError(t, err)

	squat := &domain.Exercise{Name: "Squat", MuscleGroup: "legs"}
	squat.ID = "01HXSQUAT"
	require.NoError(t, repo.Create(ctx, squat))

	// The list pages were invalidated, the detail entry was not.
	_, err = repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, mem.listCalls)

	_, err = repo.GetByID(ctx, "01HXBENCH")
	require.NoError(t, err)
	assert.Equal(t, 1, mem.getCalls)

	// An update drops the detail entry as well.
	updated := benchPress()
	updated.Name = "Incline Bench Press"
	_, err = repo.Update(ctx, "01HXBENCH", updated)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "01HXBENCH")
	require.NoError(t, err)
	assert.Equal(t, "Incline Bench Press", got.Name)
	assert.Equal(t, 2, mem.getCalls)
}

func TestCachedExpiryFallsBackToBackend(t *testing.T) {
	repo, mem, mr := setupCachedRepo(t, benchPress())
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "01HXBENCH")
	require.NoError(t, err)

	mr.FastForward(11 * time.Minute)

	_, err = repo.GetByID(ctx, "01HXBENCH")
	require.NoError(t, err)
	assert.Equal(t, 2, mem.getCalls)
}
