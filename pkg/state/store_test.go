package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workout struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// fakeBackend lets each test script the backend per operation.
type fakeBackend struct {
	list   func(context.Context, ListParams) (Page[workout], error)
	get    func(context.Context, string) (workout, error)
	create func(context.Context, workout) (workout, error)
	update func(context.Context, string, workout) (workout, error)
	delete func(context.Context, string) error
}

func (f *fakeBackend) List(ctx context.Context, p ListParams) (Page[workout], error) {
	if f.list == nil {
		return Page[workout]{}, nil
	}
	return f.list(ctx, p)
}

func (f *fakeBackend) Get(ctx context.Context, id string) (workout, error) {
	if f.get == nil {
		return workout{}, nil
	}
	return f.get(ctx, id)
}

func (f *fakeBackend) Create(ctx context.Context, w workout) (workout, error) {
	if f.create == nil {
		return w, nil
	}
	return f.create(ctx, w)
}

func (f *fakeBackend) Update(ctx context.Context, id string, w workout) (workout, error) {
	if f.update == nil {
		return w, nil
	}
	return f.update(ctx, id, w)
}

func (f *fakeBackend) Delete(ctx context.Context, id string) error {
	if f.delete == nil {
		return nil
	}
	return f.delete(ctx, id)
}

func workoutStore(b Backend[workout]) *Store[workout] {
	return NewStore(Config[workout]{
		Resource:     "workout",
		ID:           func(w workout) string { return w.ID },
		DefaultSort:  "date",
		DefaultOrder: OrderDesc,
		Limit:        10,
	}, b)
}

func TestNewStoreInitialState(t *testing.T) {
	s := workoutStore(&fakeBackend{})
	snap := s.Snapshot()

	assert.Empty(t, snap.Items)
	assert.Nil(t, snap.Current)
	assert.Zero(t, snap.Total)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 10, snap.Limit)
	assert.Equal(t, "date", snap.Sort)
	assert.Equal(t, OrderDesc, snap.Order)
}

func TestFetchListSuccess(t *testing.T) {
	backend := &fakeBackend{
		list: func(_ context.Context, p ListParams) (Page[workout], error) {
			assert.Equal(t, 1, p.Page)
			assert.Equal(t, 10, p.Limit)
			assert.Equal(t, "date", p.Sort)
			assert.Equal(t, OrderDesc, p.Order)
			return Page[workout]{
				Items: []workout{{ID: "1", Title: "Morning Run"}},
				Total: 1,
			}, nil
		},
	}
	s := workoutStore(backend)

	env := s.FetchList(context.Background())
	require.True(t, env.Wait())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
	assert.Equal(t, []workout{{ID: "1", Title: "Morning Run"}}, snap.Items)
	assert.Equal(t, int64(1), snap.Total)
}

func TestFetchListFailureKeepsLoadedItems(t *testing.T) {
	fail := false
	backend := &fakeBackend{
		list: func(context.Context, ListParams) (Page[workout], error) {
			if fail {
				return Page[workout]{}, errors.New("Failed to fetch workouts")
			}
			return Page[workout]{
				Items: []workout{{ID: "1", Title: "Morning Run"}},
				Total: 1,
			}, nil
		},
	}
	s := workoutStore(backend)

	require.True(t, s.FetchList(context.Background()).Wait())

	fail = true
	env := s.FetchList(context.Background())
	require.False(t, env.Wait())
	assert.Equal(t, StatusRejected, env.Status())
	assert.Equal(t, "Failed to fetch workouts", env.Reason())

	// The table keeps showing the last good page under the error banner.
	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "Failed to fetch workouts", snap.Err)
	assert.Equal(t, []workout{{ID: "1", Title: "Morning Run"}}, snap.Items)
	assert.Equal(t, int64(1), snap.Total)
}

func TestPendingClearsPreviousError(t *testing.T) {
	gate := make(chan struct{})
	fail := true
	backend := &fakeBackend{
		list: func(context.Context, ListParams) (Page[workout], error) {
			if fail {
				return Page[workout]{}, errors.New("boom")
			}
			<-gate
			return Page[workout]{}, nil
		},
	}
	s := workoutStore(backend)

	require.False(t, s.FetchList(context.Background()).Wait())
	require.Equal(t, "boom", s.Snapshot().Err)

	fail = false
	env := s.FetchList(context.Background())

	// While the new request is in flight the stale error is already gone.
	snap := s.Snapshot()
	assert.True(t, snap.Loading)
	assert.Empty(t, snap.Err)

	close(gate)
	require.True(t, env.Wait())
}

func TestCreateAppendsAndIncrementsTotal(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, ListParams) (Page[workout], error) {
			return Page[workout]{Items: []workout{{ID: "1", Title: "Bench"}}, Total: 1}, nil
		},
		create: func(_ context.Context, w workout) (workout, error) {
			w.ID = "2"
			return w, nil
		},
	}
	s := workoutStore(backend)
	require.True(t, s.FetchList(context.Background()).Wait())

	env := s.Create(context.Background(), workout{Title: "Squat"})
	require.True(t, env.Wait())

	snap := s.Snapshot()
	assert.Equal(t, []workout{{ID: "1", Title: "Bench"}, {ID: "2", Title: "Squat"}}, snap.Items)
	assert.Equal(t, int64(2), snap.Total)
}

func TestCreateFailureLeavesItemsUntouched(t *testing.T) {
	backend := &fakeBackend{
		create: func(context.Context, workout) (workout, error) {
			return workout{}, errors.New("a workout with this title already exists")
		},
	}
	s := workoutStore(backend)

	env := s.Create(context.Background(), workout{Title: "Squat"})
	require.False(t, env.Wait())

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.Total)
	assert.Equal(t, "a workout with this title already exists", snap.Err)
}

func TestUpdateReplacesMatchingRow(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, ListParams) (Page[workout], error) {
			return Page[workout]{
				Items: []workout{{ID: "1", Title: "Bench"}, {ID: "2", Title: "Squat"}},
				Total: 2,
			}, nil
		},
		update: func(_ context.Context, id string, w workout) (workout, error) {
			w.ID = id
			return w, nil
		},
	}
	s := workoutStore(backend)
	require.True(t, s.FetchList(context.Background()).Wait())

	require.True(t, s.Update(context.Background(), "2", workout{Title: "Front Squat"}).Wait())

	snap := s.Snapshot()
	assert.Equal(t, []workout{{ID: "1", Title: "Bench"}, {ID: "2", Title: "Front Squat"}}, snap.Items)
	assert.Equal(t, int64(2), snap.Total)
}

func TestUpdateOffPageItemLeavesItemsUntouched(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, ListParams) (Page[workout], error) {
			return Page[workout]{Items: []workout{{ID: "1", Title: "Bench"}}, Total: 5}, nil
		},
		update: func(_ context.Context, id string, w workout) (workout, error) {
			w.ID = id
			return w, nil
		},
	}
	s := workoutStore(backend)
	require.True(t, s.FetchList(context.Background()).Wait())

	require.True(t, s.Update(context.Background(), "99", workout{Title: "Elsewhere"}).Wait())

	snap := s.Snapshot()
	assert.Equal(t, []workout{{ID: "1", Title: "Bench"}}, snap.Items)
}

func TestDeleteRemovesRowAndDecrementsTotal(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, ListParams) (Page[workout], error) {
			return Page[workout]{
				Items: []workout{{ID: "1", Title: "Bench"}, {ID: "2", Title: "Squat"}},
				Total: 2,
			}, nil
		},
	}
	s := workoutStore(backend)
	require.True(t, s.FetchList(context.Background()).Wait())

	require.True(t, s.Delete(context.Background(), "1").Wait())

	snap := s.Snapshot()
	assert.Equal(t, []workout{{ID: "2", Title: "Squat"}}, snap.Items)
	assert.Equal(t, int64(1), snap.Total)
}

func TestFetchByIDSuccessSetsCurrent(t *testing.T) {
	backend := &fakeBackend{
		get: func(_ context.Context, id string) (workout, error) {
			return workout{ID: id, Title: "Bench"}, nil
		},
	}
	s := workoutStore(backend)

	require.True(t, s.FetchByID(context.Background(), "1").Wait())

	snap := s.Snapshot()
	require.NotNil(t, snap.Current)
	assert.Equal(t, workout{ID: "1", Title: "Bench"}, *snap.Current)
}

func TestFetchByIDFailureKeepsCurrent(t *testing.T) {
	fail := false
	backend := &fakeBackend{
		get: func(_ context.Context, id string) (workout, error) {
			if fail {
				return workout{}, errors.New("workout not found")
			}
			return workout{ID: id, Title: "Bench"}, nil
		},
	}
	s := workoutStore(backend)
	require.True(t, s.FetchByID(context.Background(), "1").Wait())

	fail = true
	require.False(t, s.FetchByID(context.Background(), "2").Wait())

	snap := s.Snapshot()
	require.NotNil(t, snap.Current)
	assert.Equal(t, "1", snap.Current.ID)
	assert.Equal(t, "workout not found", snap.Err)
}

func TestResetCurrent(t *testing.T) {
	backend := &fakeBackend{
		get: func(_ context.Context, id string) (workout, error) {
			return workout{ID: id}, nil
		},
	}
	s := workoutStore(backend)
	require.True(t, s.FetchByID(context.Background(), "1").Wait())
	require.NotNil(t, s.Snapshot().Current)

	s.ResetCurrent()
	assert.Nil(t, s.Snapshot().Current)
}

func TestUpdateSortTogglePolicy(t *testing.T) {
	tests := []struct {
		name      string
		sort      string
		order     string
		field     string
		wantSort  string
		wantOrder string
	}{
		{"new field resets to ascending", "date", OrderDesc, "name", "name", OrderAsc},
		{"same field flips asc to desc", "name", OrderAsc, "name", "name", OrderDesc},
		{"same field flips desc to asc", "name", OrderDesc, "name", "name", OrderAsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(Config[workout]{
				Resource:     "workout",
				ID:           func(w workout) string { return w.ID },
				DefaultSort:  tt.sort,
				DefaultOrder: tt.order,
			}, &fakeBackend{})

			s.UpdateSort(tt.field)

			snap := s.Snapshot()
			assert.Equal(t, tt.wantSort, snap.Sort)
			assert.Equal(t, tt.wantOrder, snap.Order)
		})
	}
}

func TestStaleListSettlementDropped(t *testing.T) {
	release := map[int]chan Page[workout]{
		1: make(chan Page[workout], 1),
		2: make(chan Page[workout], 1),
	}
	backend := &fakeBackend{
		list: func(_ context.Context, p ListParams) (Page[workout], error) {
			return <-release[p.Page], nil
		},
	}
	s := workoutStore(backend)

	first := s.FetchList(context.Background())
	s.SetPage(2)
	second := s.FetchList(context.Background())

	// The newer request resolves first; the older one arrives late and
	// must not overwrite it.
	release[2] <- Page[workout]{Items: []workout{{ID: "2", Title: "Page Two"}}, Total: 12}
	require.True(t, second.Wait())

	release[1] <- Page[workout]{Items: []workout{{ID: "1", Title: "Page One"}}, Total: 12}
	require.True(t, first.Wait())

	snap := s.Snapshot()
	assert.Equal(t, []workout{{ID: "2", Title: "Page Two"}}, snap.Items)
	assert.False(t, snap.Loading)
}

type expiredSessionError struct{}

func (expiredSessionError) Error() string        { return "session expired" }
func (expiredSessionError) SessionExpired() bool { return true }

func TestSessionExpiryNotShownAsStoreError(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, ListParams) (Page[workout], error) {
			return Page[workout]{
				Items: []workout{{ID: "1", Title: "Morning Run"}},
				Total: 1,
			}, nil
		},
	}
	s := workoutStore(backend)
	require.True(t, s.FetchList(context.Background()).Wait())

	backend.list = func(context.Context, ListParams) (Page[workout], error) {
		return Page[workout]{}, expiredSessionError{}
	}
	backend.get = func(context.Context, string) (workout, error) {
		return workout{}, expiredSessionError{}
	}

	// The envelope still rejects so callers can observe the failure, but
	// the session-expired signal never lands in the store's error field.
	env := s.FetchList(context.Background())
	require.False(t, env.Wait())
	assert.Equal(t, "session expired", env.Reason())

	snap := s.Snapshot()
	assert.Empty(t, snap.Err)
	assert.False(t, snap.Loading)
	assert.Equal(t, []workout{{ID: "1", Title: "Morning Run"}}, snap.Items)

	require.False(t, s.FetchByID(context.Background(), "1").Wait())
	assert.Empty(t, s.Snapshot().Err)
}

func TestSubscribeNotifiesAndUnsubscribes(t *testing.T) {
	s := workoutStore(&fakeBackend{})

	calls := 0
	unsub := s.Subscribe(func() { calls++ })

	s.UpdateSearch("bench")
	assert.Equal(t, 1, calls)

	unsub()
	s.UpdateSearch("squat")
	assert.Equal(t, 1, calls)
}
