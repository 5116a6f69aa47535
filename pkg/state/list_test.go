package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBackend captures the params of every list call.
type recordingBackend struct {
	fakeBackend
	mu     sync.Mutex
	params []ListParams
}

func (r *recordingBackend) List(ctx context.Context, p ListParams) (Page[workout], error) {
	r.mu.Lock()
	r.params = append(r.params, p)
	r.mu.Unlock()
	return r.fakeBackend.List(ctx, p)
}

func (r *recordingBackend) listCalls() []ListParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ListParams, len(r.params))
	copy(out, r.params)
	return out
}

func TestListControllerMountFetchesFirstPage(t *testing.T) {
	backend := &recordingBackend{}
	s := workoutStore(backend)
	lc := NewListController(s, ListControllerConfig{RowsPerPage: 25})

	require.True(t, lc.Mount(context.Background()).Wait())

	calls := backend.listCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Page)
	assert.Equal(t, 25, calls[0].Limit)
}

func TestListControllerPageChangeConvertsToWirePage(t *testing.T) {
	backend := &recordingBackend{}
	s := workoutStore(backend)
	lc := NewListController(s, ListControllerConfig{RowsPerPage: 10})

	require.True(t, lc.OnPageChange(context.Background(), 2).Wait())

	calls := backend.listCalls()
	require.Len(t, calls, 1)
	// Table page 2 is wire page 3.
	assert.Equal(t, 3, calls[0].Page)
	assert.Equal(t, 2, lc.Page())
}

func TestListControllerRowsPerPageChangeResetsPage(t *testing.T) {
	backend := &recordingBackend{}
	s := workoutStore(backend)
	lc := NewListController(s, ListControllerConfig{RowsPerPage: 10})

	require.True(t, lc.OnPageChange(context.Background(), 3).Wait())
	require.True(t, lc.OnRowsPerPageChange(context.Background(), 50).Wait())

	assert.Equal(t, 0, lc.Page())
	assert.Equal(t, 50, lc.RowsPerPage())

	calls := backend.listCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 1, calls[1].Page)
	assert.Equal(t, 50, calls[1].Limit)
}

func TestListControllerSortRefetchesWithToggledState(t *testing.T) {
	backend := &recordingBackend{}
	s := workoutStore(backend) // date desc by default
	lc := NewListController(s, ListControllerConfig{})

	require.True(t, lc.OnSort(context.Background(), "name").Wait())

	calls := backend.listCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "name", calls[0].Sort)
	assert.Equal(t, OrderAsc, calls[0].Order)

	require.True(t, lc.OnSort(context.Background(), "name").Wait())
	calls = backend.listCalls()
	assert.Equal(t, OrderDesc, calls[1].Order)
}

func TestListControllerSearchDebounce(t *testing.T) {
	backend := &recordingBackend{}
	s := workoutStore(backend)
	lc := NewListController(s, ListControllerConfig{SearchDebounce: 20 * time.Millisecond})

	// Three quick keystrokes, only the final text should reach the network.
	lc.OnSearchInput(context.Background(), "b")
	lc.OnSearchInput(context.Background(), "be")
	lc.OnSearchInput(context.Background(), "bench")

	assert.Empty(t, backend.listCalls())

	assert.Eventually(t, func() bool {
		calls := backend.listCalls()
		return len(calls) == 1 && calls[0].Search == "bench"
	}, time.Second, 5*time.Millisecond)
}

func TestListControllerFlushSearchSkipsDebounce(t *testing.T) {
	backend := &recordingBackend{}
	s := workoutStore(backend)
	lc := NewListController(s, ListControllerConfig{SearchDebounce: time.Hour})

	lc.OnSearchInput(context.Background(), "squat")
	require.True(t, lc.FlushSearch(context.Background()).Wait())

	calls := backend.listCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "squat", calls[0].Search)
	assert.Equal(t, 1, calls[0].Page)
}

func TestListControllerDeleteDeclined(t *testing.T) {
	deleted := false
	backend := &recordingBackend{
		fakeBackend: fakeBackend{
			delete: func(context.Context, string) error {
				deleted = true
				return nil
			},
		},
	}
	s := workoutStore(backend)
	lc := NewListController(s, ListControllerConfig{
		Confirm: func(string) bool { return false },
	})

	env := lc.OnDelete(context.Background(), "1")
	assert.Nil(t, env)
	assert.False(t, deleted)
}

func TestListControllerDeleteRefetches(t *testing.T) {
	backend := &recordingBackend{}
	s := workoutStore(backend)
	lc := NewListController(s, ListControllerConfig{})

	env := lc.OnDelete(context.Background(), "1")
	require.NotNil(t, env)
	require.True(t, env.Wait())

	// The refetch after a successful delete keeps totals and pagination
	// honest when the deleted row was the last on its page.
	assert.Eventually(t, func() bool {
		return len(backend.listCalls()) == 1
	}, time.Second, 5*time.Millisecond)
}
