package state

import (
	"context"
	"sync"
	"time"
)

// DefaultSearchDebounce is how long search input must be quiet before a
// fetch fires.
const DefaultSearchDebounce = 400 * time.Millisecond

// ListControllerConfig tunes one list view.
type ListControllerConfig struct {
	// RowsPerPage is the initial page size. Zero uses the store default.
	RowsPerPage int
	// SearchDebounce overrides DefaultSearchDebounce when positive.
	SearchDebounce time.Duration
	// Confirm is asked before a delete proceeds. Nil means always proceed.
	Confirm func(id string) bool
}

// ListController drives a paginated, searchable, sortable table over one
// store. Its page index is 0-based as table widgets expect; the wire page is
// 1-based, converted at fetch time.
type ListController[T any] struct {
	store *Store[T]
	cfg   ListControllerConfig

	mu    sync.Mutex
	page  int
	rows  int
	timer *time.Timer
}

// NewListController builds a controller over store. Mount must be called to
// load the first page.
func NewListController[T any](store *Store[T], cfg ListControllerConfig) *ListController[T] {
	if cfg.RowsPerPage <= 0 {
		cfg.RowsPerPage = store.cfg.Limit
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = DefaultSearchDebounce
	}
	return &ListController[T]{store: store, cfg: cfg, rows: cfg.RowsPerPage}
}

// Page returns the current 0-based page index.
func (lc *ListController[T]) Page() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.page
}

// RowsPerPage returns the current page size.
func (lc *ListController[T]) RowsPerPage() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.rows
}

func (lc *ListController[T]) refetch(ctx context.Context) *Envelope {
	lc.mu.Lock()
	page, rows := lc.page, lc.rows
	lc.mu.Unlock()
	lc.store.SetPage(page + 1)
	lc.store.SetLimit(rows)
	return lc.store.FetchList(ctx)
}

// Mount loads the first page.
func (lc *ListController[T]) Mount(ctx context.Context) *Envelope {
	return lc.refetch(ctx)
}

// OnPageChange moves to a 0-based page and refetches.
func (lc *ListController[T]) OnPageChange(ctx context.Context, page int) *Envelope {
	if page < 0 {
		page = 0
	}
	lc.mu.Lock()
	lc.page = page
	lc.mu.Unlock()
	return lc.refetch(ctx)
}

// OnRowsPerPageChange resizes the page, resets to the first page, and
// refetches.
func (lc *ListController[T]) OnRowsPerPageChange(ctx context.Context, rows int) *Envelope {
	if rows < 1 {
		rows = lc.cfg.RowsPerPage
	}
	lc.mu.Lock()
	lc.rows = rows
	lc.page = 0
	lc.mu.Unlock()
	return lc.refetch(ctx)
}

// OnSort applies the store's sort toggle for field, resets to the first
// page, and refetches with the post-toggle sort state.
func (lc *ListController[T]) OnSort(ctx context.Context, field string) *Envelope {
	lc.store.UpdateSort(field)
	lc.mu.Lock()
	lc.page = 0
	lc.mu.Unlock()
	return lc.refetch(ctx)
}

// OnSearchInput records the search text immediately and schedules a fetch
// once input has been quiet for the debounce window. Each keystroke resets
// the timer, so only the final text hits the network.
func (lc *ListController[T]) OnSearchInput(ctx context.Context, text string) {
	lc.store.UpdateSearch(text)
	lc.mu.Lock()
	lc.page = 0
	if lc.timer != nil {
		lc.timer.Stop()
	}
	lc.timer = time.AfterFunc(lc.cfg.SearchDebounce, func() {
		lc.refetch(ctx)
	})
	lc.mu.Unlock()
}

// FlushSearch cancels any pending debounce and fetches immediately, used
// when the user submits the search field.
func (lc *ListController[T]) FlushSearch(ctx context.Context) *Envelope {
	lc.mu.Lock()
	if lc.timer != nil {
		lc.timer.Stop()
		lc.timer = nil
	}
	lc.mu.Unlock()
	return lc.refetch(ctx)
}

// OnDelete confirms, deletes, and refetches the current page so totals and
// pagination stay correct. The returned envelope tracks the delete itself;
// it is nil when the confirmation declined.
func (lc *ListController[T]) OnDelete(ctx context.Context, id string) *Envelope {
	if lc.cfg.Confirm != nil && !lc.cfg.Confirm(id) {
		return nil
	}
	env := lc.store.Delete(ctx, id)
	go func() {
		if env.Wait() {
			lc.refetch(ctx)
		}
	}()
	return env
}
