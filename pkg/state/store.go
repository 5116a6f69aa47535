package state

import (
	"context"
	"errors"
	"sync"
)

// Sort order values mirror the server's query contract.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams are the pagination and filter parameters sent with a list fetch.
// Page is 1-indexed on the wire.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Sort   string
	Order  string
}

// Page is one page of a listed resource.
type Page[T any] struct {
	Items []T
	Total int64
}

// Backend performs the actual network calls for one resource. The HTTP
// implementation lives in pkg/client; tests substitute fakes.
type Backend[T any] interface {
	List(ctx context.Context, p ListParams) (Page[T], error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Config describes one resource to a Store.
type Config[T any] struct {
	// Resource is the singular human-readable name, used in fallback
	// error messages ("failed to update workout").
	Resource string
	// ID extracts the server identifier from an item.
	ID func(T) string
	// DefaultSort and DefaultOrder seed the sort state.
	DefaultSort  string
	DefaultOrder string
	// Limit is the default page size. Zero means 10.
	Limit int
}

// Snapshot is a consistent copy of store state handed to subscribers.
type Snapshot[T any] struct {
	Items   []T
	Current *T
	Total   int64
	Loading bool
	Err     string

	Page   int
	Limit  int
	Search string
	Sort   string
	Order  string
}

type opKind int

const (
	opList opKind = iota
	opGet
	opCreate
	opUpdate
	opDelete
	opCount
)

// Store holds the canonical client-side state for one resource: the current
// page of items, the item selected for detail or edit, the total matching
// count, plus loading and error flags shared across all operations on the
// resource.
//
// Each dispatch records a per-kind sequence number; a settlement whose
// sequence is no longer the latest for its kind is dropped, so responses
// arriving out of order cannot clobber newer state.
type Store[T any] struct {
	cfg     Config[T]
	backend Backend[T]

	mu      sync.Mutex
	items   []T
	current *T
	total   int64
	loading bool
	err     string

	page   int
	limit  int
	search string
	sort   string
	order  string

	seq  [opCount]uint64
	subs map[int]func()
	next int
}

// NewStore builds a store in its initial state: empty items, no current
// item, zero total, not loading, no error.
func NewStore[T any](cfg Config[T], backend Backend[T]) *Store[T] {
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.DefaultOrder == "" {
		cfg.DefaultOrder = OrderAsc
	}
	return &Store[T]{
		cfg:     cfg,
		backend: backend,
		page:    1,
		limit:   cfg.Limit,
		sort:    cfg.DefaultSort,
		order:   cfg.DefaultOrder,
		subs:    map[int]func(){},
	}
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription.
func (s *Store[T]) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store[T]) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Snapshot returns a copy of the current state.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	var current *T
	if s.current != nil {
		c := *s.current
		current = &c
	}
	return Snapshot[T]{
		Items:   items,
		Current: current,
		Total:   s.total,
		Loading: s.loading,
		Err:     s.err,
		Page:    s.page,
		Limit:   s.limit,
		Search:  s.search,
		Sort:    s.sort,
		Order:   s.order,
	}
}

// SetPage sets the 1-indexed page for the next list fetch.
func (s *Store[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	s.notify()
}

// SetLimit sets the page size for the next list fetch.
func (s *Store[T]) SetLimit(limit int) {
	if limit < 1 {
		limit = s.cfg.Limit
	}
	s.mu.Lock()
	s.limit = limit
	s.mu.Unlock()
	s.notify()
}

// UpdateSort applies the sort toggle policy: selecting the current sort
// field flips the order, selecting a new field switches to it ascending.
func (s *Store[T]) UpdateSort(field string) {
	s.mu.Lock()
	if s.sort == field {
		if s.order == OrderAsc {
			s.order = OrderDesc
		} else {
			s.order = OrderAsc
		}
	} else {
		s.sort = field
		s.order = OrderAsc
	}
	s.mu.Unlock()
	s.notify()
}

// UpdateSearch replaces the search text. Callers debounce before fetching.
func (s *Store[T]) UpdateSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
	s.notify()
}

// ResetCurrent clears the selected item, typically after a form closes.
func (s *Store[T]) ResetCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify()
}

// begin marks an operation pending: loading is raised for list fetches and
// any previous error is cleared. It returns the sequence number the
// settlement must present to be applied.
func (s *Store[T]) begin(kind opKind) uint64 {
	s.mu.Lock()
	s.seq[kind]++
	seq := s.seq[kind]
	if kind == opList {
		s.loading = true
	}
	s.err = ""
	s.mu.Unlock()
	s.notify()
	return seq
}

// settle applies an operation outcome unless a newer dispatch of the same
// kind has superseded it. apply runs under the lock on success only.
func (s *Store[T]) settle(kind opKind, seq uint64, err error, apply func()) {
	s.mu.Lock()
	if s.seq[kind] != seq {
		s.mu.Unlock()
		return
	}
	if kind == opList {
		s.loading = false
	}
	if err != nil {
		// A session-expired failure is handled globally by the client's
		// unauthorized hook; showing it per resource as well would stack a
		// redundant error under the login redirect.
		if !sessionExpired(err) {
			s.err = err.Error()
		}
	} else if apply != nil {
		apply()
	}
	s.mu.Unlock()
	s.notify()
}

func sessionExpired(err error) bool {
	var se interface{ SessionExpired() bool }
	return errors.As(err, &se) && se.SessionExpired()
}

// FetchList loads the page described by the store's current pagination,
// search, and sort state. A failed fetch keeps the previously loaded items
// and total so the table does not blank out under the error banner.
func (s *Store[T]) FetchList(ctx context.Context) *Envelope {
	seq := s.begin(opList)
	s.mu.Lock()
	p := ListParams{Page: s.page, Limit: s.limit, Search: s.search, Sort: s.sort, Order: s.order}
	s.mu.Unlock()

	env := newEnvelope()
	go func() {
		page, err := s.backend.List(ctx, p)
		s.settle(opList, seq, err, func() {
			s.items = page.Items
			s.total = page.Total
		})
		if err != nil {
			env.reject(err.Error())
			return
		}
		env.fulfill()
	}()
	return env
}

// FetchByID loads one item into Current. On failure the previously loaded
// current item is left in place; only the error flag changes.
func (s *Store[T]) FetchByID(ctx context.Context, id string) *Envelope {
	seq := s.begin(opGet)

	env := newEnvelope()
	go func() {
		item, err := s.backend.Get(ctx, id)
		s.settle(opGet, seq, err, func() {
			s.current = &item
		})
		if err != nil {
			env.reject(err.Error())
			return
		}
		env.fulfill()
	}()
	return env
}

// Create sends a new item. On success the server's echo (with assigned id
// and timestamps) is appended to Items and Total is incremented, so the new
// row appears without a refetch.
func (s *Store[T]) Create(ctx context.Context, item T) *Envelope {
	seq := s.begin(opCreate)

	env := newEnvelope()
	go func() {
		created, err := s.backend.Create(ctx, item)
		s.settle(opCreate, seq, err, func() {
			s.items = append(s.items, created)
			s.total++
		})
		if err != nil {
			env.reject(err.Error())
			return
		}
		env.fulfill()
	}()
	return env
}

// Update sends changed fields for one item. On success the matching row in
// Items is replaced in place; an item not on the current page leaves Items
// untouched.
func (s *Store[T]) Update(ctx context.Context, id string, item T) *Envelope {
	seq := s.begin(opUpdate)

	env := newEnvelope()
	go func() {
		updated, err := s.backend.Update(ctx, id, item)
		s.settle(opUpdate, seq, err, func() {
			for i := range s.items {
				if s.cfg.ID(s.items[i]) == id {
					s.items[i] = updated
					break
				}
			}
			if s.current != nil && s.cfg.ID(*s.current) == id {
				s.current = &updated
			}
		})
		if err != nil {
			env.reject(err.Error())
			return
		}
		env.fulfill()
	}()
	return env
}

// Delete removes one item. On success the matching row is dropped from
// Items and Total is decremented.
func (s *Store[T]) Delete(ctx context.Context, id string) *Envelope {
	seq := s.begin(opDelete)

	env := newEnvelope()
	go func() {
		err := s.backend.Delete(ctx, id)
		s.settle(opDelete, seq, err, func() {
			for i := range s.items {
				if s.cfg.ID(s.items[i]) == id {
					s.items = append(s.items[:i], s.items[i+1:]...)
					break
				}
			}
			if s.total > 0 {
				s.total--
			}
			if s.current != nil && s.cfg.ID(*s.current) == id {
				s.current = nil
			}
		})
		if err != nil {
			env.reject(err.Error())
			return
		}
		env.fulfill()
	}()
	return env
}
