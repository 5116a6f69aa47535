package domain

import (
	"context"
	"strings"
	"time"
)

// Model is the base embedded by every stored resource. IDs are ULIDs stored
// as string _id so creation order is preserved in the default index.
type Model struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (m *Model) EntityID() string      { return m.ID }
func (m *Model) SetEntityID(id string) { m.ID = id }

// StampTimes sets the audit timestamps. created is true on insert.
func (m *Model) StampTimes(now time.Time, created bool) {
	if created {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// Entity is implemented (via *Model) by every stored resource.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
	StampTimes(now time.Time, created bool)
}

// Sort order directions at the wire boundary.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListQuery carries pagination, search and sort parameters for a list fetch.
// Page is 1-indexed at this boundary.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Sort   string
	Order  string
	Owner  string // user id for owner-scoped resources, empty for global ones
}

// Normalize clamps the query against per-resource defaults so repositories
// never see a zero page, an unbounded limit, or an unknown sort field.
func (q ListQuery) Normalize(defaults ListDefaults) ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaults.Limit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if q.Sort == "" || !defaults.sortAllowed(q.Sort) {
		q.Sort = defaults.Sort
		q.Order = defaults.Order
	}
	if q.Order != OrderAsc && q.Order != OrderDesc {
		q.Order = defaults.Order
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

const maxPageLimit = 100

// ListDefaults describes a resource's list behavior: which fields are
// searchable, which are sortable, and the documented default ordering.
type ListDefaults struct {
	Sort         string
	Order        string
	Limit        int
	SearchFields []string
	SortFields   []string
}

func (d ListDefaults) sortAllowed(field string) bool {
	for _, f := range d.SortFields {
		if f == field {
			return true
		}
	}
	return false
}

// ListResult is one page of resources plus the server-side total matching
// the query. Total is independent of len(Items).
type ListResult[T any] struct {
	Items []*T
	Total int64
}

// ListRepository is the storage contract the generic handler and the
// dashboard fan-out consume.
type ListRepository[T any] interface {
	Create(ctx context.Context, e *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, q ListQuery) (*ListResult[T], error)
	Update(ctx context.Context, id string, e *T) (*T, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, owner string) (int64, error)
}
