package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fitstack/fitstack/pkg/state"
)

// Resource speaks the standard CRUD surface for one resource path and
// satisfies state.Backend, so stores can be wired straight to it.
type Resource[T any] struct {
	c *Client
	// path is the collection path under the base URL, e.g. "/workouts".
	path string
	// plural keys the item array inside the list envelope,
	// e.g. "workouts" in {"data": {"workouts": [...], "total": 3}}.
	plural string
	// singular names the resource in fallback error messages.
	singular string
}

// NewResource builds the CRUD adapter for one resource.
func NewResource[T any](c *Client, path, plural, singular string) *Resource[T] {
	return &Resource[T]{c: c, path: path, plural: plural, singular: singular}
}

// List fetches one page. The envelope keys items by the resource's plural
// name, so the array is located by key rather than by position.
func (r *Resource[T]) List(ctx context.Context, p state.ListParams) (state.Page[T], error) {
	var wire struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	op := "fetch " + r.plural
	if err := r.c.do(ctx, http.MethodGet, r.path, listQuery(p), nil, &wire, op); err != nil {
		return state.Page[T]{}, err
	}

	var page state.Page[T]
	if raw, ok := wire.Data[r.plural]; ok {
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return state.Page[T]{}, fmt.Errorf("decode %s: %w", r.plural, err)
		}
	}
	if raw, ok := wire.Data["total"]; ok {
		if err := json.Unmarshal(raw, &page.Total); err != nil {
			return state.Page[T]{}, fmt.Errorf("decode %s total: %w", r.plural, err)
		}
	}
	return page, nil
}

// Get fetches one item by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var wire struct {
		Data T `json:"data"`
	}
	op := "fetch " + r.singular
	err := r.c.do(ctx, http.MethodGet, r.path+"/"+id, nil, nil, &wire, op)
	return wire.Data, err
}

// Create posts a new item and returns the server's echo with assigned id
// and timestamps.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var wire struct {
		Data T `json:"data"`
	}
	op := "create " + r.singular
	err := r.c.do(ctx, http.MethodPost, r.path, nil, item, &wire, op)
	return wire.Data, err
}

// Update puts changed fields for one item and returns the updated copy.
func (r *Resource[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var wire struct {
		Data T `json:"data"`
	}
	op := "update " + r.singular
	err := r.c.do(ctx, http.MethodPut, r.path+"/"+id, nil, item, &wire, op)
	return wire.Data, err
}

// Delete removes one item.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+id, nil, nil, nil, "delete "+r.singular)
}

var _ state.Backend[struct{}] = (*Resource[struct{}])(nil)
