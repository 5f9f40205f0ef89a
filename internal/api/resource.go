package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mssd/mssd-console/internal/model"
)

// Page is the server-side pagination envelope. Number is zero-based, as the
// backend sends it.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

// Resource is the gateway for one REST collection.
type Resource[T model.Entity] struct {
	client *Client
	path   string
}

func newResource[T model.Entity](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// Path returns the collection path relative to the API base URL.
func (r *Resource[T]) Path() string { return r.path }

// List fetches the full collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.doRequest(ctx, "GET", r.path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.path, err)
	}
	return out, nil
}

// PageParams carries server-side pagination and search parameters.
// Page is zero-based to match the backend envelope.
type PageParams struct {
	Page    int
	Size    int
	Keyword string
}

// Page fetches one server-side page of the collection.
func (r *Resource[T]) Page(ctx context.Context, params PageParams) (*Page[T], error) {
	var out Page[T]
	req := r.client.http.R().SetContext(ctx).SetResult(&out).SetError(&APIError{}).
		SetQueryParam("page", strconv.Itoa(params.Page)).
		SetQueryParam("size", strconv.Itoa(params.Size))
	path := r.path + "/page"
	if params.Keyword != "" {
		req.SetQueryParam("keyword", params.Keyword)
		path = r.path + "/search"
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to page %s: %w", r.path, err)
	}
	if err := handleResponse(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single record by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.client.doRequest(ctx, "GET", fmt.Sprintf("%s/%d", r.path, id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get %s/%d: %w", r.path, id, err)
	}
	return &out, nil
}

// Create persists a new record and returns the server's copy.
func (r *Resource[T]) Create(ctx context.Context, in T) (*T, error) {
	var out T
	if err := r.client.doRequest(ctx, "POST", r.path, in, &out); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", r.path, err)
	}
	return &out, nil
}

// Update overwrites the record with the given id and returns the server's copy.
func (r *Resource[T]) Update(ctx context.Context, id int64, in T) (*T, error) {
	var out T
	if err := r.client.doRequest(ctx, "PUT", fmt.Sprintf("%s/%d", r.path, id), in, &out); err != nil {
		return nil, fmt.Errorf("failed to update %s/%d: %w", r.path, id, err)
	}
	return &out, nil
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.client.doRequest(ctx, "DELETE", fmt.Sprintf("%s/%d", r.path, id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s/%d: %w", r.path, id, err)
	}
	return nil
}
