package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mssd/mssd-console/internal/model"
)

// BlogService extends the generic blog gateway with the blog-only endpoints:
// slug lookup, category/author catalogs, publish state and admin stats.
type BlogService struct {
	*Resource[model.Blog]
	client *Client
}

// BySlug fetches a published blog by slug.
func (s *BlogService) BySlug(ctx context.Context, slug string) (*model.Blog, error) {
	var out model.Blog
	if err := s.client.doRequest(ctx, "GET", "/blog/slug/"+slug, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get blog by slug %q: %w", slug, err)
	}
	return &out, nil
}

// ByCategory fetches one server-side page of a category.
func (s *BlogService) ByCategory(ctx context.Context, category string, page, size int) (*Page[model.Blog], error) {
	var out Page[model.Blog]
	resp, err := s.client.http.R().SetContext(ctx).SetResult(&out).SetError(&APIError{}).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("size", strconv.Itoa(size)).
		Get("/blog/category/" + category)
	if err != nil {
		return nil, fmt.Errorf("failed to get blogs by category %q: %w", category, err)
	}
	if err := handleResponse(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

// Publish marks the blog as published.
func (s *BlogService) Publish(ctx context.Context, id int64) (*model.Blog, error) {
	return s.setPublishState(ctx, id, "publish")
}

// Unpublish reverts the blog to draft.
func (s *BlogService) Unpublish(ctx context.Context, id int64) (*model.Blog, error) {
	return s.setPublishState(ctx, id, "unpublish")
}

func (s *BlogService) setPublishState(ctx context.Context, id int64, action string) (*model.Blog, error) {
	var out model.Blog
	path := fmt.Sprintf("/blog/%d/%s", id, action)
	if err := s.client.doRequest(ctx, "PUT", path, struct{}{}, &out); err != nil {
		return nil, fmt.Errorf("failed to %s blog %d: %w", action, id, err)
	}
	return &out, nil
}

// ToggleStatus flips the active flag.
func (s *BlogService) ToggleStatus(ctx context.Context, id int64) (*model.Blog, error) {
	var out model.Blog
	path := fmt.Sprintf("/blog/%d/toggle-status", id)
	if err := s.client.doRequest(ctx, "PUT", path, struct{}{}, &out); err != nil {
		return nil, fmt.Errorf("failed to toggle blog %d status: %w", id, err)
	}
	return &out, nil
}

// Stats fetches the admin dashboard counters.
func (s *BlogService) Stats(ctx context.Context) (*model.BlogStats, error) {
	var out model.BlogStats
	if err := s.client.doRequest(ctx, "GET", "/blog/stats", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get blog stats: %w", err)
	}
	return &out, nil
}

// Categories fetches the known category names.
func (s *BlogService) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.client.doRequest(ctx, "GET", "/blog/categories", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get blog categories: %w", err)
	}
	return out, nil
}

// Authors fetches the known author names.
func (s *BlogService) Authors(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.client.doRequest(ctx, "GET", "/blog/authors", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get blog authors: %w", err)
	}
	return out, nil
}

// SlugAvailable checks whether a slug is free, optionally excluding an
// existing record (when editing).
func (s *BlogService) SlugAvailable(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var out struct {
		Available bool `json:"available"`
	}
	req := s.client.http.R().SetContext(ctx).SetResult(&out).SetError(&APIError{}).
		SetQueryParam("slug", slug)
	if excludeID > 0 {
		req.SetQueryParam("excludeId", strconv.FormatInt(excludeID, 10))
	}
	resp, err := req.Get("/blog/slug-available")
	if err != nil {
		return false, fmt.Errorf("failed to check slug availability: %w", err)
	}
	if err := handleResponse(resp); err != nil {
		return false, err
	}
	return out.Available, nil
}
