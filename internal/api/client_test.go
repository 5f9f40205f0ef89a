package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mssd/mssd-console/internal/model"
	"github.com/mssd/mssd-console/pkg/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.API.BaseURL = srv.URL + "/api"
	cfg.API.Retries = 0
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("Should reject nil configuration", func(t *testing.T) {
		_, err := NewClient(nil)
		require.Error(t, err)
	})

	t.Run("Should reject a relative base URL", func(t *testing.T) {
		cfg := config.Default()
		cfg.API.BaseURL = "localhost:8080/api"
		_, err := NewClient(cfg)
		require.Error(t, err)
	})

	t.Run("Should reject unsupported schemes", func(t *testing.T) {
		cfg := config.Default()
		cfg.API.BaseURL = "ftp://example.com/api"
		_, err := NewClient(cfg)
		require.Error(t, err)
	})
}

func TestResource_CRUD(t *testing.T) {
	t.Run("Should list a collection", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/themes", r.URL.Path)
			require.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]model.Theme{{ID: 1, Name: "Cloud"}, {ID: 2, Name: "Security"}})
		}))
		themes, err := client.Themes().List(context.Background())
		require.NoError(t, err)
		require.Len(t, themes, 2)
		assert.Equal(t, "Cloud", themes[0].Name)
	})

	t.Run("Should fetch one record by id", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/themes/5", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(model.Theme{ID: 5, Name: "DevOps"})
		}))
		theme, err := client.Themes().Get(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "DevOps", theme.Name)
	})

	t.Run("Should round-trip a created record", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			var in model.Theme
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			in.ID = 42
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(in)
		}))
		created, err := client.Themes().Create(context.Background(), model.Theme{Name: "Agile"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		assert.Equal(t, "Agile", created.Name)
	})

	t.Run("Should delete by id", func(t *testing.T) {
		var gotPath string
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}))
		require.NoError(t, client.Themes().Delete(context.Background(), 9))
		assert.Equal(t, "DELETE /api/themes/9", gotPath)
	})

	t.Run("Should decode the server page envelope", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/blog/page", r.URL.Path)
			require.Equal(t, "1", r.URL.Query().Get("page"))
			require.Equal(t, "10", r.URL.Query().Get("size"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(Page[model.Blog]{
				Content:       []model.Blog{{ID: 11, Title: "On prem to cloud"}},
				TotalElements: 21,
				TotalPages:    3,
				Size:          10,
				Number:        1,
			})
		}))
		page, err := client.Blogs().Page(context.Background(), PageParams{Page: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 21, page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Content, 1)
	})

	t.Run("Should route keyword pages to the search endpoint", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/blog/search", r.URL.Path)
			require.Equal(t, "cloud", r.URL.Query().Get("keyword"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(Page[model.Blog]{TotalPages: 1})
		}))
		_, err := client.Blogs().Page(context.Background(), PageParams{Size: 10, Keyword: "cloud"})
		require.NoError(t, err)
	})
}

func TestErrorHandling(t *testing.T) {
	t.Run("Should decode the backend error payload", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(APIError{Code: "BLOG_NOT_FOUND", Message: "no such blog"})
		}))
		_, err := client.Blogs().Get(context.Background(), 99)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "no such blog")
	})

	t.Run("Should classify validation rejections", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(APIError{Message: "title is required"})
		}))
		_, err := client.Themes().Create(context.Background(), model.Theme{})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.False(t, IsNotFound(err))
	})

	t.Run("Should surface non-JSON error bodies", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		}))
		_, err := client.Themes().List(context.Background())
		require.Error(t, err)
	})
}

func TestRetryCondition(t *testing.T) {
	t.Run("Should retry on transport errors", func(t *testing.T) {
		assert.True(t, retryCondition(nil, io.ErrUnexpectedEOF))
	})

	t.Run("Should not retry without response or error", func(t *testing.T) {
		assert.False(t, retryCondition(nil, nil))
	})
}

func TestBlogService(t *testing.T) {
	t.Run("Should fetch stats", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/blog/stats", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(model.BlogStats{Total: 7, Active: 5, Inactive: 2})
		}))
		stats, err := client.Blogs().Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, stats.Total)
	})

	t.Run("Should publish through the publish endpoint", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/blog/3/publish", r.URL.Path)
			require.Equal(t, http.MethodPut, r.Method)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(model.Blog{ID: 3, Published: true})
		}))
		blog, err := client.Blogs().Publish(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, blog.Published)
	})

	t.Run("Should check slug availability with exclusion", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "intro-devops", r.URL.Query().Get("slug"))
			require.Equal(t, "5", r.URL.Query().Get("excludeId"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]bool{"available": true})
		}))
		ok, err := client.Blogs().SlugAvailable(context.Background(), "intro-devops", 5)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
