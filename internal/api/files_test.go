package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_Upload(t *testing.T) {
	t.Run("Should send multipart form-data and decode the asset", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/files/upload", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			body, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "logo.png", header.Filename)
			assert.Equal(t, "png-bytes", string(body))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(UploadedAsset{
				Filename: "1725000000-logo.png",
				Path:     "uploads/1725000000-logo.png",
				URL:      "/api/files/1725000000-logo.png",
			})
		}))
		asset, err := client.Files().Upload(context.Background(), "logo.png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "1725000000-logo.png", asset.Filename)
	})

	t.Run("Should fail the upload on server error", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(APIError{Message: "disk full"})
		}))
		_, err := client.Files().Upload(context.Background(), "logo.png", strings.NewReader("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestFileService_ResolveURL(t *testing.T) {
	client := testClient(t, http.NewServeMux())
	files := client.Files()
	files.client.filesURL = "http://localhost:8080/api/files"

	t.Run("Should pass absolute URLs through", func(t *testing.T) {
		url := "https://img.example.com/pic.jpg"
		assert.Equal(t, url, files.ResolveURL(url, "assets/img/default.jpg"))
	})

	t.Run("Should pass bundled asset paths through", func(t *testing.T) {
		assert.Equal(t, "assets/img/blog/blog-1.jpg", files.ResolveURL("assets/img/blog/blog-1.jpg", ""))
	})

	t.Run("Should strip the uploads prefix and serve from the files base", func(t *testing.T) {
		got := files.ResolveURL("uploads/pic.jpg", "")
		assert.Equal(t, "http://localhost:8080/api/files/pic.jpg", got)
	})

	t.Run("Should serve bare filenames from the files base", func(t *testing.T) {
		got := files.ResolveURL("pic.jpg", "")
		assert.Equal(t, "http://localhost:8080/api/files/pic.jpg", got)
	})

	t.Run("Should fall back on blank input", func(t *testing.T) {
		assert.Equal(t, "assets/img/default.jpg", files.ResolveURL("  ", "assets/img/default.jpg"))
	})
}
