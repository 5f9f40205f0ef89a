package api

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// UploadedAsset is the backend's reply to a file upload.
type UploadedAsset struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
}

// FileService handles multipart uploads and asset URL resolution.
type FileService struct {
	client *Client
}

// Upload sends one file as multipart form-data and returns the stored asset.
func (s *FileService) Upload(ctx context.Context, filename string, r io.Reader) (*UploadedAsset, error) {
	var out UploadedAsset
	resp, err := s.client.http.R().SetContext(ctx).
		SetFileReader("file", filename, r).
		SetResult(&out).
		SetError(&APIError{}).
		Post("/files/upload")
	if err != nil {
		return nil, fmt.Errorf("failed to upload %q: %w", filename, err)
	}
	if err := handleResponse(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

// Images lists the assets already stored on the backend.
func (s *FileService) Images(ctx context.Context) ([]UploadedAsset, error) {
	var out []UploadedAsset
	if err := s.client.doRequest(ctx, "GET", "/files/images", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return out, nil
}

// ResolveURL normalizes a stored image reference into a displayable URL.
// Absolute URLs and bundled asset paths pass through unchanged; a leading
// "uploads/" prefix is stripped and the remainder is served from the files
// base path. Blank input falls back to the given default.
func (s *FileService) ResolveURL(path, fallback string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return fallback
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "assets/") {
		return path
	}
	path = strings.TrimPrefix(path, "uploads/")
	return strings.TrimSuffix(s.client.filesURL, "/") + "/" + path
}
