package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SupabaseStorage implements domain.ObjectStorage against the Supabase
// storage REST API.
type SupabaseStorage struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

func NewStorageService(
	baseURL string,
	apiKey string,
	bucket string,
) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    baseURL,
		apiKey:     apiKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload stores an object with upsert semantics: re-uploading an existing
// path overwrites it.
func (s *SupabaseStorage) Upload(
	ctx context.Context,
	path string,
	data io.Reader,
	contentType string,
) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.objectURL(path),
		data,
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage upload failed: status %d", resp.StatusCode)
	}
	return nil
}

// PublicURL returns the public URL for an object at path.
func (s *SupabaseStorage) PublicURL(path string) string {
	return s.baseURL + "/storage/v1/object/public/" + s.bucket + "/" + path
}

// Remove deletes the object at path.
func (s *SupabaseStorage) Remove(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodDelete,
		s.objectURL(path),
		nil,
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage delete failed: status %d", resp.StatusCode)
	}
	return nil
}

func (s *SupabaseStorage) objectURL(path string) string {
	return s.baseURL + "/storage/v1/object/" + s.bucket + "/" + path
}
