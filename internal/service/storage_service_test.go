package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSupabaseStorage_Upload(t *testing.T) {
	var gotPath, gotAuth, gotUpsert string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	storage := NewStorageService(server.URL, "test-key", "pdfs")
	err := storage.Upload(context.Background(), "alice_example/paper.pdf", strings.NewReader("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotPath != "/storage/v1/object/pdfs/alice_example/paper.pdf" {
		t.Errorf("Unexpected upload path: %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got '%s'", gotAuth)
	}
	if gotUpsert != "true" {
		t.Errorf("Expected upsert header, got '%s'", gotUpsert)
	}
}

func TestSupabaseStorage_Upload_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	storage := NewStorageService(server.URL, "test-key", "pdfs")
	err := storage.Upload(context.Background(), "p", strings.NewReader("x"), "application/pdf")
	if err == nil {
		t.Fatal("Expected error for rejected upload")
	}
}

func TestSupabaseStorage_PublicURL(t *testing.T) {
	storage := NewStorageService("http://localhost:54321", "test-key", "pdfs")

	url := storage.PublicURL("alice_example/paper.pdf")
	expected := "http://localhost:54321/storage/v1/object/public/pdfs/alice_example/paper.pdf"
	if url != expected {
		t.Errorf("Expected '%s', got '%s'", expected, url)
	}
}

func TestSupabaseStorage_Remove(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	storage := NewStorageService(server.URL, "test-key", "pdfs")
	if err := storage.Remove(context.Background(), "alice_example/paper.pdf"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotMethod != http.MethodDelete {
		t.Errorf("Expected DELETE, got %s", gotMethod)
	}
	if gotPath != "/storage/v1/object/pdfs/alice_example/paper.pdf" {
		t.Errorf("Unexpected delete path: %s", gotPath)
	}
}
