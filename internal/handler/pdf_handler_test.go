package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sebbi-server/internal/domain"
)

func uploadPDF(t *testing.T, router http.Handler, email, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if email != "" {
		if err := writer.WriteField("email", email); err != nil {
			t.Fatalf("Failed to write email field: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("Failed to write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pdf/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestPDFHandler_Upload(t *testing.T) {
	env := newTestEnv()

	rr := uploadPDF(t, env.router, "alice@example.com", "paper.pdf", []byte("%PDF-1.4"))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var record domain.PdfRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &record); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if record.Link == "" {
		t.Error("Expected record to carry a storage link")
	}
}

func TestPDFHandler_Upload_MissingEmail(t *testing.T) {
	env := newTestEnv()

	rr := uploadPDF(t, env.router, "", "paper.pdf", []byte("%PDF-1.4"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestPDFHandler_Upload_MissingFile(t *testing.T) {
	env := newTestEnv()

	rr := uploadPDF(t, env.router, "alice@example.com", "", nil)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestPDFHandler_GetAndDelete(t *testing.T) {
	env := newTestEnv()
	_, _ = env.pdfs.Upload(nil, []byte("%PDF-1.4"), "paper.pdf", "application/pdf", "alice@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pdf/1?email=alice@example.com", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// Someone else's record maps to 404 on pdf routes
	req = httptest.NewRequest(http.MethodGet, "/api/v1/pdf/1?email=bob@example.com", nil)
	other := httptest.NewRecorder()
	env.router.ServeHTTP(other, req)
	if other.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", other.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/pdf/1?email=alice@example.com", nil)
	del := httptest.NewRecorder()
	env.router.ServeHTTP(del, req)
	if del.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", del.Code)
	}
}

func TestPDFHandler_List_Empty(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pdf/user?email=alice@example.com", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("Expected empty array body, got %s", rr.Body.String())
	}
}

func TestPDFHandler_Ask(t *testing.T) {
	env := newTestEnv()

	rr := doJSON(t, env.router, http.MethodPost, "/api/v1/pdf/ask", map[string]string{
		"pdf_url": "https://example.com/paper.pdf",
		"prompt":  "what does it say?",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"response":"pdf answer"`) {
		t.Errorf("Unexpected response body: %s", rr.Body.String())
	}
}

func TestPDFHandler_CiteAPA(t *testing.T) {
	env := newTestEnv()

	rr := doJSON(t, env.router, http.MethodPost, "/api/v1/pdf/cite-apa", map[string]string{
		"pdf_url": "https://example.com/paper.pdf",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "apa_citation") {
		t.Errorf("Unexpected response body: %s", rr.Body.String())
	}
}
