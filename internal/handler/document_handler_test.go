package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"
)

// Mock services for handler tests
type MockAuthService struct {
	users map[string]string // email -> password
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{users: make(map[string]string)}
}

func (m *MockAuthService) Register(name, email, password string) (*domain.User, error) {
	if _, exists := m.users[email]; exists {
		return nil, apperrors.AlreadyExists("email is already registered")
	}
	m.users[email] = password
	return &domain.User{ID: int64(len(m.users)), Name: name, Email: email}, nil
}

func (m *MockAuthService) Authenticate(email, password string) (*domain.Session, error) {
	if stored, exists := m.users[email]; !exists || stored != password {
		return nil, apperrors.InvalidCredentials("invalid credentials")
	}
	return &domain.Session{
		AccessToken: "test-token",
		TokenType:   "bearer",
		User:        &domain.User{Email: email},
	}, nil
}

type MockDocumentService struct {
	docs   map[int64]*domain.Document
	owners map[int64]string // document ID -> owner email
	nextID int64
}

func NewMockDocumentService() *MockDocumentService {
	return &MockDocumentService{
		docs:   make(map[int64]*domain.Document),
		owners: make(map[int64]string),
		nextID: 1,
	}
}

func (m *MockDocumentService) Create(content, email string) (*domain.Document, error) {
	doc := &domain.Document{ID: m.nextID, Content: content, OwnerID: 1}
	m.nextID++
	m.docs[doc.ID] = doc
	m.owners[doc.ID] = email
	return doc, nil
}

func (m *MockDocumentService) List(email string) ([]*domain.Document, error) {
	var docs []*domain.Document
	for id, doc := range m.docs {
		if m.owners[id] == email {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *MockDocumentService) Get(id int64, email string) (*domain.Document, error) {
	doc, exists := m.docs[id]
	if !exists {
		return nil, apperrors.NotFound("document not found")
	}
	if m.owners[id] != email {
		return nil, apperrors.Forbidden("you do not have permission to access this document")
	}
	return doc, nil
}

func (m *MockDocumentService) Update(id int64, content, email string) (*domain.Document, error) {
	doc, err := m.Get(id, email)
	if err != nil {
		return nil, err
	}
	doc.Content = content
	return doc, nil
}

func (m *MockDocumentService) Delete(id int64, email string) (*domain.Document, error) {
	doc, err := m.Get(id, email)
	if err != nil {
		return nil, err
	}
	delete(m.docs, id)
	delete(m.owners, id)
	return doc, nil
}

type MockQuestionService struct {
	response string
	err      error
}

func (m *MockQuestionService) Answer(ctx context.Context, text string, contextURLs []string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *MockQuestionService) Autocomplete(ctx context.Context, textInput string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type MockPDFService struct {
	records map[int64]*domain.PdfRecord
	owners  map[int64]string
	err     error
}

func NewMockPDFService() *MockPDFService {
	return &MockPDFService{
		records: make(map[int64]*domain.PdfRecord),
		owners:  make(map[int64]string),
	}
}

func (m *MockPDFService) Upload(ctx context.Context, file []byte, filename, contentType, email string) (*domain.PdfRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record := &domain.PdfRecord{ID: int64(len(m.records) + 1), Link: "https://storage.example.com/pdfs/" + filename}
	m.records[record.ID] = record
	m.owners[record.ID] = email
	return record, nil
}

func (m *MockPDFService) List(email string) ([]*domain.PdfRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var records []*domain.PdfRecord
	for id, record := range m.records {
		if m.owners[id] == email {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *MockPDFService) Get(id int64, email string) (*domain.PdfRecord, error) {
	record, exists := m.records[id]
	if !exists || m.owners[id] != email {
		return nil, apperrors.NotFound("pdf not found")
	}
	return record, nil
}

func (m *MockPDFService) Delete(ctx context.Context, id int64, email string) (*domain.PdfRecord, error) {
	record, err := m.Get(id, email)
	if err != nil {
		return nil, err
	}
	delete(m.records, id)
	return record, nil
}

func (m *MockPDFService) AskAboutPDF(ctx context.Context, pdfURL, prompt string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "pdf answer", nil
}

func (m *MockPDFService) CiteAPA(ctx context.Context, pdfURL string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "Doe, J. (2024). A paper.", nil
}

type MockLogger struct{}

func (m *MockLogger) Info(msg string, fields ...interface{})             {}
func (m *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (m *MockLogger) Debug(msg string, fields ...interface{})            {}
func (m *MockLogger) Warn(msg string, fields ...interface{})             {}

type testEnv struct {
	router    http.Handler
	auth      *MockAuthService
	documents *MockDocumentService
	questions *MockQuestionService
	pdfs      *MockPDFService
}

func newTestEnv() *testEnv {
	auth := NewMockAuthService()
	documents := NewMockDocumentService()
	questions := &MockQuestionService{response: "generated"}
	pdfs := NewMockPDFService()
	logger := &MockLogger{}

	router := NewRouter(
		NewAuthHandler(auth, logger),
		NewDocumentHandler(documents, questions, logger),
		NewPDFHandler(pdfs, 15*1024*1024, logger),
		NewQuestionHandler(questions, logger),
		logger,
	)

	return &testEnv{
		router:    router,
		auth:      auth,
		documents: documents,
		questions: questions,
		pdfs:      pdfs,
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestDocumentHandler_Create(t *testing.T) {
	env := newTestEnv()

	rr := doJSON(t, env.router, http.MethodPost, "/api/v1/documents", map[string]string{
		"content": "hello",
		"email":   "alice@example.com",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var doc domain.Document
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if doc.Content != "hello" {
		t.Errorf("Expected content 'hello', got '%s'", doc.Content)
	}
}

func TestDocumentHandler_Create_MissingEmail(t *testing.T) {
	env := newTestEnv()

	rr := doJSON(t, env.router, http.MethodPost, "/api/v1/documents", map[string]string{
		"content": "hello",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestDocumentHandler_List_Empty(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents?email=alice@example.com", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	// Empty list must serialize as [], not null
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("Expected empty array body, got %s", rr.Body.String())
	}
}

func TestDocumentHandler_Get_CrossOwner(t *testing.T) {
	env := newTestEnv()
	_, _ = env.documents.Create("alice's notes", "alice@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/1?email=bob@example.com", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	// Document routes always report 400 with the detail message
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "you do not have permission to access this document") {
		t.Errorf("Expected permission detail, got %s", rr.Body.String())
	}
}

func TestDocumentHandler_Get_NotFound(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/999?email=alice@example.com", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "document not found") {
		t.Errorf("Expected not-found detail, got %s", rr.Body.String())
	}
}

func TestDocumentHandler_UpdateAndDelete(t *testing.T) {
	env := newTestEnv()
	_, _ = env.documents.Create("draft", "alice@example.com")

	rr := doJSON(t, env.router, http.MethodPut, "/api/v1/documents/1?email=alice@example.com", map[string]string{
		"content": "final",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/1?email=alice@example.com", nil)
	del := httptest.NewRecorder()
	env.router.ServeHTTP(del, req)
	if del.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", del.Code)
	}

	var doc domain.Document
	if err := json.Unmarshal(del.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if doc.Content != "final" {
		t.Errorf("Expected deleted snapshot, got '%s'", doc.Content)
	}
}

func TestDocumentHandler_Autocomplete(t *testing.T) {
	env := newTestEnv()
	env.questions.response = "continued text"

	rr := doJSON(t, env.router, http.MethodPost, "/api/v1/documents/autocomplete", map[string]string{
		"text_input": "The story began",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"autocompleted_text":"continued text"`) {
		t.Errorf("Unexpected response body: %s", rr.Body.String())
	}
}

func TestDocumentHandler_Autocomplete_Failure(t *testing.T) {
	env := newTestEnv()
	env.questions.err = apperrors.New(apperrors.KindUpstreamGeneration, "model unavailable")

	rr := doJSON(t, env.router, http.MethodPost, "/api/v1/documents/autocomplete", map[string]string{
		"text_input": "The story began",
	})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}
}
