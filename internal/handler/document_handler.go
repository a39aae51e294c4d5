// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"

	"github.com/gorilla/mux"
)

// DocumentHandler handles document-related HTTP requests. Every document
// route failure maps to 400 with the error message as detail; only the
// autocomplete route reports 500.
type DocumentHandler struct {
	documentService domain.DocumentService
	questionService domain.QuestionService
	logger          domain.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	documentService domain.DocumentService,
	questionService domain.QuestionService,
	logger domain.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		questionService: questionService,
		logger:          logger,
	}
}

type createDocumentRequest struct {
	Content string `json:"content"`
	Email   string `json:"email"`
}

type updateDocumentRequest struct {
	Content string `json:"content"`
}

type autocompleteRequest struct {
	TextInput string `json:"text_input"`
}

type autocompleteResponse struct {
	AutocompletedText string `json:"autocompleted_text"`
}

// Create handles document creation
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	doc, err := h.documentService.Create(req.Content, req.Email)
	if err != nil {
		h.logger.Error("Failed to create document", err, "email", req.Email)
		writeError(w, http.StatusBadRequest, apperrors.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// List handles listing all documents of a user
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	docs, err := h.documentService.List(email)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Message(err))
		return
	}

	// Ensure JSON is [] not null when there are no documents.
	if docs == nil {
		docs = make([]*domain.Document, 0)
	}
	writeJSON(w, http.StatusOK, docs)
}

// Get handles fetching a single document
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, email, ok := h.idAndEmail(w, r)
	if !ok {
		return
	}

	doc, err := h.documentService.Get(id, email)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// Update handles full content replacement of a document
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, email, ok := h.idAndEmail(w, r)
	if !ok {
		return
	}

	var req updateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.documentService.Update(id, req.Content, email)
	if err != nil {
		h.logger.Error("Failed to update document", err, "id", id)
		writeError(w, http.StatusBadRequest, apperrors.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// Delete handles document deletion, returning the deleted document
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, email, ok := h.idAndEmail(w, r)
	if !ok {
		return
	}

	doc, err := h.documentService.Delete(id, email)
	if err != nil {
		h.logger.Error("Failed to delete document", err, "id", id)
		writeError(w, http.StatusBadRequest, apperrors.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// Autocomplete handles text continuation requests
func (h *DocumentHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	var req autocompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text, err := h.questionService.Autocomplete(r.Context(), req.TextInput)
	if err != nil {
		h.logger.Error("Autocomplete failed", err)
		writeError(w, http.StatusInternalServerError, apperrors.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, autocompleteResponse{AutocompletedText: text})
}

func (h *DocumentHandler) idAndEmail(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid document ID")
		return 0, "", false
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return 0, "", false
	}
	return id, email, true
}
