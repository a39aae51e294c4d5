package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"sebbi-server/internal/domain"

	"github.com/gorilla/mux"
)

// PDFHandler handles HTTP requests for PDF operations. Service errors map
// to status by kind (404 NotFound, 403 Forbidden, 500 otherwise).
type PDFHandler struct {
	pdfService  domain.PDFService
	maxFileSize int64
	logger      domain.Logger
}

// NewPDFHandler creates a new PDF handler instance
func NewPDFHandler(pdfService domain.PDFService, maxFileSize int64, logger domain.Logger) *PDFHandler {
	return &PDFHandler{
		pdfService:  pdfService,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type askPDFRequest struct {
	PDFURL string `json:"pdf_url"`
	Prompt string `json:"prompt"`
}

type askPDFResponse struct {
	Response string `json:"response"`
}

type citeAPARequest struct {
	PDFURL string `json:"pdf_url"`
}

type citeAPAResponse struct {
	APACitation string `json:"apa_citation"`
}

// Upload handles multipart PDF uploads
func (h *PDFHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	email := r.FormValue("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	// Strip any path components from the client-provided name.
	filename := strings.TrimSpace(filepath.Base(header.Filename))
	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	record, err := h.pdfService.Upload(r.Context(), data, filename, header.Header.Get("Content-Type"), email)
	if err != nil {
		h.logger.Error("PDF upload failed", err, "email", email, "filename", filename)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// List handles listing all PDF records of a user
func (h *PDFHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	records, err := h.pdfService.List(email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if records == nil {
		records = make([]*domain.PdfRecord, 0)
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles fetching a single PDF record
func (h *PDFHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, email, ok := h.idAndEmail(w, r)
	if !ok {
		return
	}

	record, err := h.pdfService.Get(id, email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Delete handles PDF deletion, returning the deleted record
func (h *PDFHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, email, ok := h.idAndEmail(w, r)
	if !ok {
		return
	}

	record, err := h.pdfService.Delete(r.Context(), id, email)
	if err != nil {
		h.logger.Error("PDF delete failed", err, "id", id)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Ask handles question answering over a PDF URL
func (h *PDFHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askPDFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.pdfService.AskAboutPDF(r.Context(), req.PDFURL, req.Prompt)
	if err != nil {
		h.logger.Error("PDF ask failed", err, "url", req.PDFURL)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, askPDFResponse{Response: response})
}

// CiteAPA handles APA citation generation for a PDF URL
func (h *PDFHandler) CiteAPA(w http.ResponseWriter, r *http.Request) {
	var req citeAPARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	citation, err := h.pdfService.CiteAPA(r.Context(), req.PDFURL)
	if err != nil {
		h.logger.Error("APA citation failed", err, "url", req.PDFURL)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, citeAPAResponse{APACitation: citation})
}

func (h *PDFHandler) idAndEmail(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid PDF ID")
		return 0, "", false
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return 0, "", false
	}
	return id, email, true
}
