package handler

import (
	"encoding/json"
	"net/http"

	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"
)

// QuestionHandler handles free-form question answering requests
type QuestionHandler struct {
	questionService domain.QuestionService
	logger          domain.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService domain.QuestionService, logger domain.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

type askQuestionRequest struct {
	Text    string   `json:"text"`
	Context []string `json:"context,omitempty"`
}

type askQuestionResponse struct {
	Response string `json:"response"`
}

// Ask handles a question, optionally grounded in PDF context URLs
func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	response, err := h.questionService.Answer(r.Context(), req.Text, req.Context)
	if err != nil {
		h.logger.Error("Question answering failed", err, "context_urls", len(req.Context))
		writeError(w, http.StatusInternalServerError, apperrors.Message(err))
		return
	}

	writeJSON(w, http.StatusOK, askQuestionResponse{Response: response})
}
