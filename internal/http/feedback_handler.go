package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/service"
)

// FeedbackHandler 误报反馈 Handler
type FeedbackHandler struct {
	feedback service.FeedbackService
	logger   *zap.Logger
}

// NewFeedbackHandler 创建误报反馈 Handler
func NewFeedbackHandler(feedback service.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		logger:   logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *FeedbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/feedback" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if _, err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, domain.NewError(domain.ErrInvalidInput, "invalid JSON payload"))
		return
	}

	if err := h.feedback.Report(r.Context(), req.ImageURL); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "feedback submitted successfully",
	})
}
