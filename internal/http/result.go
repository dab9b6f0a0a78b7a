package httpapi

import (
	"errors"
	"net/http"

	"safecam-data/internal/domain"
)

// failBody 统一的失败响应体
type failBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeError 把错误类别映射到 HTTP 状态码并输出失败响应
// 校验类错误 → 400，NotFound → 404，Conflict → 409，
// Unauthorized → 401，其余（含持久层错误）→ 500。
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidEnum),
		errors.Is(err, domain.ErrInvalidTimestamp):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	writeJSON(w, status, failBody{Success: false, Message: domain.UserMessage(err)})
}
