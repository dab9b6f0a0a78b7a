package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/models"
)

// CameraLister 摄像头列表依赖
type CameraLister interface {
	List(ctx context.Context) ([]models.Camera, error)
}

// CameraHandler 摄像头 Handler
type CameraHandler struct {
	cameras CameraLister
	logger  *zap.Logger
}

// NewCameraHandler 创建摄像头 Handler
func NewCameraHandler(cameras CameraLister, logger *zap.Logger) *CameraHandler {
	return &CameraHandler{
		cameras: cameras,
		logger:  logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *CameraHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/cameras" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cameras, err := h.cameras.List(r.Context())
	if err != nil {
		h.logger.Error("camera list failed", zap.Error(err))
		writeError(w, domain.WrapPersistence("failed to load cameras", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    cameras,
	})
}
