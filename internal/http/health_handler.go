package httpapi

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"safecam-data/internal/repository"
)

// HealthHandler 根路径与数据库连通性检查
type HealthHandler struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(db *sql.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// Home 服务欢迎信息
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Safety Cam API server",
		"status":  "running",
	})
}

// TestDB 查询数据库版本作为连通性测试
func (h *HealthHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	version, err := repository.Version(r.Context(), h.db)
	if err != nil {
		h.logger.Error("database connectivity check failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, failBody{
			Success: false,
			Message: "database connection test failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "successfully connected to PostgreSQL",
		"version": version,
	})
}
