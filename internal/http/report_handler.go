package httpapi

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/service"
)

// ReportHandler 事件统计报表 Handler
type ReportHandler struct {
	reports service.ReportService
	logger  *zap.Logger
}

// NewReportHandler 创建报表 Handler
func NewReportHandler(reports service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	// 路由分发
	switch r.URL.Path {
	case "/api/reports":
		h.Get(w, r)
	case "/api/reports/export":
		h.Export(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Get 按月/按年聚合事件数量
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	reportType := r.URL.Query().Get("type")
	if reportType == "" {
		reportType = service.ReportTypeMonthly
	}

	rows, err := h.reports.Get(r.Context(), reportType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    rows,
	})
}

// Export 导出报表为 Excel 文件
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	reportType := r.URL.Query().Get("type")
	if reportType == "" {
		reportType = service.ReportTypeMonthly
	}

	rows, err := h.reports.Get(r.Context(), reportType)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := GenerateReportExport(reportType, rows)
	if err != nil {
		h.logger.Error("report export failed", zap.Error(err))
		writeError(w, domain.WrapPersistence("failed to generate report file", err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="events_report_%s.xlsx"`, reportType))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
