package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/service"
)

// EventHandler 风险事件 Handler
type EventHandler struct {
	events service.EventService
	logger *zap.Logger
}

// NewEventHandler 创建风险事件 Handler
func NewEventHandler(events service.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		logger: logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	path := r.URL.Path
	switch {
	case path == "/api/events" && r.Method == http.MethodPost:
		h.Create(w, r)
	case path == "/api/events" && r.Method == http.MethodGet:
		h.List(w, r)
	case strings.HasPrefix(path, "/api/events/") && r.Method == http.MethodGet:
		id := strings.TrimPrefix(path, "/api/events/")
		if id != "" && !strings.Contains(id, "/") {
			h.Detail(w, r, id)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case path == "/api/events" || strings.HasPrefix(path, "/api/events/"):
		w.WriteHeader(http.StatusMethodNotAllowed)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Create 接收本地分析脚本上报的危险事件
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.IngestEventRequest
	fields, err := readBodyObject(r, 1<<20, &req)
	if err != nil {
		writeError(w, domain.NewError(domain.ErrInvalidInput, "invalid JSON payload"))
		return
	}
	if fields == 0 {
		// 空请求体、null 和 {} 一律按无数据处理
		writeError(w, domain.NewError(domain.ErrInvalidInput, "no input data provided"))
		return
	}

	id, err := h.events.Ingest(ctx, &req)
	if err != nil {
		h.logger.Warn("event ingest rejected", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "event created",
		"event_id": id,
	})
}

// List 分页查询事件历史
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, errPage := parseIntParam(r.URL.Query().Get("page"), 1)
	limit, errLimit := parseIntParam(r.URL.Query().Get("limit"), 20)
	if errPage != nil || errLimit != nil {
		writeError(w, domain.NewError(domain.ErrInvalidInput, "invalid pagination parameters"))
		return
	}

	result, err := h.events.List(ctx, page, limit)
	if err != nil {
		h.logger.Error("event list failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       result.Events,
		"pagination": result.Pagination,
	})
}

// Detail 查询单个事件详情
func (h *EventHandler) Detail(w http.ResponseWriter, r *http.Request, idStr string) {
	ctx := r.Context()

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		// 路径段不是数字 id，视同不存在
		w.WriteHeader(http.StatusNotFound)
		return
	}

	view, err := h.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			h.logger.Error("event detail failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    view,
	})
}
