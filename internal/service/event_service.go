package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"safecam-data/internal/alert"
	"safecam-data/internal/config"
	"safecam-data/internal/domain"
	"safecam-data/internal/models"
)

// EventStore 事件持久化依赖
type EventStore interface {
	Insert(ctx context.Context, event *models.Event) (int64, error)
	ListPage(ctx context.Context, limit, offset int) ([]models.Event, error)
	CountAll(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// EventService 事件写入与查询服务接口
type EventService interface {
	Ingest(ctx context.Context, req *IngestEventRequest) (int64, error)
	List(ctx context.Context, page, limit int) (*EventListResult, error)
	GetByID(ctx context.Context, id int64) (*models.EventView, error)
}

// eventService 实现
type eventService struct {
	store    EventStore
	notifier alert.Notifier
	cfg      config.ValidationConfig
	logger   *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(store EventStore, notifier alert.Notifier, cfg config.ValidationConfig, logger *zap.Logger) EventService {
	return &eventService{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// IngestEventRequest 事件上报载荷
// Score 用指针区分"缺字段"和 0 分；camera_id 缺省为 0。
type IngestEventRequest struct {
	CameraID      int      `json:"camera_id"`
	EquipmentType string   `json:"equipment_type"`
	Timestamp     string   `json:"timestamp"`
	RiskType      string   `json:"risk_type"`
	Score         *int     `json:"score"`
	ImageFilename string   `json:"image_filename"`
	Deductions    []string `json:"deductions"`
}

// EventListResult 分页查询结果
type EventListResult struct {
	Events     []models.EventView `json:"data"`
	Pagination models.Pagination  `json:"pagination"`
}

// Ingest 校验并归一化上报数据，落库后做报警判定，返回新事件 id
//
// 校验顺序固定：空载荷 → 缺字段（一条消息列出全部缺失项）→
// risk_type 枚举 → 时间戳解析。任何校验失败都不会产生写入。
func (s *eventService) Ingest(ctx context.Context, req *IngestEventRequest) (int64, error) {
	if req == nil {
		return 0, domain.NewError(domain.ErrInvalidInput, "no input data provided")
	}

	var missing []string
	if s.cfg.RequireEquipmentType && req.EquipmentType == "" {
		missing = append(missing, "equipment_type")
	}
	if req.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	if req.RiskType == "" {
		missing = append(missing, "risk_type")
	}
	if req.Score == nil {
		// 只检查键是否存在：score=0 是合法值
		missing = append(missing, "score")
	}
	if len(missing) > 0 {
		return 0, domain.NewError(domain.ErrMissingField,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	if req.RiskType != models.RiskTypeNormal && req.RiskType != models.RiskTypeAbnormal {
		return 0, domain.NewError(domain.ErrInvalidEnum,
			"invalid risk_type value, must be 'normal' or 'abnormal'")
	}

	eventTime, err := parseEventTime(req.Timestamp)
	if err != nil {
		return 0, domain.NewError(domain.ErrInvalidTimestamp,
			"invalid timestamp format, use ISO format (e.g. YYYY-MM-DDTHH:MM:SS or with Z/offset)")
	}

	deductions := req.Deductions
	if deductions == nil {
		deductions = []string{}
	}

	event := &models.Event{
		CameraID:      req.CameraID,
		EquipmentType: req.EquipmentType,
		EventTime:     eventTime,
		RiskType:      req.RiskType,
		Score:         *req.Score,
		ThumbnailURL:  req.ImageFilename,
		ImageCount:    1,
		Status:        models.StatusNew,
		Deductions:    deductions,
	}

	id, err := s.store.Insert(ctx, event)
	if err != nil {
		return 0, domain.WrapPersistence("database error", err)
	}

	s.notifier.OnAlertDecision(ctx, alert.Decision{
		EventID:       id,
		EquipmentType: event.EquipmentType,
		Score:         event.Score,
		Deductions:    event.Deductions,
		IsAbnormal:    event.RiskType == models.RiskTypeAbnormal,
		DecidedAt:     time.Now().UTC(),
	})

	return id, nil
}

// List 分页查询事件，event_time 倒序
// 总数取全表 COUNT(*)（沿袭既有行为，数据量大时需要另行优化）。
func (s *eventService) List(ctx context.Context, page, limit int) (*EventListResult, error) {
	offset := (page - 1) * limit

	events, err := s.store.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, domain.WrapPersistence("database error", err)
	}

	total, err := s.store.CountAll(ctx)
	if err != nil {
		return nil, domain.WrapPersistence("database error", err)
	}

	views := make([]models.EventView, 0, len(events))
	for i := range events {
		views = append(views, toEventView(&events[i]))
	}

	return &EventListResult{
		Events:     views,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// GetByID 查询单个事件
func (s *eventService) GetByID(ctx context.Context, id int64) (*models.EventView, error) {
	event, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapPersistence("database error", err)
	}
	if event == nil {
		return nil, domain.NewError(domain.ErrNotFound, "no event found for the given id")
	}

	view := toEventView(event)
	return &view, nil
}

// toEventView 把存储形态转成响应形态
// event_time 统一输出 UTC ISO-8601（带 Z 后缀）。
func toEventView(event *models.Event) models.EventView {
	deductions := event.Deductions
	if deductions == nil {
		deductions = []string{}
	}
	return models.EventView{
		ID:            event.ID,
		CameraID:      event.CameraID,
		EquipmentType: event.EquipmentType,
		EventTime:     event.EventTime.UTC().Format(time.RFC3339),
		RiskType:      event.RiskType,
		Score:         event.Score,
		ThumbnailURL:  event.ThumbnailURL,
		Status:        event.Status,
		Deductions:    deductions,
	}
}

// parseEventTime 两段式时间戳解析
// 先按完整 ISO-8601（RFC3339，尾部 Z 视为 +00:00）解析；
// 失败再截掉小数点之后的部分，按 YYYY-MM-DDTHH:MM:SS 无偏移解析。
func parseEventTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	prefix, _, _ := strings.Cut(s, ".")
	t, err := time.Parse("2006-01-02T15:04:05", prefix)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
