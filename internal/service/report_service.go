package service

import (
	"context"

	"go.uber.org/zap"

	"safecam-data/internal/domain"
	"safecam-data/internal/models"
)

// 报表粒度
const (
	ReportTypeMonthly = "monthly"
	ReportTypeYearly  = "yearly"
)

// ReportStore 报表聚合依赖
type ReportStore interface {
	CountByMonth(ctx context.Context) ([]models.ReportRow, error)
	CountByYear(ctx context.Context) ([]models.ReportRow, error)
}

// ReportService 事件统计报表服务接口
type ReportService interface {
	Get(ctx context.Context, reportType string) ([]models.ReportRow, error)
}

// reportService 实现
type reportService struct {
	store  ReportStore
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(store ReportStore, logger *zap.Logger) ReportService {
	return &reportService{
		store:  store,
		logger: logger,
	}
}

// Get 按月或按年聚合事件数量
func (s *reportService) Get(ctx context.Context, reportType string) ([]models.ReportRow, error) {
	var (
		rows []models.ReportRow
		err  error
	)
	switch reportType {
	case ReportTypeMonthly:
		rows, err = s.store.CountByMonth(ctx)
	case ReportTypeYearly:
		rows, err = s.store.CountByYear(ctx)
	default:
		return nil, domain.NewError(domain.ErrInvalidInput, "invalid report type")
	}
	if err != nil {
		return nil, domain.WrapPersistence("database error", err)
	}
	return rows, nil
}
