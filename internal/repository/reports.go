package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"safecam-data/internal/models"
)

// 报表聚合粒度对应的 to_char 格式
const (
	periodFormatMonthly = "YYYY-MM"
	periodFormatYearly  = "YYYY"
)

// ReportsRepository 事件统计报表仓库（对 events 表做聚合查询）
type ReportsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportsRepository 创建报表仓库
func NewReportsRepository(db *sql.DB, logger *zap.Logger) *ReportsRepository {
	return &ReportsRepository{
		db:     db,
		logger: logger,
	}
}

// CountByMonth 按月统计事件数量，最近的月份在前
func (r *ReportsRepository) CountByMonth(ctx context.Context) ([]models.ReportRow, error) {
	return r.countByPeriod(ctx, periodFormatMonthly)
}

// CountByYear 按年统计事件数量，最近的年份在前
func (r *ReportsRepository) CountByYear(ctx context.Context) ([]models.ReportRow, error) {
	return r.countByPeriod(ctx, periodFormatYearly)
}

func (r *ReportsRepository) countByPeriod(ctx context.Context, format string) ([]models.ReportRow, error) {
	query := `
		SELECT to_char(event_time, $1) AS period, COUNT(*) AS total
		FROM events
		GROUP BY period
		ORDER BY period DESC
	`

	rows, err := r.db.QueryContext(ctx, query, format)
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	defer rows.Close()

	report := make([]models.ReportRow, 0)
	for rows.Next() {
		var row models.ReportRow
		if err := rows.Scan(&row.Period, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	return report, nil
}

// Version 返回数据库版本（用于连通性检查）
func Version(ctx context.Context, db *sql.DB) (string, error) {
	var version string
	if err := db.QueryRowContext(ctx, `SELECT version()`).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query version: %w", err)
	}
	return version, nil
}
