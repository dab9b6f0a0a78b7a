package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"safecam-data/internal/models"
)

// EventsRepository 事件表仓库
type EventsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventsRepository 创建事件仓库
func NewEventsRepository(db *sql.DB, logger *zap.Logger) *EventsRepository {
	return &EventsRepository{
		db:     db,
		logger: logger,
	}
}

// eventColumns 查询接口返回的列（image_count 只写不读，与旧版 SELECT 保持一致）
const eventColumns = `id, camera_id, equipment_type, event_time, risk_type, score, thumbnail_url, status, deductions`

// Insert 在单个事务里插入事件并返回新分配的 id
// deductions 以 JSON 数组文本落库；任何失败都回滚，不重试。
func (r *EventsRepository) Insert(ctx context.Context, event *models.Event) (int64, error) {
	deductions := event.Deductions
	if deductions == nil {
		deductions = []string{}
	}
	deductionsJSON, err := json.Marshal(deductions)
	if err != nil {
		return 0, fmt.Errorf("failed to encode deductions: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO events (camera_id, equipment_type, event_time, risk_type, score, thumbnail_url, image_count, status, deductions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err = tx.QueryRowContext(ctx, query,
		event.CameraID,
		event.EquipmentType,
		event.EventTime,
		event.RiskType,
		event.Score,
		event.ThumbnailURL,
		event.ImageCount,
		event.Status,
		string(deductionsJSON),
	).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit event insert: %w", err)
	}

	return id, nil
}

// ListPage 按 event_time 倒序分页查询事件
func (r *EventsRepository) ListPage(ctx context.Context, limit, offset int) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY event_time DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0, limit)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// CountAll 统计事件总数（全表，无过滤）
func (r *EventsRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return total, nil
}

// GetByID 根据 id 获取单个事件；不存在时返回 (nil, nil)
func (r *EventsRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// rowScanner 兼容 *sql.Row 和 *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	var equipmentType, thumbnailURL, deductions sql.NullString

	err := row.Scan(
		&event.ID,
		&event.CameraID,
		&equipmentType,
		&event.EventTime,
		&event.RiskType,
		&event.Score,
		&thumbnailURL,
		&event.Status,
		&deductions,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	event.EquipmentType = equipmentType.String
	event.ThumbnailURL = thumbnailURL.String
	event.Deductions = decodeDeductions(deductions)

	return &event, nil
}

// decodeDeductions 把落库的 JSON 数组文本还原为字符串列表
// NULL 和无法解析的内容都归一化为空列表。
func decodeDeductions(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw.String), &list); err != nil {
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}
