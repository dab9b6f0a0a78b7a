package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"safecam-data/internal/models"
)

// FeedbackRepository 误报反馈仓库
type FeedbackRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFeedbackRepository 创建反馈仓库
func NewFeedbackRepository(db *sql.DB, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		db:     db,
		logger: logger,
	}
}

// FindEventByImageURL 根据缩略图地址反查事件（id 和反馈标记）；不存在时返回 (nil, nil)
func (r *FeedbackRepository) FindEventByImageURL(ctx context.Context, imageURL string) (*models.Event, error) {
	var event models.Event
	err := r.db.QueryRowContext(ctx,
		`SELECT id, has_feedback FROM events WHERE thumbnail_url = $1`, imageURL,
	).Scan(&event.ID, &event.HasFeedback)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event by image url: %w", err)
	}
	return &event, nil
}

// Submit 在单个事务里写入反馈并把事件标记为已反馈
func (r *FeedbackRepository) Submit(ctx context.Context, fb *models.Feedback) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO feedback (event_id, user_id, notes) VALUES ($1, $2, $3)`,
		fb.EventID, fb.UserID, fb.Notes,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE events SET has_feedback = TRUE WHERE id = $1`,
		fb.EventID,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to flag event feedback: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feedback: %w", err)
	}

	return nil
}
