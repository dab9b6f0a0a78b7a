package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"safecam-data/internal/models"
)

// CamerasRepository 摄像头表仓库
type CamerasRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCamerasRepository 创建摄像头仓库
func NewCamerasRepository(db *sql.DB, logger *zap.Logger) *CamerasRepository {
	return &CamerasRepository{
		db:     db,
		logger: logger,
	}
}

// List 获取全部摄像头
func (r *CamerasRepository) List(ctx context.Context) ([]models.Camera, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, stream_url FROM cameras ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cameras: %w", err)
	}
	defer rows.Close()

	cameras := make([]models.Camera, 0)
	for rows.Next() {
		var camera models.Camera
		var streamURL sql.NullString
		if err := rows.Scan(&camera.ID, &camera.Name, &streamURL); err != nil {
			return nil, fmt.Errorf("failed to scan camera: %w", err)
		}
		camera.StreamURL = streamURL.String
		cameras = append(cameras, camera)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cameras: %w", err)
	}

	return cameras, nil
}
