package models

import (
	"time"
)

// User 系统用户（教师/管理员账号）
// PasswordHash 存 sha256 摘要，绝不存明文。
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Email        string
	FullName     string
	Role         string
	CreatedAt    time.Time
}

// Camera 摄像头登记信息
type Camera struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StreamURL string `json:"stream_url"`
}

// Feedback 误报反馈记录，关联到一条事件
type Feedback struct {
	ID        int64
	EventID   int64
	UserID    int64
	Notes     string
	CreatedAt time.Time
}

// ReportRow 按月/按年聚合的事件统计
type ReportRow struct {
	Period string `json:"monthOrYear"`
	Total  int    `json:"total"`
}
