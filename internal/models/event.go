package models

import (
	"time"
)

// 事件风险分类（旧版允许自由文本，现已收敛为枚举）
const (
	RiskTypeNormal   = "normal"
	RiskTypeAbnormal = "abnormal"
)

// StatusNew 事件创建时的初始状态（生命周期由外部系统管理）
const StatusNew = "new"

// Event 一条安全摄像头风险事件记录
type Event struct {
	ID            int64
	CameraID      int
	EquipmentType string
	EventTime     time.Time
	RiskType      string
	Score         int
	ThumbnailURL  string
	ImageCount    int
	Status        string
	Deductions    []string
	HasFeedback   bool
}

// EventView 查询接口返回的事件形态
// event_time 序列化为 ISO-8601 文本（UTC，带 Z 后缀）；
// deductions 永远是数组，存储层的 NULL 和坏数据都归一化为空数组。
type EventView struct {
	ID            int64    `json:"id"`
	CameraID      int      `json:"camera_id"`
	EquipmentType string   `json:"equipment_type"`
	EventTime     string   `json:"event_time"`
	RiskType      string   `json:"risk_type"`
	Score         int      `json:"score"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Status        string   `json:"status"`
	Deductions    []string `json:"deductions"`
}
