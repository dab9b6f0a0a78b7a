package alert

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"safecam-data/internal/config"
)

// Decision 一次报警判定
// 事件落库之后产生，IsAbnormal 为 true 表示需要触发下游通知。
type Decision struct {
	EventID       int64     `json:"event_id"`
	EquipmentType string    `json:"equipment_type"`
	Score         int       `json:"score"`
	Deductions    []string  `json:"deductions"`
	IsAbnormal    bool      `json:"is_abnormal"`
	DecidedAt     time.Time `json:"decided_at"`
}

// Notifier 报警判定的下游通道
// fire-and-forget：实现自行记录失败，绝不把错误传回事件写入方。
type Notifier interface {
	OnAlertDecision(ctx context.Context, decision Decision)
}

// MultiNotifier 把同一判定扇出到多个通道
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier 创建扇出 Notifier
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (m *MultiNotifier) OnAlertDecision(ctx context.Context, decision Decision) {
	for _, n := range m.notifiers {
		n.OnAlertDecision(ctx, decision)
	}
}

// LogNotifier 只记日志的通道（默认行为，对应旧版的打印语句）
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier 创建日志通道
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) OnAlertDecision(_ context.Context, decision Decision) {
	if decision.IsAbnormal {
		l.logger.Warn("event recorded as abnormal, alert can be triggered",
			zap.Int64("event_id", decision.EventID),
			zap.String("equipment_type", decision.EquipmentType),
			zap.Int("score", decision.Score),
			zap.Strings("deductions", decision.Deductions),
		)
		return
	}
	l.logger.Info("event recorded as normal",
		zap.Int64("event_id", decision.EventID),
		zap.String("equipment_type", decision.EquipmentType),
	)
}

// BuildNotifier 根据配置组装报警通道，返回通道和连接清理函数
// sinks 不认识的名字记 warn 后跳过；一个通道都没配出来时退回 log-only。
func BuildNotifier(cfg *config.AlertConfig, logger *zap.Logger) (Notifier, func()) {
	var notifiers []Notifier
	var closers []func()

	for _, sink := range strings.Split(cfg.Sinks, ",") {
		switch strings.TrimSpace(sink) {
		case "log":
			notifiers = append(notifiers, NewLogNotifier(logger))
		case "redis":
			n := NewRedisNotifier(cfg, logger)
			notifiers = append(notifiers, n)
			closers = append(closers, func() {
				if err := n.Close(); err != nil {
					logger.Warn("failed to close redis alert sink", zap.Error(err))
				}
			})
		case "mqtt":
			n, err := NewMQTTNotifier(cfg, logger)
			if err != nil {
				logger.Warn("mqtt alert sink unavailable", zap.Error(err))
				continue
			}
			notifiers = append(notifiers, n)
			closers = append(closers, n.Close)
		case "webhook":
			if cfg.WebhookURL == "" {
				logger.Warn("webhook alert sink requires ALERT_WEBHOOK_URL")
				continue
			}
			notifiers = append(notifiers, NewWebhookNotifier(cfg.WebhookURL, logger))
		case "":
			// empty entry from a trailing comma
		default:
			logger.Warn("unknown alert sink", zap.String("sink", sink))
		}
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	if len(notifiers) == 0 {
		return NewLogNotifier(logger), cleanup
	}
	if len(notifiers) == 1 {
		return notifiers[0], cleanup
	}
	return NewMultiNotifier(notifiers...), cleanup
}
