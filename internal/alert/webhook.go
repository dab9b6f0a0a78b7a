package alert

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookNotifier 把报警判定 POST 到外部推送服务
// 对应旧版预留的 send_push_notification 扩展点。
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewWebhookNotifier 创建 webhook 通道
func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

func (w *WebhookNotifier) OnAlertDecision(ctx context.Context, decision Decision) {
	resp, err := w.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Alert-Id", uuid.NewString()).
		SetBody(decision).
		Post(w.url)
	if err != nil {
		w.logger.Error("failed to push alert decision",
			zap.String("url", w.url),
			zap.Int64("event_id", decision.EventID),
			zap.Error(err),
		)
		return
	}
	if resp.IsError() {
		w.logger.Error("alert push rejected",
			zap.String("url", w.url),
			zap.Int64("event_id", decision.EventID),
			zap.Int("status", resp.StatusCode()),
		)
	}
}
