package alert

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"safecam-data/internal/config"
)

// RedisNotifier 把报警判定发布到 Redis Streams
// 下游消费者（推送服务、大屏）用 XREAD 消费；发布失败只记日志。
type RedisNotifier struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewRedisNotifier 创建 Redis Streams 通道
func NewRedisNotifier(cfg *config.AlertConfig, logger *zap.Logger) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return &RedisNotifier{
		client: client,
		stream: cfg.Redis.Stream,
		logger: logger,
	}
}

func (r *RedisNotifier) OnAlertDecision(ctx context.Context, decision Decision) {
	payload, err := json.Marshal(decision)
	if err != nil {
		r.logger.Error("failed to encode alert decision", zap.Error(err))
		return
	}

	// XADD：流消息值统一为字符串
	_, err = r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"event_id":    strconv.FormatInt(decision.EventID, 10),
			"is_abnormal": strconv.FormatBool(decision.IsAbnormal),
			"data":        string(payload),
			"timestamp":   strconv.FormatInt(time.Now().Unix(), 10),
		},
	}).Result()
	if err != nil {
		r.logger.Error("failed to publish alert decision to redis stream",
			zap.String("stream", r.stream),
			zap.Int64("event_id", decision.EventID),
			zap.Error(err),
		)
		return
	}

	r.logger.Debug("alert decision published to redis stream",
		zap.String("stream", r.stream),
		zap.Int64("event_id", decision.EventID),
	)
}

// Close 关闭 Redis 连接
func (r *RedisNotifier) Close() error {
	return r.client.Close()
}
