package alert

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"safecam-data/internal/config"
)

// MQTTNotifier 把报警判定发布到 MQTT 主题
// 面向现场端（警报灯、控制面板）的通道。
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
	qos    byte
	logger *zap.Logger
}

// NewMQTTNotifier 创建 MQTT 通道（连接失败直接返回错误，由调用方降级）
func NewMQTTNotifier(cfg *config.AlertConfig, logger *zap.Logger) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTT.Broker)
	opts.SetClientID(cfg.MQTT.ClientID)
	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
	}
	if cfg.MQTT.Password != "" {
		opts.SetPassword(cfg.MQTT.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTNotifier{
		client: client,
		topic:  cfg.MQTT.Topic,
		qos:    cfg.MQTT.QoS,
		logger: logger,
	}, nil
}

func (m *MQTTNotifier) OnAlertDecision(_ context.Context, decision Decision) {
	payload, err := json.Marshal(decision)
	if err != nil {
		m.logger.Error("failed to encode alert decision", zap.Error(err))
		return
	}

	token := m.client.Publish(m.topic, m.qos, false, payload)
	token.Wait()
	if token.Error() != nil {
		m.logger.Error("failed to publish alert decision to mqtt",
			zap.String("topic", m.topic),
			zap.Int64("event_id", decision.EventID),
			zap.Error(token.Error()),
		)
	}
}

// Close 断开 MQTT 连接
func (m *MQTTNotifier) Close() {
	m.client.Disconnect(250)
}
