package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config safecam-data（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Log      struct {
		Level  string
		Format string
	}
	Validation ValidationConfig
	Alert      AlertConfig
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// ValidationConfig 事件校验配置
// equipment_type 在旧版客户端里是可选字段，新版强制必填；
// 用显式开关切换，不再同时悄悄兼容两种行为。
type ValidationConfig struct {
	RequireEquipmentType bool
}

// AlertConfig 报警分发配置
// Sinks 为逗号分隔列表（log / redis / mqtt / webhook），默认只记日志。
type AlertConfig struct {
	Sinks string

	Redis struct {
		Addr     string
		Password string
		DB       int
		Stream   string
	}

	MQTT struct {
		Broker   string
		ClientID string
		Username string
		Password string
		Topic    string
		QoS      byte
	}

	WebhookURL string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "safety_cam")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Validation.RequireEquipmentType = getEnv("VALIDATION_REQUIRE_EQUIPMENT_TYPE", "true") == "true"

	// 报警分发（默认 log-only，与旧版行为一致）
	cfg.Alert.Sinks = getEnv("ALERT_SINKS", "log")
	cfg.Alert.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Alert.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Alert.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.Alert.Redis.Stream = getEnv("ALERT_STREAM", "safecam:alerts")
	cfg.Alert.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.Alert.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "safecam-data")
	cfg.Alert.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.Alert.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.Alert.MQTT.Topic = getEnv("MQTT_ALERT_TOPIC", "safecam/alerts")
	cfg.Alert.MQTT.QoS = byte(parseInt(getEnv("MQTT_QOS", "1"), 1))
	cfg.Alert.WebhookURL = getEnv("ALERT_WEBHOOK_URL", "")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
