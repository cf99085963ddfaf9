package main

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LeonardoBeccarini/printer_monitor/internal/services/notifier"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/mqttbus"
)

const (
	modeEmbedded = "embedded"
	modeExternal = "external"
)

type Config struct {
	ServiceName string
	LogLevel    string

	MQTT            mqttbus.Config
	BrokerMode      string
	EmbeddedAddress string
	TopicPrefix     string

	SensorKind     string
	SensorStale    time.Duration
	SampleInterval time.Duration
	SettingsPath   string

	QueueCapacity int
	SMTP          notifier.SMTPConfig
	CBFails       int
	CBOpen        time.Duration

	ConnectivityTarget string
	ProbeInterval      time.Duration

	InfluxURL     string
	InfluxToken   string
	InfluxOrg     string
	InfluxBucket  string
	BatchSize     int
	FlushInterval time.Duration

	HTTPPort       int
	GRPCPort       int
	ReadinessGrace time.Duration
}

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// envDuration reads a number of milliseconds.
func envDuration(key string, def time.Duration) time.Duration {
	return time.Duration(envInt(key, int(def.Milliseconds()))) * time.Millisecond
}

func loadConfig() Config {
	cfg := Config{
		ServiceName: envStr("SERVICE_NAME", "printer-monitor"),
		LogLevel:    envStr("LOG_LEVEL", "info"),

		MQTT: mqttbus.Config{
			Host:       envStr("MQTT_HOST", "localhost"),
			Port:       envInt("MQTT_PORT", 1883),
			User:       envStr("MQTT_USER", ""),
			Password:   envStr("MQTT_PASSWORD", ""),
			ClientID:   envStr("MQTT_CLIENT_ID", "printer-monitor-"+uuid.NewString()[:8]),
			MaxRetries: envInt("MQTT_MAX_RETRIES", 5),
			MaxElapsed: envDuration("MQTT_CONNECT_TIMEOUT_MS", 10*time.Second),
		},
		BrokerMode:      strings.ToLower(envStr("BROKER_MODE", modeEmbedded)),
		EmbeddedAddress: envStr("EMBEDDED_ADDRESS", ":1883"),
		TopicPrefix:     envStr("TOPIC_PREFIX", "mqtt"),

		SensorKind:     envStr("SENSOR_KIND", "simulated"),
		SensorStale:    envDuration("SENSOR_STALE_MS", 10*time.Second),
		SampleInterval: envDuration("SAMPLE_INTERVAL_MS", 2000*time.Millisecond),
		SettingsPath:   envStr("SETTINGS_PATH", "settings.json"),

		QueueCapacity: envInt("QUEUE_CAPACITY", notifier.DefaultCapacity),
		SMTP: notifier.SMTPConfig{
			Host:     envStr("SMTP_HOST", ""),
			Port:     envInt("SMTP_PORT", 587),
			User:     envStr("SMTP_USER", ""),
			Password: envStr("SMTP_PASSWORD", ""),
			From:     envStr("SMTP_FROM", ""),
			FromName: envStr("SMTP_FROM_NAME", "Printer Monitor"),
			To:       envStr("SMTP_TO", ""),
			Secure:   envBool("SMTP_SECURE", false),
			Timeout:  envDuration("SMTP_TIMEOUT_MS", 15*time.Second),
		},
		CBFails: envInt("CB_FAILS", 3),
		CBOpen:  envDuration("CB_OPEN_MS", time.Minute),

		ConnectivityTarget: envStr("CONNECTIVITY_TARGET", ""),
		ProbeInterval:      envDuration("CONNECTIVITY_INTERVAL_MS", 30*time.Second),

		InfluxURL:     envStr("INFLUX_URL", ""),
		InfluxToken:   os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:     envStr("INFLUX_ORG", "home"),
		InfluxBucket:  envStr("INFLUX_BUCKET", "printer"),
		BatchSize:     envInt("WRITE_BATCH_SIZE", 10),
		FlushInterval: envDuration("WRITE_FLUSH_INTERVAL_MS", time.Second),

		HTTPPort:       envInt("HTTP_PORT", 8080),
		GRPCPort:       envInt("GRPC_PORT", 50051),
		ReadinessGrace: 5 * time.Second,
	}
	if cfg.ConnectivityTarget == "" && cfg.SMTP.Host != "" {
		cfg.ConnectivityTarget = net.JoinHostPort(cfg.SMTP.Host, strconv.Itoa(cfg.SMTP.Port))
	}
	if cfg.BrokerMode != modeExternal {
		cfg.BrokerMode = modeEmbedded
	}
	return cfg
}
