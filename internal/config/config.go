package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	JWT      JWTConfig
	Realtime RealtimeConfig
	Kafka    KafkaConfig
	MinIO    MinIOConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

type RealtimeConfig struct {
	HeartbeatInterval time.Duration
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type MinIOConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("DASHBOARD_PORT", "8080")
	viper.SetDefault("DASHBOARD_READ_TIMEOUT", 30*time.Second)
	viper.SetDefault("DASHBOARD_WRITE_TIMEOUT", 30*time.Second)
	viper.SetDefault("DASHBOARD_IDLE_TIMEOUT", 60*time.Second)
	viper.SetDefault("DASHBOARD_JWT_SECRET", "secret")
	viper.SetDefault("DASHBOARD_JWT_EXPIRE", "24h")
	viper.SetDefault("DASHBOARD_HEARTBEAT_INTERVAL", 30*time.Second)
	viper.SetDefault("KAFKA_ENABLED", false)
	viper.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
	viper.SetDefault("KAFKA_TOPIC", "dashboard.events")
	viper.SetDefault("MINIO_ENABLED", false)
	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_BUCKET", "dashboard")
	viper.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Host:         viper.GetString("DASHBOARD_HOST"),
			Port:         viper.GetString("DASHBOARD_PORT"),
			ReadTimeout:  viper.GetDuration("DASHBOARD_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("DASHBOARD_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetDuration("DASHBOARD_IDLE_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret:         viper.GetString("DASHBOARD_JWT_SECRET"),
			ExpirationTime: viper.GetDuration("DASHBOARD_JWT_EXPIRE"),
		},
		Realtime: RealtimeConfig{
			HeartbeatInterval: viper.GetDuration("DASHBOARD_HEARTBEAT_INTERVAL"),
		},
		Kafka: KafkaConfig{
			Enabled: viper.GetBool("KAFKA_ENABLED"),
			Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
		MinIO: MinIOConfig{
			Enabled:   viper.GetBool("MINIO_ENABLED"),
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
	}, nil
}
