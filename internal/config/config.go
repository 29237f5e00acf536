package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Redis        RedisConfig
	RabbitMQ     RabbitMQConfig
	MQTT         MQTTConfig
	Tracing      TracingConfig
	Upload       UploadConfig
	Payment      PaymentConfig
	Notification NotificationConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type AppConfig struct {
	Name    string
	BaseURL string // used to build links in outbound messages
}

type DatabaseConfig struct {
	Driver   string // postgres or mysql
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type JWTConfig struct {
	Secret      string
	Expiry      time.Duration
	ResetExpiry time.Duration
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

type RedisConfig struct {
	Addr     string // empty disables caching
	Password string
	DB       int
	TTL      time.Duration
}

type RabbitMQConfig struct {
	URL      string // empty disables publishing
	Exchange string
}

type MQTTConfig struct {
	Broker      string // empty disables publishing
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string

	KeepAlive      time.Duration
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type UploadConfig struct {
	Dir       string
	URLPrefix string
	MaxSize   int64
}

type PaymentConfig struct {
	SuccessRate float64
}

type NotificationConfig struct {
	Timeout            time.Duration
	ResetSweepInterval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENVIRONMENT", "development")

	v.SetDefault("APP_NAME", "Turf Booking")
	v.SetDefault("APP_BASE_URL", "http://localhost:5173")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("JWT_EXPIRY", time.Hour)
	v.SetDefault("JWT_RESET_EXPIRY", 15*time.Minute)

	v.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)

	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})
	v.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"})
	v.SetDefault("CORS_ALLOW_CREDENTIALS", true)
	v.SetDefault("CORS_MAX_AGE", 12*time.Hour)

	v.SetDefault("REDIS_TTL", 5*time.Minute)

	v.SetDefault("RABBITMQ_EXCHANGE", "turf.events")

	v.SetDefault("MQTT_CLIENT_ID", "turf-booking-api")
	v.SetDefault("MQTT_TOPIC_PREFIX", "turf-booking")
	v.SetDefault("MQTT_KEEP_ALIVE", 60*time.Second)
	v.SetDefault("MQTT_CONNECT_TIMEOUT", 10*time.Second)
	v.SetDefault("MQTT_PUBLISH_TIMEOUT", 5*time.Second)

	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_URL_PREFIX", "/uploads")
	v.SetDefault("UPLOAD_MAX_SIZE", 5<<20)

	v.SetDefault("PAYMENT_SUCCESS_RATE", 0.9)

	v.SetDefault("NOTIFY_TIMEOUT", 5*time.Second)
	v.SetDefault("RESET_TOKEN_SWEEP_INTERVAL", time.Hour)
}

func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(homeDir)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			Environment: v.GetString("ENVIRONMENT"),
		},
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			BaseURL: strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			Expiry:      v.GetDuration("JWT_EXPIRY"),
			ResetExpiry: v.GetDuration("JWT_RESET_EXPIRY"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   stringSlice(v, "CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   stringSlice(v, "CORS_ALLOWED_METHODS"),
			AllowedHeaders:   stringSlice(v, "CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   stringSlice(v, "CORS_EXPOSED_HEADERS"),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           v.GetDuration("CORS_MAX_AGE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("REDIS_TTL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		MQTT: MQTTConfig{
			Broker:      v.GetString("MQTT_BROKER"),
			ClientID:    v.GetString("MQTT_CLIENT_ID"),
			Username:    v.GetString("MQTT_USERNAME"),
			Password:    v.GetString("MQTT_PASSWORD"),
			TopicPrefix: v.GetString("MQTT_TOPIC_PREFIX"),

			KeepAlive:      v.GetDuration("MQTT_KEEP_ALIVE"),
			ConnectTimeout: v.GetDuration("MQTT_CONNECT_TIMEOUT"),
			PublishTimeout: v.GetDuration("MQTT_PUBLISH_TIMEOUT"),
		},
		Tracing: TracingConfig{
			Enabled:  v.GetBool("OTEL_ENABLED"),
			Endpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		Upload: UploadConfig{
			Dir:       v.GetString("UPLOAD_DIR"),
			URLPrefix: v.GetString("UPLOAD_URL_PREFIX"),
			MaxSize:   v.GetInt64("UPLOAD_MAX_SIZE"),
		},
		Payment: PaymentConfig{
			SuccessRate: v.GetFloat64("PAYMENT_SUCCESS_RATE"),
		},
		Notification: NotificationConfig{
			Timeout:            v.GetDuration("NOTIFY_TIMEOUT"),
			ResetSweepInterval: v.GetDuration("RESET_TOKEN_SWEEP_INTERVAL"),
		},
	}
}

// stringSlice accepts both list values and comma separated env strings.
func stringSlice(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("DB_HOST and DB_NAME are required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		return fmt.Errorf("PAYMENT_SUCCESS_RATE must be within [0,1], got %v", c.Payment.SuccessRate)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == "mysql" {
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.DBName,
		)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
