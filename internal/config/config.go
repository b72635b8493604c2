package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BookingEngine/pkg/servicetime"
)

// Переменные окружения, которые переопределяют секреты из файла
const (
	EnvDBPassword    = "BOOKING_DB_PASSWORD"
	EnvRedisPassword = "BOOKING_REDIS_PASSWORD"
)

// ErrInvalidConfig возвращается, если конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	WorkingHours WorkingHoursConfig `toml:"working_hours"`
	Booking      BookingConfig      `toml:"booking"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования. Пустой File - вывод в stdout.
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки Redis (хранилище удержаний слотов)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// WorkingHoursConfig источник расписания
type WorkingHoursConfig struct {
	File           string `toml:"file"`
	ReloadInterval int    `toml:"reload_interval"` // секунды
	Timezone       string `toml:"timezone"`
}

// BookingConfig параметры удержания слотов
type BookingConfig struct {
	HoldTTLMinutes       int `toml:"hold_ttl_minutes"`
	HoldRetentionMinutes int `toml:"hold_retention_minutes"`
	SweepInterval        int `toml:"sweep_interval"` // секунды
	SweepBatch           int `toml:"sweep_batch"`
}

// RateLimitConfig ограничение частоты запросов на пользователя
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// HoldTTL срок жизни удержания
func (c BookingConfig) HoldTTL() time.Duration {
	return time.Duration(c.HoldTTLMinutes) * time.Minute
}

// HoldRetention сколько ключ удержания живёт после истечения
func (c BookingConfig) HoldRetention() time.Duration {
	return time.Duration(c.HoldRetentionMinutes) * time.Minute
}

// SweepEvery период освобождения истекших удержаний
func (c BookingConfig) SweepEvery() time.Duration {
	return time.Duration(c.SweepInterval) * time.Second
}

// ReloadEvery период проверки файла расписания
func (c WorkingHoursConfig) ReloadEvery() time.Duration {
	return time.Duration(c.ReloadInterval) * time.Second
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию
// и переменные окружения, затем проверяет результат.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking-engine",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		WorkingHours: WorkingHoursConfig{
			File:           "working_hours.yaml",
			ReloadInterval: 30,
			Timezone:       servicetime.DefaultZone,
		},
		Booking: BookingConfig{
			HoldTTLMinutes:       15,
			HoldRetentionMinutes: 60,
			SweepInterval:        30,
			SweepBatch:           100,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Redis.Password = v
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	case c.Database.Host == "" || c.Database.DBName == "":
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	case c.Redis.Addr == "":
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	case c.WorkingHours.File == "":
		return fmt.Errorf("%w: working_hours.file is required", ErrInvalidConfig)
	case c.Booking.HoldTTLMinutes <= 0:
		return fmt.Errorf("%w: booking.hold_ttl_minutes must be positive", ErrInvalidConfig)
	case c.Booking.SweepInterval <= 0:
		return fmt.Errorf("%w: booking.sweep_interval must be positive", ErrInvalidConfig)
	case c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0):
		return fmt.Errorf("%w: rate_limit needs positive requests_per_second and burst", ErrInvalidConfig)
	case c.Metrics.Enabled && c.Metrics.Path == "":
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	if _, err := servicetime.New(c.WorkingHours.Timezone); err != nil {
		return fmt.Errorf("%w: working_hours.timezone: %v", ErrInvalidConfig, err)
	}

	return nil
}
