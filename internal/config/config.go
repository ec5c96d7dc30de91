package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Поддерживаемые storage-бэкенды
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig параметры HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig параметры хранилища
// Backend = "memory" поднимает in-memory хранилище без подключения к БД
type DatabaseConfig struct {
	Backend         string `toml:"backend"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
	MigrationsPath  string `toml:"migrations_path"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-параметры бронирования
type BookingConfig struct {
	// AllowFallbackSlot разрешает legacy-поведение: при отсутствии свободного слота
	// на запрошенную дату берется первый свободный слот на любую дату.
	// По умолчанию выключено - запрос отклоняется с ошибкой "нет доступности".
	AllowFallbackSlot bool `toml:"allow_fallback_slot"`

	// TurnRetentionDays возраст отмененных турнов по умолчанию для очистки
	TurnRetentionDays int `toml:"turn_retention_days"`

	// NotificationRetentionDays возраст отправленных уведомлений для очистки
	NotificationRetentionDays int `toml:"notification_retention_days"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Backend:         BackendPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrationsPath:  "migrations",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "sislim-turno-service",
		},
		Booking: BookingConfig{
			TurnRetentionDays:         30,
			NotificationRetentionDays: 90,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in (0, 65535]", ErrInvalidConfig)
	}

	switch c.Database.Backend {
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("%w: database host, user and dbname are required for postgres backend", ErrInvalidConfig)
		}
	case BackendMemory:
		// Доп. параметры не требуются
	default:
		return fmt.Errorf("%w: unknown database backend %q", ErrInvalidConfig, c.Database.Backend)
	}

	if c.Booking.TurnRetentionDays < 0 || c.Booking.NotificationRetentionDays < 0 {
		return fmt.Errorf("%w: retention days must not be negative", ErrInvalidConfig)
	}

	return nil
}

// DSN строит строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL строит URL подключения к PostgreSQL (формат, который ожидает golang-migrate)
func (d *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}
