package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Поддерживаемые драйверы базы данных
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Trivia    TriviaConfig    `mapstructure:"trivia"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig содержит настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	// TrustedProxies: адреса прокси, которым доверяет c.ClientIP(). Пустой список — не доверять никому.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// DatabaseConfig содержит настройки подключения к базе.
// Driver "postgres" использует Host/Port/...; "sqlite" — Path.
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"`
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	Path           string `mapstructure:"path"`
	MigrationsPath string `mapstructure:"migrations_path"`
	// LogLevel: уровень логгера gorm ("silent", "error", "warn", "info")
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт).
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток (-1 - без ретраев). По умолчанию 0 (значение go-redis).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: Минимальный интервал между попытками (в миллисекундах).
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: Максимальный интервал между попытками (в миллисекундах).
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// RateLimitConfig содержит настройки ограничения частоты запросов.
// Работает только при наличии Redis.
type RateLimitConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxRequests int  `mapstructure:"max_requests"`
	WindowSec   int  `mapstructure:"window_sec"`
}

// Window возвращает окно rate limiting
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSec) * time.Second
}

// TriviaConfig содержит настройки предметной области
type TriviaConfig struct {
	QuestionsPerPage int `mapstructure:"questions_per_page"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig включает эндпоинт /metrics
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfigured сообщает, задан ли хотя бы один адрес Redis
func (r *RedisConfig) RedisConfigured() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)
	vip.SetDefault("server.shutdown_timeout", 10)

	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.dbname", "trivia")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.path", "trivia.db")
	vip.SetDefault("database.migrations_path", "migrations")
	vip.SetDefault("database.log_level", "warn")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("rate_limit.enabled", false)
	vip.SetDefault("rate_limit.max_requests", 120)
	vip.SetDefault("rate_limit.window_sec", 60)

	vip.SetDefault("trivia.questions_per_page", 10)

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.format", "json")

	vip.SetDefault("metrics.enabled", true)
}

func bindEnv(vip *viper.Viper) {
	// Привязка для Server
	_ = vip.BindEnv("server.port", "SERVER_PORT")
	_ = vip.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	_ = vip.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	_ = vip.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Привязка для секции Database
	_ = vip.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = vip.BindEnv("database.host", "DATABASE_HOST")
	_ = vip.BindEnv("database.port", "DATABASE_PORT")
	_ = vip.BindEnv("database.user", "DATABASE_USER")
	_ = vip.BindEnv("database.password", "DATABASE_PASSWORD")
	_ = vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	_ = vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	_ = vip.BindEnv("database.path", "DATABASE_PATH")
	_ = vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")
	_ = vip.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")

	// Привязка для секции Redis
	_ = vip.BindEnv("redis.mode", "REDIS_MODE")
	_ = vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	_ = vip.BindEnv("redis.addr", "REDIS_ADDR")
	_ = vip.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = vip.BindEnv("redis.db", "REDIS_DB")
	_ = vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	_ = vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = vip.BindEnv("rate_limit.max_requests", "RATE_LIMIT_MAX_REQUESTS")
	_ = vip.BindEnv("rate_limit.window_sec", "RATE_LIMIT_WINDOW_SEC")

	_ = vip.BindEnv("trivia.questions_per_page", "TRIVIA_QUESTIONS_PER_PAGE")

	_ = vip.BindEnv("log.level", "LOG_LEVEL")
	_ = vip.BindEnv("log.format", "LOG_FORMAT")

	_ = vip.BindEnv("metrics.enabled", "METRICS_ENABLED")
}

// Load загружает конфигурацию из файла и переменных окружения.
// Файл необязателен: без него используются переменные окружения и значения по умолчанию.
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			// Для явно заданного файла viper возвращает ошибку открытия, а не ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				log.Info().Str("path", configPath).Msg("config file not found, using env and defaults")
			} else {
				return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("db_driver", cfg.Database.Driver).
		Str("db_host", cfg.Database.Host).
		Str("db_name", cfg.Database.DBName).
		Bool("redis", cfg.Redis.RedisConfigured()).
		Bool("rate_limit", cfg.RateLimit.Enabled).
		Str("port", cfg.Server.Port).
		Msg("config loaded")

	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("sqlite database path is required (check DATABASE_PATH env var)")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.Trivia.QuestionsPerPage < 1 {
		return fmt.Errorf("trivia.questions_per_page must be >= 1, got %d", c.Trivia.QuestionsPerPage)
	}

	if c.RateLimit.Enabled {
		if !c.Redis.RedisConfigured() {
			return fmt.Errorf("rate limiting requires redis (check REDIS_ADDR env var)")
		}
		if c.RateLimit.MaxRequests < 1 || c.RateLimit.WindowSec < 1 {
			return fmt.Errorf("rate_limit.max_requests and rate_limit.window_sec must be >= 1")
		}
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required (check SERVER_PORT env var)")
	}
	return nil
}
