package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SiddharthSampath/Trivia-App/internal/config"
)

// NewDB открывает подключение к базе согласно драйверу из конфигурации
func NewDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresDB(cfg.PostgresConnectionString(), gormCfg)
	case config.DriverSQLite:
		return NewSQLiteDB(cfg.Path, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// NewPostgresDB создает новое подключение к PostgreSQL
func NewPostgresDB(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настройка пула соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Максимальное число открытых соединений
	sqlDB.SetMaxOpenConns(25)

	// Максимальное число простаивающих соединений
	sqlDB.SetMaxIdleConns(10)

	// Максимальное время жизни соединения
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// NewSQLiteDB открывает файл SQLite (или ":memory:").
// SQLite не допускает параллельных писателей, поэтому пул ограничен одним соединением.
func NewSQLiteDB(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// MigrateDB приводит схему к актуальному состоянию.
// Для PostgreSQL применяются SQL-миграции из cfg.MigrationsPath,
// для SQLite — AutoMigrate переданных моделей.
func MigrateDB(ctx context.Context, db *gorm.DB, cfg config.DatabaseConfig, models ...interface{}) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		return migratePostgresDB(db, cfg.MigrationsPath)
	case config.DriverSQLite:
		return migrateSQLiteDB(ctx, db, models)
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

func migratePostgresDB(db *gorm.DB, migrationsPath string) error {
	log.Info().Str("path", migrationsPath).Msg("applying database migrations")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get *sql.DB from *gorm.DB: %w", err)
	}

	// Убедимся, что подключение к БД активно
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database before migration: %w", err)
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver for migrate: %w", err)
	}

	m, err := migrateV4.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres", // Имя базы данных (для логирования в migrate)
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrateV4.ErrNoChange):
		log.Info().Msg("no new migrations, database is up to date")
	case err != nil:
		return fmt.Errorf("failed to apply migrations: %w", err)
	default:
		log.Info().Msg("migrations applied")
	}
	return nil
}

func migrateSQLiteDB(ctx context.Context, db *gorm.DB, models []interface{}) error {
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto-migrate sqlite schema: %w", err)
	}
	log.Info().Int("models", len(models)).Msg("sqlite schema migrated")
	return nil
}

// GetSQLDB возвращает базовый *sql.DB из *gorm.DB
func GetSQLDB(gormDB *gorm.DB) (*sql.DB, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB, nil
}

// Ping проверяет доступность базы
func Ping(gormDB *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := GetSQLDB(gormDB)
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
