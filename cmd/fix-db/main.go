// Команда fix-db обслуживает SQL-миграции PostgreSQL: показывает версию,
// снимает dirty-состояние (-force N) и откатывает миграции (-down N).
package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/SiddharthSampath/Trivia-App/internal/config"
	"github.com/SiddharthSampath/Trivia-App/internal/logging"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	force := flag.Int("force", -1, "принудительно выставить версию миграций (снимает dirty)")
	down := flag.Int("down", 0, "откатить N последних миграций")
	flag.Parse()

	_ = godotenv.Load()
	logging.SetGlobal(logging.New("info", "console"))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.Database.Driver).Msg("fix-db works only with postgres")
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrate driver")
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.Database.MigrationsPath, "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrate instance")
	}

	switch {
	case *force >= 0:
		log.Info().Int("version", *force).Msg("forcing migration version")
		if err := m.Force(*force); err != nil {
			log.Fatal().Err(err).Msg("failed to force version")
		}
	case *down > 0:
		log.Info().Int("steps", *down).Msg("rolling back migrations")
		if err := m.Steps(-*down); err != nil {
			log.Fatal().Err(err).Msg("failed to roll back")
		}
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("no migrations applied")
		os.Exit(0)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read migration version")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migration state")
}
