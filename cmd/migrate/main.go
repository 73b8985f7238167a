// Command migrate applies the ledger schema in db/migrations.
// Usage: go run ./cmd/migrate [up|down|steps N|force V|version]
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"khata/internal/config"
	"khata/internal/logger"
)

const usage = "Usage: migrate [up|down|steps N|force V|version]"

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Setup(cfg.Log, nil); err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	if len(args) < 1 {
		return errors.New(usage)
	}

	source := os.Getenv("KHATA_MIGRATIONS_PATH")
	if source == "" {
		source = "file://db/migrations"
	}
	m, err := migrate.New(source, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("closing migrate instance")
		}
	}()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up: %w", err)
		}
		log.Info().Msg("migrations applied")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down: %w", err)
		}
		log.Info().Msg("migrations reverted")

	case "steps":
		n, err := intArg(args, "steps")
		if err != nil {
			return err
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration steps: %w", err)
		}
		log.Info().Int("steps", n).Msg("migration steps applied")

	case "force":
		v, err := intArg(args, "force")
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("forcing version %d: %w", v, err)
		}
		log.Info().Int("version", v).Msg("migration version forced")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("reading version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return nil
}

func intArg(args []string, cmd string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number argument", cmd)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s argument: %w", cmd, err)
	}
	return n, nil
}
