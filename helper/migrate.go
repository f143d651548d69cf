package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/postgres"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionStepUp  Action = "step-up"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
	ActionForce   Action = "force"
)

var ErrUnknownAction = errors.New("unknown migration action")

// DatabaseURL points migrate at the write node and its bookkeeping table.
func DatabaseURL(config *config.Config) string {
	dsn := postgres.DSN(config, config.DB.Postgres.Write)

	if table := config.DB.Postgres.MigrationTable; table != "" {
		parsed, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}

		query := parsed.Query()
		query.Set("x-migrations-table", table)
		parsed.RawQuery = query.Encode()

		return parsed.String()
	}

	return dsn
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, DatabaseURL(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}

// Runner applies one action. Force takes the target version as its only argument.
func Runner(config *config.Config, action Action, args ...string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = ignoreNoChange(mig.Up())
	case ActionDown:
		err = ignoreNoChange(mig.Steps(-1))
	case ActionStepUp:
		err = ignoreNoChange(mig.Steps(1))
	case ActionDrop:
		err = ignoreNoChange(mig.Down())
	case ActionVersion:
		version, dirty, verr := mig.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			log.Info().Msg("No migration has been applied yet")

			return nil
		}

		if verr != nil {
			return fmt.Errorf("error reading migration version: %w", verr)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration version")

		return nil
	case ActionForce:
		if len(args) == 0 {
			return errors.New("force requires a target version")
		}

		version, perr := strconv.Atoi(args[0])
		if perr != nil {
			return fmt.Errorf("invalid migration version %q: %w", args[0], perr)
		}

		err = mig.Force(version)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migration completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}
