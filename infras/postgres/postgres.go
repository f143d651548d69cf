package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"hotel/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName  = "postgres"
	pingTimeout = 5 * time.Second
)

// Connection splits reads from writes. Both handles may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// DSN renders node as a postgres URL with credentials escaped. The configured prefix is
// prepended to the database name so test runs never touch the real schema.
func DSN(cfg *config.Config, node config.PostgresNode) string {
	query := url.Values{}

	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(cfg *config.Config, role string, node config.PostgresNode) *sqlx.DB {
	conf := cfg.DB.Postgres
	attempts := max(conf.MaxRetry, 1)
	logger := log.With().Str("role", role).Str("host", node.Host).Str("db", conf.Prefix+node.Name).Logger()

	db, err := sqlx.Open(driverName, DSN(cfg, node))
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid database configuration")
	}

	db.SetMaxOpenConns(conf.MaxOpenConns)
	db.SetMaxIdleConns(conf.MaxIdleConns)
	db.SetConnMaxLifetime(conf.ConnMaxLifetime)

	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = db.PingContext(ctx)
		cancel()

		if err == nil {
			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Warn().Err(err).Int("attempt", attempt).Int("of", attempts).Msg("Database not reachable")

		if attempt < attempts {
			time.Sleep(time.Duration(conf.RetryWaitTime*attempt) * time.Second)
		}
	}

	logger.Fatal().Err(err).Msg("Giving up on database")

	return nil
}

func (c *Connection) Close() error {
	readErr := c.Read.Close()

	if err := c.Write.Close(); err != nil {
		return fmt.Errorf("failed to close write connection: %w", err)
	}

	if readErr != nil {
		return fmt.Errorf("failed to close read connection: %w", readErr)
	}

	return nil
}

// WithTransaction runs fn inside a write transaction, committing on success and rolling back otherwise.
func (c *Connection) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LockTx takes a transaction scoped advisory lock on key. It is released on commit or rollback.
func LockTx(ctx context.Context, tx *sqlx.Tx, key string) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("failed to acquire advisory lock: %w", err)
	}

	return nil
}
