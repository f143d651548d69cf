package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		LogFile  struct {
			Path       string `envconfig:"PATH"`
			MaxSizeMB  int    `envconfig:"MAX_SIZE_MB"`
			MaxBackups int    `envconfig:"MAX_BACKUPS"`
			MaxAgeDays int    `envconfig:"MAX_AGE_DAYS"`
			Compress   bool   `envconfig:"COMPRESS"`
		} `envconfig:"LOG_FILE"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		BookingLimiter struct {
			Enable bool   `envconfig:"ENABLE"`
			Rate   string `envconfig:"RATE" default:"10-M"`
		} `envconfig:"BOOKING_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
			PoolSize    int           `envconfig:"POOL_SIZE" default:"20"`
			DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	Auth struct {
		BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`
	} `envconfig:"AUTH"`

	DB struct {
		Postgres struct {
			MaxRetry        int           `envconfig:"MAX_RETRY" default:"5"`
			RetryWaitTime   int           `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable  string        `envconfig:"MIGRATION_TABLE"`
			AutoMigrate     bool          `envconfig:"AUTO_MIGRATE"`
			Prefix          string        `envconfig:"PREFIX"`
			MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"10"`
			MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"10"`
			ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
			Read            PostgresNode  `envconfig:"READ"`
			Write           PostgresNode  `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topic struct {
			Notification string `envconfig:"NOTIFICATION" default:"booking.notification"`
		} `envconfig:"TOPIC"`
	} `envconfig:"KAFKA"`

	Booking struct {
		TaxRate       float64 `envconfig:"TAX_RATE" default:"0.16"`
		MaxNights     int     `envconfig:"MAX_NIGHTS" default:"30"`
		CodePrefix    string  `envconfig:"CODE_PREFIX" default:"CC"`
		InsertRetries int     `envconfig:"INSERT_RETRIES" default:"3"`
		RecentLimit   int     `envconfig:"RECENT_LIMIT" default:"10"`
		ReportDir     string  `envconfig:"REPORT_DIR" default:"reports"`
	} `envconfig:"BOOKING"`

	Seed struct {
		AdminEmail    string `envconfig:"ADMIN_EMAIL"`
		AdminPassword string `envconfig:"ADMIN_PASSWORD"`
		Years         int    `envconfig:"YEARS" default:"2"`
		Migrate       bool   `envconfig:"MIGRATE"`
	} `envconfig:"SEED"`

	Payment struct {
		KeyID         string `envconfig:"KEY_ID"`
		KeySecret     string `envconfig:"KEY_SECRET"`
		WebhookSecret string `envconfig:"WEBHOOK_SECRET"`
		Currency      string `envconfig:"CURRENCY" default:"USD"`
	} `envconfig:"PAYMENT"`

	Mail struct {
		Host       string `envconfig:"HOST"`
		Port       int    `envconfig:"PORT"`
		Username   string `envconfig:"USERNAME"`
		Password   string `envconfig:"PASSWORD"`
		From       string `envconfig:"FROM"`
		MaxRetry   int    `envconfig:"MAX_RETRY" default:"3"`
		RetryDelay int    `envconfig:"RETRY_DELAY_SECONDS" default:"2"`
	} `envconfig:"MAIL"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string        `envconfig:"API_ENDPOINT"`
			AccessKeyID     string        `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string        `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string        `envconfig:"BUCKET_NAME"`
			PublicDomain    string        `envconfig:"PUBLIC_DOMAIN"`
			Region          string        `envconfig:"REGION" default:"auto"`
			PresignTTL      time.Duration `envconfig:"PRESIGN_TTL" default:"15m"`
		} `envconfig:"S3"`
	}
}

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
