package redis

import (
	"context"
	"hotel/config"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const minPingTimeout = time.Second

// New connects to the primary and refuses to start without it: the booking limiter and
// every read cache share this client.
func New(cfg *config.Config) *goRedis.Client {
	conf := cfg.Cache.Redis
	addr := net.JoinHostPort(conf.Primary.Host, conf.Primary.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:        addr,
		Password:    conf.Primary.Password,
		DB:          conf.Primary.DB,
		ClientName:  cfg.App.Name,
		PoolSize:    conf.PoolSize,
		DialTimeout: conf.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), max(conf.DialTimeout, minPingTimeout))
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("Failed to connect to Redis")
	}

	log.Info().Str("addr", addr).Int("db", conf.Primary.DB).Msg("Connected to Redis")

	return client
}
