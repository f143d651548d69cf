package middleware

import (
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	redisStore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const (
	cacheKeyRateLimit    = "limiter"
	cacheKeyBookingLimit = "limiter:booking"
)

// RateLimit counts requests per client address and user agent in a fixed window kept in the
// cache. A cache outage lets requests through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			count, err := a.cache.Incr(r.Context(), cacheKey, windowSecs)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter cache unavailable")
				next.ServeHTTP(w, r)

				return
			}

			if count > int64(maxReqs) {
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(maxReqs)-count), 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

// BookingLimit throttles reservation writes per client address with a redis backed
// counter, e.g. "10-M" for ten bookings a minute. Store errors reject the request.
func (a *appMiddleware) BookingLimit() func(http.Handler) http.Handler {
	passthrough := func(next http.Handler) http.Handler { return next }

	if !a.config.App.BookingLimiter.Enable || a.client == nil {
		return passthrough
	}

	rate, err := limiter.NewRateFromFormatted(a.config.App.BookingLimiter.Rate)
	if err != nil {
		log.Error().Err(err).Str("rate", a.config.App.BookingLimiter.Rate).Msg("invalid booking limiter rate, limiter disabled")

		return passthrough
	}

	store, err := redisStore.NewStoreWithOptions(a.client, limiter.StoreOptions{
		Prefix:   cacheKeyBookingLimit,
		MaxRetry: 3, //nolint:mnd
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking limiter store, limiter disabled")

		return passthrough
	}

	mw := stdlib.NewMiddleware(limiter.New(store, rate),
		stdlib.WithKeyGetter(a.getClientIP),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, _ *http.Request) {
			response.WithRequestLimitExceeded(w)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("booking limiter store error")
			response.WithUnhealthy(w)
		}),
	)

	return mw.Handler
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
