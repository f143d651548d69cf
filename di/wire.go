//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/mail"
	"hotel/infras/otel"
	"hotel/infras/payment"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	authService "hotel/internal/domains/auth/service"
	availabilityService "hotel/internal/domains/availability/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	dashboardService "hotel/internal/domains/dashboard/service"
	notificationService "hotel/internal/domains/notification/service"
	paymentService "hotel/internal/domains/payment/service"
	pricingService "hotel/internal/domains/pricing/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"

	authHandler "hotel/internal/handlers/auth"
	availabilityHandler "hotel/internal/handlers/availability"
	bookingHandler "hotel/internal/handlers/booking"
	dashboardHandler "hotel/internal/handlers/dashboard"
	paymentHandler "hotel/internal/handlers/payment"
	pricingHandler "hotel/internal/handlers/pricing"
	roomHandler "hotel/internal/handlers/room"
	userHandler "hotel/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mail.New,
	payment.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogueDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewSeason,
	provideRateTable,
	pricingService.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	availabilityService.New,
	notificationService.New,
	bookingService.New,
	paymentService.New,
	dashboardService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var domains = wire.NewSet(
	catalogueDomain,
	bookingDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	availabilityHandler.New,
	pricingHandler.New,
	roomHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeNotifier() notificationService.Notification {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		mail.New,
		notificationService.New,
	)

	return nil
}
