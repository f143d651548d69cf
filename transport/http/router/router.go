package router

import (
	"hotel/config"
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/availability"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/dashboard"
	"hotel/internal/handlers/payment"
	"hotel/internal/handlers/pricing"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/user"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	_ "hotel/docs" // swagger spec

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Availability availability.Handler
	Pricing      pricing.Handler
	Room         room.Handler
	Booking      booking.Handler
	Payment      payment.Handler
	Dashboard    dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	authRole       middleware.AuthRole
	cfg            *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)

	if r.cfg.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.cfg.App.CORS.AllowedOrigins,
			AllowedMethods:   r.cfg.App.CORS.AllowedMethods,
			AllowedHeaders:   r.cfg.App.CORS.AllowedHeaders,
			AllowCredentials: r.cfg.App.CORS.AllowCredentials,
			MaxAge:           r.cfg.App.CORS.MaxAgeSeconds,
		}))
	}

	if r.cfg.Server.Env != constant.ServerEnvProduction {
		router.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.app.Tracing)
		routerGroup.Use(r.app.RateLimit())
		routerGroup.Use(r.authRole.APIKey)
		routerGroup.Use(r.authRole.Auth)
		routerGroup.Use(r.authRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		authRole:       authRole,
		cfg:            cfg,
	}
}
