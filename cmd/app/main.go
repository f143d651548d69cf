package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/password"
)

//go:generate swag init -d ../../ -g cmd/app/main.go -o ../../docs --exclude ../../_examples

// @title Hotel Booking API
// @version 1.0
// @description Room availability, pricing and reservation management for a single property.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)
	logger.SetLogFile(cfg)

	password.SetCost(cfg.Auth.BcryptCost)

	http := di.InitializeService()
	http.Serve()
}
