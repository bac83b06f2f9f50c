package main

import (
	"context"

	"medibook/internal/users/handler"
	"medibook/internal/users/repository"
	"medibook/internal/users/service"
	"medibook/internal/users/validator"
	"medibook/pkg/app"
	"medibook/pkg/config"
	"medibook/pkg/token"
)

const serviceName = "users"

func main() {
	cfg := config.Load(serviceName)
	cfg.SetMongo()

	patientRepo := repository.NewMongoPatientRepository(cfg)

	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := patientRepo.EnsureIndexes(indexCtx); err != nil {
		cfg.Log.Fatal("Failed to create indexes", "error", err)
	}

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTLifetime)
	authService := service.NewAuthService(patientRepo, issuer, validator.NewUserValidator(), cfg)

	application := app.NewApplication(cfg)
	application.SetApp(handler.NewAuthHandler(authService, issuer, cfg))
	application.Run()
}
