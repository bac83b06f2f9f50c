package main

import (
	"medibook/internal/consults/handler"
	"medibook/internal/consults/repository"
	"medibook/internal/consults/service"
	"medibook/internal/consults/validator"
	usersrepo "medibook/internal/users/repository"
	"medibook/pkg/app"
	"medibook/pkg/config"
	"medibook/pkg/token"
)

const serviceName = "consults"

func main() {
	cfg := config.Load(serviceName)
	cfg.SetMongo()

	consultRepo := repository.NewMongoConsultRepository(cfg)
	patientRepo := usersrepo.NewMongoPatientRepository(cfg)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTLifetime)
	consultService := service.NewConsultService(consultRepo, validator.NewConsultValidator(), cfg)
	backupService := service.NewBackupAuthService(patientRepo, issuer, cfg)

	application := app.NewApplication(cfg)
	application.SetApp(handler.NewConsultHandler(consultService, backupService, cfg))
	application.Run()
}
