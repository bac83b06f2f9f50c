package main

import (
	"context"

	"medibook/internal/doctors/handler"
	"medibook/internal/doctors/repository"
	"medibook/internal/doctors/service"
	"medibook/internal/doctors/validator"
	"medibook/pkg/app"
	"medibook/pkg/client"
	"medibook/pkg/config"
	"medibook/pkg/events"
)

const serviceName = "doctors"

func main() {
	cfg := config.Load(serviceName)
	cfg.SetMongo()

	availRepo := repository.NewMongoAvailabilityRepository(cfg)
	apptRepo := repository.NewMongoAppointmentRepository(cfg)
	doctorRepo := repository.NewMongoDoctorRepository(cfg)

	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := availRepo.EnsureIndexes(indexCtx); err != nil {
		cfg.Log.Fatal("Failed to create indexes", "error", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAppointmentTopic, serviceName)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka publisher", "error", err)
		}
		publisher = kafkaPublisher
	} else {
		cfg.Log.Warn("No Kafka brokers configured, appointment events disabled")
	}

	docValidator := validator.NewDoctorValidator(cfg.Log)
	consultClient := client.NewHttpClient(cfg.ConsultServiceURL, cfg.RequestTimeout)

	bookingService := service.NewBookingService(availRepo, apptRepo, doctorRepo, publisher, docValidator, cfg)
	doctorService := service.NewDoctorService(doctorRepo, apptRepo, consultClient, docValidator, cfg)

	application := app.NewApplication(cfg)
	application.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	application.SetApp(
		handler.NewBookingHandler(bookingService, cfg),
		handler.NewDoctorHandler(doctorService, cfg),
	)
	application.Run()
}
