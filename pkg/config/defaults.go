package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "medibook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultJWTLifetime = 1 * time.Hour

	DefaultUserServiceURL    = "http://localhost:8081"
	DefaultDoctorServiceURL  = "http://localhost:8082"
	DefaultConsultServiceURL = "http://localhost:8083"
	DefaultProbeTimeout      = 2 * time.Second

	DefaultKafkaAppointmentTopic = "appointment-events"

	DefaultSlotStartOfDay = "10:00"
	DefaultSlotEndOfDay   = "16:00"
	DefaultSlotDuration   = 30 * time.Minute

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLogLevel = "info"
)
