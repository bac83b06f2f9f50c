package config

import (
	"os"
	"strconv"
	"time"
)

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret   = "JWT_SECRET"
	EnvJWTLifetime = "JWT_LIFETIME"

	EnvUserServiceURL    = "USER_SERVICE_URL"
	EnvDoctorServiceURL  = "DOCTOR_SERVICE_URL"
	EnvConsultServiceURL = "CONSULT_SERVICE_URL"
	EnvProbeTimeout      = "PROBE_TIMEOUT"

	EnvKafkaBrokers          = "KAFKA_BROKERS"
	EnvKafkaAppointmentTopic = "KAFKA_APPOINTMENT_TOPIC"

	EnvSlotStartOfDay = "SLOT_START_OF_DAY"
	EnvSlotEndOfDay   = "SLOT_END_OF_DAY"
	EnvSlotDuration   = "SLOT_DURATION"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

func getEnvStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
