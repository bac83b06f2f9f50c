package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"medibook/pkg/client"
	"medibook/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	JWTSecret   string
	JWTLifetime time.Duration

	// Gateway targets. UserServiceURL is the primary for the auth
	// prefix; ConsultServiceURL hosts the backup-login fallback.
	UserServiceURL    string
	DoctorServiceURL  string
	ConsultServiceURL string
	ProbeTimeout      time.Duration

	KafkaBrokers          []string
	KafkaAppointmentTopic string

	SlotStartOfDay string
	SlotEndOfDay   string
	SlotDuration   time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecret:   getEnvStr(EnvJWTSecret, ""),
		JWTLifetime: getEnvDuration(EnvJWTLifetime, DefaultJWTLifetime),

		UserServiceURL:    getEnvStr(EnvUserServiceURL, DefaultUserServiceURL),
		DoctorServiceURL:  getEnvStr(EnvDoctorServiceURL, DefaultDoctorServiceURL),
		ConsultServiceURL: getEnvStr(EnvConsultServiceURL, DefaultConsultServiceURL),
		ProbeTimeout:      getEnvDuration(EnvProbeTimeout, DefaultProbeTimeout),

		KafkaBrokers:          splitList(getEnvStr(EnvKafkaBrokers, "")),
		KafkaAppointmentTopic: getEnvStr(EnvKafkaAppointmentTopic, DefaultKafkaAppointmentTopic),

		SlotStartOfDay: getEnvStr(EnvSlotStartOfDay, DefaultSlotStartOfDay),
		SlotEndOfDay:   getEnvStr(EnvSlotEndOfDay, DefaultSlotEndOfDay),
		SlotDuration:   getEnvDuration(EnvSlotDuration, DefaultSlotDuration),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.FormatJSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}
	if !timeOfDayRegex.MatchString(cfg.SlotStartOfDay) {
		problems = append(problems, fmt.Sprintf("SlotStartOfDay must be in HH:MM format, got: %s", cfg.SlotStartOfDay))
	}
	if !timeOfDayRegex.MatchString(cfg.SlotEndOfDay) {
		problems = append(problems, fmt.Sprintf("SlotEndOfDay must be in HH:MM format, got: %s", cfg.SlotEndOfDay))
	}
	if cfg.SlotDuration < time.Minute {
		problems = append(problems, fmt.Sprintf("SlotDuration must be at least one minute, got: %s", cfg.SlotDuration))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
