package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/config.yaml"

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	RedisAddr   string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	HTTPServer  `yaml:"http_server"`
	Booking     Booking   `yaml:"booking"`
	RateLimit   RateLimit `yaml:"rate_limit"`
	Tracing     Tracing   `yaml:"tracing"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

type Booking struct {
	LockTTL                 time.Duration `yaml:"lock_ttl" env-default:"10s"`
	AdvanceDays             int           `yaml:"advance_days" env-default:"30"`
	CancellationHoursBefore int           `yaml:"cancellation_hours_before" env-default:"2"`
	ReminderHoursBefore     int           `yaml:"reminder_hours_before" env-default:"24"`
	SalonName               string        `yaml:"salon_name" env-default:"Nail Salon"`
}

// RateLimit applies to the public booking endpoints only.
// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP;
// enable it only behind a proxy that sets those headers.
type RateLimit struct {
	RPS        float64       `yaml:"rps" env-default:"1"`
	Burst      int           `yaml:"burst" env-default:"5"`
	IdleTTL    time.Duration `yaml:"idle_ttl" env-default:"10m"`
	TrustProxy bool          `yaml:"trust_proxy" env:"RATE_LIMIT_TRUST_PROXY" env-default:"false"`
}

type Tracing struct {
	Enabled     bool    `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	ServiceName string  `yaml:"service_name" env-default:"nail-salon-scheduler"`
	Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
	SampleRatio float64 `yaml:"sample_ratio" env-default:"1"`
}

// Load reads the YAML file at path. Environment variables override file values.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	return cfg
}
