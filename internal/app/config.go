package app

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"quiz-service/internal/database"
)

type Config struct {
	GRPCPort       string          `envconfig:"GRPC_PORT" default:":9090" validate:"required"`
	HTTPPort       string          `envconfig:"HTTP_PORT" default:":8080" validate:"required"`
	LogLevel       string          `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat      string          `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json console"`
	HealthInterval time.Duration   `envconfig:"HEALTH_INTERVAL" default:"30s" validate:"gt=0"`
	DB             database.Config `envconfig:"DB"`
}

func NewConfigFromEnv() (cfg Config, err error) {
	if err = envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	err = validator.New().Struct(cfg)
	return cfg, err
}
