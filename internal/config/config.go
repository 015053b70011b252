package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Port       int  `env:"PORT" envDefault:"8080"`

	Secret           string `env:"SECRET,required"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	RabbitmqReminderExchange string `env:"RABBITMQ_REMINDER_EXCHANGE" envDefault:"taskflow"`
	RabbitmqReminderDueQueue string `env:"RABBITMQ_REMINDER_DUE_QUEUE" envDefault:"reminder_due"`

	// ReminderRestoreCrontab drives the periodic sweep that re-arms
	// timers for tasks created by other instances or lost to restarts.
	ReminderRestoreCrontab string `env:"REMINDER_RESTORE_CRONTAB" envDefault:"@every 15m"`

	AwsRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY" envDefault:""`
	AwsSecretKey   string `env:"AWS_SECRET_KEY" envDefault:""`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER" envDefault:"noreply@taskflow.app"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

func Load() (*Config, error) {
	// Missing .env is fine, variables may come from the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
