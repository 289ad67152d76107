package config

import "github.com/caarlos0/env/v11"

// Config holds the application configuration, populated from environment
// variables.
type Config struct {
	ServerPort   int    `env:"PORT" envDefault:"8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./citelinks.db"`
	CORSOrigin   string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`

	// SMTP settings for the notifier. When SMTPHost is empty the mailer is
	// replaced by a log-only notifier.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"noreply@citelinks.local"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
