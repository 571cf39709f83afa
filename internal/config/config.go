package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
// SMTP settings are optional at load time; the mailer validates them on each
// delivery attempt so a worker without mail credentials can still export.
type Config struct {
	DBPath       string `envconfig:"DB_PATH" default:"./data/wastage.db"`
	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	ReportsDir   string `envconfig:"REPORTS_DIR" default:"./reports"`
	CSVDir       string `envconfig:"CSV_DIR" default:"./csv"`
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"10s"`

	SMTPHost string `envconfig:"SMTP_HOST"`
	SMTPPort int    `envconfig:"SMTP_PORT"`
	SMTPUser string `envconfig:"SMTP_USER"`
	SMTPPass string `envconfig:"SMTP_PASS"`
	SMTPFrom string `envconfig:"SMTP_FROM"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
