package config

import (
	"fmt"

	"github.com/Dan9191/networth-service/internal/period"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port                 string
	DBConn               string
	LogLevel             string
	JWTSecret            string
	CBRURL               string
	MigrationsPath       string
	SMTPHost             string
	SMTPPort             string
	SMTPUsername         string
	SMTPPassword         string
	SenderEmail          string
	Granularity          period.Granularity
	ForecastHorizonYears int
	SnapshotSchedule     string
	DigestSchedule       string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_CONN", "host=localhost port=5436 user=test password=test dbname=networth sslmode=disable")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("JWT_SECRET", "secret")
	v.SetDefault("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", "25")
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SENDER_EMAIL", "no-reply@localhost")
	v.SetDefault("PERIOD_GRANULARITY", "quarter")
	v.SetDefault("FORECAST_HORIZON_YEARS", 5)
	v.SetDefault("SNAPSHOT_SCHEDULE", "0 2 * * *")
	v.SetDefault("DIGEST_SCHEDULE", "0 8 1 * *")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	granularity, err := period.ParseGranularity(v.GetString("PERIOD_GRANULARITY"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                 v.GetString("PORT"),
		DBConn:               v.GetString("DB_CONN"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		CBRURL:               v.GetString("CBR_URL"),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		SMTPHost:             v.GetString("SMTP_HOST"),
		SMTPPort:             v.GetString("SMTP_PORT"),
		SMTPUsername:         v.GetString("SMTP_USERNAME"),
		SMTPPassword:         v.GetString("SMTP_PASSWORD"),
		SenderEmail:          v.GetString("SENDER_EMAIL"),
		Granularity:          granularity,
		ForecastHorizonYears: v.GetInt("FORECAST_HORIZON_YEARS"),
		SnapshotSchedule:     v.GetString("SNAPSHOT_SCHEDULE"),
		DigestSchedule:       v.GetString("DIGEST_SCHEDULE"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ForecastHorizonYears < 1 || cfg.ForecastHorizonYears > 30 {
		return nil, fmt.Errorf("FORECAST_HORIZON_YEARS must be between 1 and 30, got %d", cfg.ForecastHorizonYears)
	}
	for key, schedule := range map[string]string{"SNAPSHOT_SCHEDULE": cfg.SnapshotSchedule, "DIGEST_SCHEDULE": cfg.DigestSchedule} {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	return cfg, nil
}
