package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server   ServerSettings   `mapstructure:"server"`
	Database DatabaseSettings `mapstructure:"database"`
	Redis    RedisSettings    `mapstructure:"redis"`
	Security SecuritySettings `mapstructure:"security"`
	Queue    QueueSettings    `mapstructure:"queue"`
	Logs     LogsSettings     `mapstructure:"logs"`
}

type ServerSettings struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseSettings struct {
	URL string `mapstructure:"url"`
}

type RedisSettings struct {
	URL string `mapstructure:"url"`
}

type SecuritySettings struct {
	JWTKey         string `mapstructure:"jwt-key"`
	SessionMinutes int    `mapstructure:"session-minutes"`
}

// QueueSettings configures the OTP mail queue. With an empty URL the app
// falls back to logging codes instead of publishing them.
type QueueSettings struct {
	URL        string `mapstructure:"url"`
	EmailQueue string `mapstructure:"email-queue"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

// Load reads config.yml if present, then lets environment variables win.
// A .env/.env.local file is read first so local runs need no exported
// variables.
func Load() *Configuration {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logrus.Info(".env not found, using environment variables")
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("security.session-minutes", 60)
	viper.SetDefault("queue.email-queue", "otp-emails")
	viper.SetDefault("logs.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		logrus.WithError(err).Info("config.yml not found, using defaults")
	}

	var cfg Configuration
	if err := viper.Unmarshal(&cfg); err != nil {
		logrus.WithError(err).Panic("cannot unmarshal configuration")
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Security.JWTKey = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.Queue.URL = v
	}

	return &cfg
}

// SetupLogging configures logrus from the logs section.
func (c *Configuration) SetupLogging() {
	level, err := logrus.ParseLevel(c.Logs.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.Logs.EnableJSONOutput {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
