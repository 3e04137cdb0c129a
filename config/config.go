package config

import (
	"os"
	"strconv"
)

type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Storage StorageConfig
}

type AppConfig struct {
	Env string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type StorageConfig struct {
	Path string
}

// LoadEnv reads configuration from the environment with sensible defaults
// for a single-terminal deployment.
func LoadEnv() *Config {
	return &Config{
		App: AppConfig{
			Env: getEnv("PETPOS_ENV", "dev"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("PETPOS_LOG_LEVEL", "info"),
			Encoding:          getEnv("PETPOS_LOG_ENCODING", "console"),
			DisableCaller:     getEnvBool("PETPOS_LOG_DISABLE_CALLER", true),
			DisableStacktrace: getEnvBool("PETPOS_LOG_DISABLE_STACKTRACE", true),
		},
		Storage: StorageConfig{
			Path: getEnv("PETPOS_DB_PATH", "petpos.db"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
