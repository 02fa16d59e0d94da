package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	StateDir    string
	ServerPort  string
	Environment string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		APIBaseURL:  getEnv("VENDEYA_API_URL", "http://localhost:8080/api"),
		HTTPTimeout: time.Duration(getEnvAsInt64("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		StateDir:    getEnv("VENDEYA_STATE_DIR", defaultStateDir()),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	return config, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vendeya"
	}
	return filepath.Join(home, ".vendeya")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
