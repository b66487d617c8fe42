package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	SessionSecret string
	ServerAddr    string
	UploadDir     string
}

func LoadConfig() Config {
	// Missing .env is fine, the real environment still applies.
	_ = godotenv.Load()

	return Config{
		DBUser:        getEnv("DB_USER", ""),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBHost:        getEnv("DB_HOST", ""),
		DBPort:        getEnv("DB_PORT", ""),
		DBName:        getEnv("DB_NAME", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
