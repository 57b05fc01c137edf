package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	StoreDriver string // sqlite, postgres or redis
	StorageKey  string
	MaxUploadMB int64

	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string

	// EnvFileLoaded reports whether a .env file was found. The logger does not
	// exist yet while config loads, so callers log the warning themselves.
	EnvFileLoaded bool
}

func LoadConfig() *Config {
	err := godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		StoreDriver:   getEnv("STORE_DRIVER", "sqlite"),
		StorageKey:    getEnv("STORAGE_KEY", "callsheet:workspace"),
		MaxUploadMB:   int64(getEnvInt("MAX_UPLOAD_MB", 10)),
		DBPath:        getEnv("DB_PATH", "./callsheet.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "callsheet"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		EnvFileLoaded: err == nil,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
