package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Devotions DevotionsConfig
	Dispatch  DispatchConfig
}

type AppConfig struct {
	Name               string
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DevotionsConfig struct {
	// Dir holds the per-year stores (devotions_<year>.json) plus
	// verses.json and studies.json.
	Dir     string
	SiteURL string
}

type DispatchConfig struct {
	Topic           string
	MaxMessageChars int
	// NatsURL enables the delivery bridge when set. Empty keeps dispatch
	// results local to the job store.
	NatsURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "SoulStart"),
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Devotions: DevotionsConfig{
			Dir:     getEnv("DEVOTIONS_ROOT", "data/devotions"),
			SiteURL: getEnv("SITE_URL", "https://soulstart.onrender.com/"),
		},
		Dispatch: DispatchConfig{
			Topic:           getEnv("DISPATCH_TOPIC_NAME", "DISPATCH_DEVOTION"),
			MaxMessageChars: getEnvAsInt("MAX_RECOMMENDED_CHARS", 4000),
			NatsURL:         getEnv("NATS_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
