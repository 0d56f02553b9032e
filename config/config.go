package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPrefix string
	Debug     bool
	AppPort   string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	NewsAPIKey     string
	AllowedOrigins []string

	JWTSecret       string
	JWTAlgorithm    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		if _, exists := os.Stat(".env"); exists == nil {
			log.Println("Warning: .env file exists but couldn't be loaded:", err)
		}
	}

	jwtSecret := getEnv("JWT_SECRET_KEY", "")
	if jwtSecret == "" {
		jwtSecret = generateRandomSecret("JWT_SECRET_KEY")
	}

	cfg := &Config{
		APIPrefix:       getEnv("API_PREFIX", "/api"),
		Debug:           getEnv("DEBUG", "false") == "true",
		AppPort:         getEnv("APP_PORT", "8000"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		NewsAPIKey:      getEnv("NEWSAPI_API_KEY", ""),
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		JWTSecret:       jwtSecret,
		JWTAlgorithm:    getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
	}

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = getEnv("DB_PASSWORD", "password")
	cfg.DBName = getEnv("DB_NAME", "news_app")

	if cfg.NewsAPIKey == "" {
		log.Println("Warning: NEWSAPI_API_KEY not set, article listing will fail")
	}

	log.Printf("Configuration loaded:")
	log.Printf("  API_PREFIX: %s", cfg.APIPrefix)
	log.Printf("  APP_PORT: %s", cfg.AppPort)
	log.Printf("  DEBUG: %v", cfg.Debug)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using default %d", key, value, fallback)
		return fallback
	}
	return n
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func generateRandomSecret(name string) string {
	log.Printf("Warning: %s not set, generating random secret (will not persist across restarts)", name)

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate random secret for %s: %v", name, err)
	}

	return base64.StdEncoding.EncodeToString(b)
}
