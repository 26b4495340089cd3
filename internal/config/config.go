package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret         string
	AdminEmail        string
	AdminName         string
	AdminPasswordHash string

	KafkaBrokers    []string
	KafkaOrderTopic string

	CORSOrigin string
}

// LoadConfig reads .env (if present) and the process environment. Unset
// optional values get defaults; an empty DBHost means preferences are kept
// in memory only.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		AppEnv:            getEnv("APP_ENV", "development"),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            getEnv("DB_PORT", "5432"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminName:         getEnv("ADMIN_NAME", "Admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		KafkaBrokers:      splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic:   getEnv("KAFKA_ORDER_TOPIC", "orders.status-changed"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
