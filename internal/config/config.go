package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the runtime configuration of the service.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	SchedulePolicy string
}

// LoadConfig reads configuration from .env, falling back to the process
// environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "reward_engine"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SchedulePolicy: getEnv("SCHEDULE_POLICY", "variable"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
