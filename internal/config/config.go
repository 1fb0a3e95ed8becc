package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string

	// MaxWeeklyHours caps the planned hours a user may record per week.
	MaxWeeklyHours int
	// ProjectNames is the fixed project list tasks must belong to.
	ProjectNames []string
	// DefaultInitialPassword is assigned to every seeded account; each
	// account must replace it on first login.
	DefaultInitialPassword string
}

func Load() *Config {
	// Optional .env for local development; real env vars win.
	_ = godotenv.Load()

	return &Config{
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DBUser:                 getEnv("DB_USER", "planner"),
		DBPassword:             getEnv("DB_PASSWORD", "plannerpassword"),
		DBName:                 getEnv("DB_NAME", "weekly_planner"),
		RedisHost:              getEnv("REDIS_HOST", "localhost"),
		RedisPort:              getEnv("REDIS_PORT", "6379"),
		SessionSecret:          getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:                getEnv("GIN_MODE", "debug"),
		MaxWeeklyHours:         getEnvInt("MAX_WEEKLY_HOURS", 100),
		ProjectNames:           getEnvList("PROJECT_NAMES", []string{"Viruta", "Botillería", "Interno", "General"}),
		DefaultInitialPassword: getEnv("DEFAULT_INITIAL_PASSWORD", "changeme"),
	}
}

// HasProject reports whether name is in the configured project list.
func (c *Config) HasProject(name string) bool {
	for _, p := range c.ProjectNames {
		if p == name {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return defaultValue
	}
	return names
}
