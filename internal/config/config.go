package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration read from the environment.
type Config struct {
	// DBPath overrides the default database location when set.
	DBPath string

	// CatalogPath points at a replacement content catalog. Empty uses the
	// built-in one.
	CatalogPath string

	LogLevel  string
	LogFormat string
	// LogFile is where logs go while the TUI owns the terminal. Empty means
	// a disha.log next to the database.
	LogFile string

	BcryptCost int

	// SeedDemo creates the demo student on startup.
	SeedDemo bool

	// PlainQuiz makes `quiz play` use the line-based player by default.
	PlainQuiz bool
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		DBPath:      getEnv("DISHA_DB", ""),
		CatalogPath: getEnv("DISHA_CATALOG", ""),
		LogLevel:    getEnv("DISHA_LOG_LEVEL", "info"),
		LogFormat:   getEnv("DISHA_LOG_FORMAT", "json"),
		LogFile:     getEnv("DISHA_LOG_FILE", ""),
		BcryptCost:  getEnvInt("DISHA_BCRYPT_COST", 10),
		SeedDemo:    getEnvBool("DISHA_SEED_DEMO", true),
		PlainQuiz:   getEnvBool("DISHA_PLAIN", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
