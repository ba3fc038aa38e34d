package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Store    StoreConfig
	Generate GenerateConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type StoreConfig struct {
	Driver       string // "file" or "redis"
	ProjectsDir  string
	TemplatesDir string
	RedisAddr    string
}

type GenerateConfig struct {
	RPS   float64
	Burst int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Timeout: time.Duration(getEnvAsInt("GEMINI_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Store: StoreConfig{
			Driver:       getEnv("STORE_DRIVER", "file"),
			ProjectsDir:  getEnv("PROJECTS_DIR", "public/projects"),
			TemplatesDir: getEnv("TEMPLATES_DIR", "public/templates"),
			RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Generate: GenerateConfig{
			RPS:   getEnvAsFloat("GENERATE_RPS", 2),
			Burst: getEnvAsInt("GENERATE_BURST", 5),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the startup-critical settings. GEMINI_API_KEY is
// deliberately not required here: the project endpoints work without it
// and the generation endpoints fail fast per request when it is absent.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case "file", "redis":
	default:
		return fmt.Errorf("STORE_DRIVER must be \"file\" or \"redis\", got %q", c.Store.Driver)
	}

	if c.Store.Driver == "redis" && c.Store.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when STORE_DRIVER=redis")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
