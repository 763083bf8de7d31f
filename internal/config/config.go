package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabaseDriver    string
	DatabasePath      string
	DatabaseURL       string
	SessionSecret     string
	GinMode           string
	LogLevel          string
	CORSOrigins       []string
	CreateUserHash    string
	SuperRootEmail    string
	SuperRootPassword string
	SiteName          string
	UploadDir         string
}

// DSN returns the connection string for the configured driver.
func (c AppConfig) DSN() string {
	if c.DatabaseDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DatabasePath
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// A .env file in the working directory is read first when present; variables
// already set in the environment win.
func Load() AppConfig {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")

	listenAddr := getEnv("LISTEN_ADDR", fmt.Sprintf(":%s", port))

	databaseURL := getEnv("DATABASE_URL", "")

	driver := strings.ToLower(getEnv("DATABASE_DRIVER", ""))
	if driver == "" {
		driver = "sqlite"
		if databaseURL != "" {
			driver = "postgres"
		}
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabaseDriver:    driver,
		DatabasePath:      getEnv("DATABASE_PATH", "sitecms.db"),
		DatabaseURL:       databaseURL,
		SessionSecret:     getEnv("SESSION_SECRET", "sitecms-dev-secret"),
		GinMode:           getEnv("GIN_MODE", "release"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitList(os.Getenv("CORS_ORIGINS")),
		CreateUserHash:    getEnv("CREATE_USER_HASH", ""),
		SuperRootEmail:    getEnv("SUPER_ROOT_EMAIL", ""),
		SuperRootPassword: getEnv("SUPER_ROOT_PASSWORD", ""),
		SiteName:          getEnv("SITE_NAME", "SiteCMS"),
		UploadDir:         getEnv("UPLOAD_DIR", "./web/static/uploads"),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
