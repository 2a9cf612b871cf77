package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   int
	API          APIConfig
	TokenFile    string
	CookieSecure bool
}

type APIConfig struct {
	BaseURL string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	apiConfig := APIConfig{
		BaseURL: getEnv("GAMELY_API_URL", "http://localhost:3001"),
	}

	return Config{
		ServerPort:   getEnvInt("SERVER_PORT", 8080),
		API:          apiConfig,
		TokenFile:    getEnv("GAMELY_TOKEN_FILE", defaultTokenFile()),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
	}
}

// defaultTokenFile places the CLI token under the user config dir. Falls
// back to the working directory when the home lookup fails.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".gamely_token"
	}
	return filepath.Join(dir, "gamely", "token")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}
