package config

import (
	"github.com/joho/godotenv"
)

// LoadEnvFile loads environment variables from .env/.env.local files.
// It attempts each supported filename in order and stops at the first
// successfully parsed file. Existing process environment variables are
// not overwritten.
func LoadEnvFile() error {
	envPaths := []string{".env", ".env.local"}
	var lastErr error
	for _, envPath := range envPaths {
		if err := godotenv.Load(envPath); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return lastErr
}
