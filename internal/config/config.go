// Package config provides configuration for the interview orchestrator.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the orchestrator configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// AI service (OpenAI-compatible chat completions)
	AIBaseURL string
	AIAPIKey  string
	AIModel   string
	AITimeout time.Duration

	// Transcription service
	TranscribeBaseURL string
	TranscribeTimeout time.Duration

	// Interview policy file (opening/closing questions, personas)
	PolicyPath string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:       getEnv("DATABASE_URL", "file:interviewspark.db?cache=shared&mode=rwc"),
		AIBaseURL:         getEnv("AI_BASE_URL", "https://api.siliconflow.cn"),
		AIAPIKey:          getEnv("AI_API_KEY", ""),
		AIModel:           getEnv("AI_MODEL", "Qwen/Qwen2.5-72B-Instruct"),
		AITimeout:         time.Duration(getEnvInt("AI_TIMEOUT_MS", 90000)) * time.Millisecond,
		TranscribeBaseURL: getEnv("TRANSCRIBE_BASE_URL", "https://api.siliconflow.cn"),
		TranscribeTimeout: time.Duration(getEnvInt("TRANSCRIBE_TIMEOUT_MS", 15000)) * time.Millisecond,
		PolicyPath:        getEnv("INTERVIEW_POLICY_PATH", "config/interview.yaml"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
