package ai

import (
	"log"
	"os"
	"time"
)

const (
	// EnvSparkMode is the environment variable name for mode selection.
	EnvSparkMode = "SPARK_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewAIClient creates an AI client based on the SPARK_MODE environment
// variable. If SPARK_MODE=MOCK, returns a MockClient; otherwise returns a
// real Client.
func NewAIClient(baseURL, apiKey, model string, timeout time.Duration) AIClient {
	if os.Getenv(EnvSparkMode) == ModeMock {
		log.Println("SPARK_MODE=MOCK detected, using mock AI client")
		return NewMockClient()
	}
	return NewClient(baseURL, apiKey, model, timeout)
}
