package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPTranscriber is a remote transcription client.
type HTTPTranscriber struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPTranscriber creates a new transcription client.
func NewHTTPTranscriber(baseURL, apiKey string, timeout time.Duration) *HTTPTranscriber {
	return &HTTPTranscriber{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ensure HTTPTranscriber implements Transcriber interface.
var _ Transcriber = (*HTTPTranscriber)(nil)

type transcriptionRequest struct {
	Audio string `json:"audio"` // base64-encoded
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe sends base64-encoded audio to the remote service and returns
// the recognized text.
func (t *HTTPTranscriber) Transcribe(ctx context.Context, audioBase64 string) (string, error) {
	body, err := json.Marshal(transcriptionRequest{Audio: audioBase64})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/audio/transcriptions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result transcriptionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result.Text, nil
}
