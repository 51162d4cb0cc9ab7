package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// Client is an OpenAI-compatible chat-completion client for the interview
// AI services.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	retry      RetryPolicy
}

// NewClient creates a new AI client.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry: DefaultRetryPolicy(),
	}
}

// ChatMessage represents a chat message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest represents the chat completion request body.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatCompletionResponse represents the chat completion response body.
type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message ChatMessage `json:"message"`
}

// errorResponse represents an API error response.
type errorResponse struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ChatCompletion sends a chat completion request and returns the first
// choice's content. Transient failures are retried per the client's policy.
func (c *Client) ChatCompletion(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	var content string
	err := c.retry.Execute(ctx, func() error {
		var err error
		content, err = c.chatCompletionOnce(ctx, messages, temperature, maxTokens)
		return err
	})
	return content, err
}

func (c *Client) chatCompletionOnce(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI API error [%d]: %s (type: %s)", resp.StatusCode, errResp.Error.Message, errResp.Error.Type)
		}
		return "", fmt.Errorf("AI API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in API response")
	}

	return result.Choices[0].Message.Content, nil
}

// GenerateQuestions produces interview questions from a resume and a job
// description.
func (c *Client) GenerateQuestions(ctx context.Context, resume, jobDescription string, count int, persona string) ([]string, error) {
	systemPrompt := "You are an experienced interviewer. You MUST respond with ONLY a valid JSON array, no additional text or explanations."
	if persona != "" {
		systemPrompt = fmt.Sprintf("You are %s. You MUST respond with ONLY a valid JSON array, no additional text or explanations.", persona)
	}

	userPrompt := fmt.Sprintf(
		"Based on the following resume and job description, generate exactly %d relevant interview questions.\n\nResume:\n%s\n\nJob Description:\n%s\n\nIMPORTANT: Return ONLY a JSON array of strings. No explanations, no markdown, just the array. Format: [\"question1\", \"question2\", ...]",
		count, resume, jobDescription)

	response, err := c.ChatCompletion(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.8, 2000)
	if err != nil {
		return nil, err
	}

	questions, err := extractJSONArray(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	if len(questions) != count {
		log.Printf("WARN: expected %d questions, got %d", count, len(questions))
	}
	return questions, nil
}

// AnalyzeAnswer returns free-text feedback for a single answer.
func (c *Client) AnalyzeAnswer(ctx context.Context, question, answer, jobDescription string) (string, error) {
	userPrompt := fmt.Sprintf(
		"Question: %s\n\nCandidate's Answer: %s\n\nJob Description: %s\n\nPlease analyze this answer and provide:\n1. Strengths\n2. Areas for improvement\n3. Suggestions for better response\n4. Relevance to job requirements",
		question, answer, jobDescription)

	return c.ChatCompletion(ctx, []ChatMessage{
		{Role: "system", Content: "You are an experienced interviewer providing constructive feedback on interview answers."},
		{Role: "user", Content: userPrompt},
	}, 0.7, 1500)
}

// ScoreAnswer returns a structured 1-10 scoring of a single answer.
func (c *Client) ScoreAnswer(ctx context.Context, question, answer, jobDescription string) (*ScoreResult, error) {
	systemPrompt := `You are an interview scoring engine. Respond ONLY with a JSON object of the form {"overall_score": 7.5, "strengths": ["..."], "weaknesses": ["..."], "suggestions": ["..."]}. Scores are on a 1-10 scale.`
	userPrompt := fmt.Sprintf(
		"Question: %s\n\nCandidate's Answer: %s\n\nJob Description: %s\n\nScore the answer for logic, job match and keyword coverage.",
		question, answer, jobDescription)

	response, err := c.ChatCompletion(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.3, 1000)
	if err != nil {
		return nil, err
	}
	return parseScoreResponse(response)
}

// AnalyzeForFollowUp decides whether to probe deeper after an answer.
func (c *Client) AnalyzeForFollowUp(ctx context.Context, req *FollowUpRequest) (*domain.FollowUpAnalysis, error) {
	types := make([]string, 0, len(req.PreferredTypes))
	for _, t := range req.PreferredTypes {
		types = append(types, string(t))
	}

	role := "an experienced interviewer"
	if req.Persona != "" {
		role = req.Persona
	}
	systemPrompt := fmt.Sprintf(`You are %s deciding whether to ask a follow-up question. Respond ONLY with a JSON object of the form {"should_follow_up": true, "questions": [{"question": "...", "type": "clarification", "reason": "...", "context": "..."}], "reasoning": "...", "answer_quality": "good"}. answer_quality is one of excellent, good, acceptable, poor.`, role)

	userPrompt := fmt.Sprintf(
		"Original Question: %s\n\nCandidate's Answer: %s\n\nConversation so far:\n%s\n\nJob Description: %s\n\nYou may propose at most %d follow-up question(s). Preferred types: %s. Only recommend a follow-up when the answer quality falls at or below trigger level %d on a 1-5 scale.",
		req.OriginalQuestion, req.Answer, req.ConversationHistory, req.JobDescription,
		req.MaxFollowUps, strings.Join(types, ", "), req.TriggerThreshold)

	response, err := c.ChatCompletion(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.5, 1500)
	if err != nil {
		return nil, err
	}
	return parseFollowUpResponse(response)
}

// GenerateReport produces the final session evaluation.
func (c *Client) GenerateReport(ctx context.Context, questions, answers []string, jobDescription string) (*ReportResult, error) {
	systemPrompt := `You are an expert interview evaluator. Generate a comprehensive interview report in JSON format with the following structure: {"summary": "...", "overall_score": 8.5, "improvements": [...], "key_takeaways": [...]}`

	var qa strings.Builder
	for i := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		fmt.Fprintf(&qa, "Q%d: %s\nA%d: %s\n\n", i+1, questions[i], i+1, answer)
	}

	userPrompt := fmt.Sprintf(
		"Job Description:\n%s\n\nInterview Q&A:\n%s\nPlease generate a comprehensive report with:\n1. Overall performance summary (150-200 words)\n2. Overall score (1-10 scale)\n3. 3-5 specific improvement suggestions\n4. 2-3 key takeaways\n\nRespond ONLY with valid JSON, no other text.",
		jobDescription, qa.String())

	response, err := c.ChatCompletion(ctx, []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.7, 2500)
	if err != nil {
		return nil, err
	}
	return parseReportResponse(response), nil
}
