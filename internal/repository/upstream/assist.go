package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// OpenAIAssistant implements domain.Assistant over the chat completions
// API. Callers consume it through the wrapping usecase, which turns every
// error returned here into the neutral unavailable reply.
type OpenAIAssistant struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewOpenAIAssistant(apiKey, baseURL, model string) *OpenAIAssistant {
	return &OpenAIAssistant{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const assistSystemPrompt = "You are a concise job-search assistant for a job board. " +
	"Help candidates with applications, saved jobs, and interview preparation. " +
	"Keep answers short and practical."

func (a *OpenAIAssistant) Chat(ctx context.Context, prompt string) (string, error) {
	if a.apiKey == "" {
		return "", errors.New("assistant api key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: assistSystemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("assistant returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
