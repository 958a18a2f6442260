package cleanup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const groqChatURL = "https://api.groq.com/openai/v1/chat/completions"

const requestTimeout = 120 * time.Second

const systemPrompt = `Your goal is to take user prompt, which has been transcribed from a voice recording, and clean up the structure if the flow is disjointed,or has too much repetition. Make sure you don't lose any information in the process, everything that was mentioned must end up in the final text, even it its reorganized for clarity. But don't add extra information either, your goal is just to make it more clear. Keep a fairly conversational tone, don't expend on the text by giving example or making plans or anything beyond what the initial recording states.`

const maxTokens = 2000
const temperature = 0.7

// APIError is returned for any non-2xx response or a response missing the
// completion field.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Body)
}

// Groq sends transcripts to the Groq chat-completion endpoint.
type Groq struct {
	client *http.Client
	apiURL string
	apiKey string
	model  string
}

func NewGroq(apiKey, model string) *Groq {
	return &Groq{
		client: &http.Client{Timeout: requestTimeout},
		apiURL: groqChatURL,
		apiKey: apiKey,
		model:  model,
	}
}

func (g *Groq) Name() string { return "groq" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Groq) Clean(ctx context.Context, text string) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Here is the user prompt: " + text},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var cResp chatResponse
	if err := json.Unmarshal(respBody, &cResp); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", &APIError{Status: resp.StatusCode, Body: "response has no choices"}
	}
	return cResp.Choices[0].Message.Content, nil
}
