package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

const groqTranscriptionURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// Groq uploads WAV files to the Groq whisper endpoint.
type Groq struct {
	client *TracedClient
	apiURL string
	apiKey string
	model  string
}

func NewGroq(apiKey, model string) *Groq {
	return &Groq{
		client: NewTracedClient(),
		apiURL: groqTranscriptionURL,
		apiKey: apiKey,
		model:  model,
	}
}

func (g *Groq) Name() string { return "groq" }

func (g *Groq) Warm() { g.client.WarmConnection(g.apiURL) }

type groqResponse struct {
	Text string `json:"text"`
}

func (g *Groq) Transcribe(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return Result{}, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return Result{}, fmt.Errorf("reading audio file: %w", err)
	}
	writer.WriteField("model", g.model)
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", g.apiURL, &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &APIError{Status: resp.StatusCode, Body: string(resp.Body)}
	}

	var gResp groqResponse
	if err := json.Unmarshal(resp.Body, &gResp); err != nil {
		return Result{}, fmt.Errorf("parsing groq response: %w", err)
	}

	remaining := firstNonEmpty(resp.Header, "x-ratelimit-remaining-requests")
	limit := firstNonEmpty(resp.Header, "x-ratelimit-limit-requests")

	return Result{
		Text:      gResp.Text,
		Metrics:   resp.Metrics,
		RateLimit: remaining + "/" + limit,
	}, nil
}
