package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/plankit/plankit/internal/config"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint
// (OpenAI, OpenRouter, Ollama, LM Studio). The response is requested in JSON
// mode and decoded with DecodeStrict.
type OpenAIClient struct {
	cfg    config.ModelConfig
	apiKey string
	http   *http.Client
}

// NewOpenAIClient builds a client from a model configuration. The API key is
// read from the environment variable named by cfg.APIKeyEnv; an empty key is
// allowed for local endpoints.
func NewOpenAIClient(cfg config.ModelConfig) *OpenAIClient {
	var key string
	if cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
	}
	return &OpenAIClient{
		cfg:    cfg,
		apiKey: key,
		http:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

func (c *OpenAIClient) Name() string      { return c.cfg.ID }
func (c *OpenAIClient) ClassName() string { return "OpenAICompatible" }

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends the messages and decodes the JSON reply into out.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, out any) (*ChatResponse, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:          c.cfg.Model,
		Messages:       messages,
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding chat request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", c.cfg.ID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", c.cfg.ID, err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing response from %s (status %d): %w", c.cfg.ID, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("%s returned status %d: %s", c.cfg.ID, resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%s returned no choices", c.cfg.ID)
	}

	text := parsed.Choices[0].Message.Content
	if err := DecodeStrict(text, out); err != nil {
		return nil, fmt.Errorf("response from %s: %w", c.cfg.ID, err)
	}

	tokens := parsed.Usage.CompletionTokens
	if tokens == 0 {
		tokens = CountTokens(text)
	}
	return &ChatResponse{
		Text:       text,
		Duration:   time.Since(start),
		ByteCount:  len(text),
		TokenCount: tokens,
	}, nil
}
