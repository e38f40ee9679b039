// Package generate turns a natural-language description into an app spec by
// calling an OpenAI-compatible completion API. Replies are defensively
// parsed: fences are stripped and the first balanced JSON object is decoded
// through the lenient schema decoder.
package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
)

// Config holds upstream model settings.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Client calls the completion API.
type Client struct {
	http *resty.Client
	cfg  Config
}

const systemPrompt = `You design small mobile apps. Reply with a single JSON ` +
	`object describing the app: name, description, category, pages (each with ` +
	`components), capabilities, initialState, and actions. No prose, no fences.`

// NewClient builds a client with retrying transport.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = nil

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "GenApp/1.0").
		SetTransport(retryClient.HTTPClient.Transport)

	return &Client{http: rc, cfg: cfg}
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
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateSpec asks the model for an app spec matching the prompt.
func (c *Client) GenerateSpec(ctx context.Context, prompt string) (*schema.Spec, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyInput
	}
	if c.cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	var reply chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.APIKey).
		SetBody(body).
		SetResult(&reply).
		SetError(&reply).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("generate: request failed: %w", err)
	}

	if resp.IsError() {
		se := &StatusError{Code: resp.StatusCode()}
		if reply.Error != nil {
			se.Message = reply.Error.Message
		}
		return nil, se
	}

	if len(reply.Choices) == 0 {
		return nil, ErrMalformedResponse
	}

	raw := ExtractObject(StripFences(reply.Choices[0].Message.Content))
	if raw == "" {
		return nil, ErrMalformedResponse
	}

	spec, err := schema.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("generate: decoding spec: %w", err)
	}
	return spec, nil
}
