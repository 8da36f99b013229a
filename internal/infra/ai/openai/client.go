package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/ecosense/internal/domain/ai"
)

const DefaultModel = "gpt-4o-mini"

// Client is the alternate endpoint: any OpenAI-compatible chat completion
// API that accepts image_url parts.
type Client struct {
	*openai.Client
	Model   string
	Timeout time.Duration // zero means ai.RequestTimeout
}

// NewClient returns a client even without a key; Generate then reports
// ai.ErrNotConfigured so callers fall through to the local generator.
func NewClient(apiKey, model, baseURL string, httpClient *http.Client) *Client {
	if model == "" {
		model = DefaultModel
	}
	if apiKey == "" {
		return &Client{Model: model}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Configured() bool { return c.Client != nil }

func (c *Client) Generate(ctx context.Context, in ai.GenerateRequest) (string, error) {
	if c.Client == nil {
		return "", &ai.NotConfiguredError{Provider: "openai"}
	}
	in = in.WithDefaults()

	parts := []openai.ChatMessagePart{{Type: openai.ChatMessagePartTypeText, Text: in.Prompt}}
	if in.Image != nil {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: in.Image.DataURL(), Detail: openai.ImageURLDetailAuto},
		})
	}

	req := openai.ChatCompletionRequest{
		Model: c.Model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens and leave sampling alone
	if isReasoningModel(c.Model) {
		req.MaxCompletionTokens = int(in.MaxTokens)
	} else {
		req.MaxTokens = int(in.MaxTokens)
		req.Temperature = in.Temperature
		req.TopP = in.TopP
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = ai.RequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", mapError(ctx, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ai.ErrMalformedResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

func mapError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ai.ErrTimeout
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return ai.NewStatusError(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return ai.NewStatusError(reqErr.HTTPStatusCode, reqErr.Error())
	}
	return fmt.Errorf("failed to create chat completion: %w", err)
}
