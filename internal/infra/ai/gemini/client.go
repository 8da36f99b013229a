package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/bryanwahyu/ecosense/internal/domain/ai"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/imaging"
)

const (
	DefaultModel   = "gemini-1.5-flash"
	RequestTimeout = ai.RequestTimeout
)

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string       // override for tests or proxies
	HTTPClient *http.Client // nil uses the SDK default
}

// Client talks to the Gemini generateContent endpoint. Without an API key it
// runs in demo mode and every Generate call fails with *ai.NotConfiguredError.
type Client struct {
	genai *genai.Client
	model string

	// Profile describes the image in demo-mode errors
	Profile func([]byte) analysis.ImageProfile
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{model: cfg.Model, Profile: imaging.Analyze}
	if c.model == "" {
		c.model = DefaultModel
	}
	if cfg.APIKey == "" {
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.genai = gc
	return c, nil
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool { return c.genai != nil }

func (c *Client) Model() string { return c.model }

func (c *Client) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	if c.genai == nil {
		return "", c.demoError(req)
	}
	req = req.WithDefaults()

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Image != nil {
		mime := req.Image.MIMEType
		if mime == "" {
			mime = analysis.DefaultImageMIME
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: req.Image.Data}})
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		TopP:            genai.Ptr(req.TopP),
		TopK:            genai.Ptr(req.TopK),
		MaxOutputTokens: req.MaxTokens,
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", mapError(ctx, err)
	}
	return firstText(resp)
}

func (c *Client) demoError(req ai.GenerateRequest) error {
	if req.Image == nil || c.Profile == nil {
		return &ai.NotConfiguredError{Provider: "gemini"}
	}
	b, err := json.Marshal(c.Profile(req.Image.Data))
	if err != nil {
		return &ai.NotConfiguredError{Provider: "gemini"}
	}
	return &ai.NotConfiguredError{Provider: "gemini", Detail: "image properties: " + string(b)}
}

func mapError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ai.ErrTimeout
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ai.NewStatusError(apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return ai.NewStatusError(apiErrPtr.Code, apiErrPtr.Message)
	}
	return fmt.Errorf("gemini generate content: %w", err)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ai.ErrMalformedResponse
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return "", ai.ErrMalformedResponse
	}
	text := cand.Content.Parts[0].Text
	if text == "" {
		return "", ai.ErrMalformedResponse
	}
	return text, nil
}
