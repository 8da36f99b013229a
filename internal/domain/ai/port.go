package ai

import (
	"context"
	"time"
)

// Client sends one prompt (plus an optional inline image) to a generative
// endpoint and returns the raw text of the first candidate.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// RequestTimeout bounds a single remote call, whichever endpoint serves it.
const RequestTimeout = 30 * time.Second

// Generation defaults
const (
	DefaultTemperature float32 = 0.4
	DefaultMaxTokens   int32   = 2048
	DefaultTopP        float32 = 0.9
	DefaultTopK        float32 = 40
)

// Image is an inline image part. Encoded is the base64 form of Data.
type Image struct {
	MIMEType string
	Data     []byte
	Encoded  string
}

// DataURL renders the image for endpoints that take URLs instead of blobs.
func (i *Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Encoded
}

type GenerateRequest struct {
	Prompt      string
	Image       *Image
	Temperature float32
	MaxTokens   int32
	TopP        float32
	TopK        float32
}

// WithDefaults fills zero-valued generation parameters.
func (r GenerateRequest) WithDefaults() GenerateRequest {
	if r.Temperature == 0 {
		r.Temperature = DefaultTemperature
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	if r.TopP == 0 {
		r.TopP = DefaultTopP
	}
	if r.TopK == 0 {
		r.TopK = DefaultTopK
	}
	return r
}
