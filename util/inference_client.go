// util/inference_client.go

package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/config"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
)

// InferenceClient calls a hosted text-generation model. The endpoint speaks
// the Workers AI shape: POST {endpoint}/{model} with chat messages, answer in
// result.response.
type InferenceClient struct {
	endpoint string
	token    string
	model    string
	http     *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type inferenceRequest struct {
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type inferenceResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Response string `json:"response"`
	} `json:"result"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func NewInferenceClient(cfg config.AIConfiguration) *InferenceClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &InferenceClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		token:    cfg.APIToken,
		model:    strings.TrimLeft(cfg.Model, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an endpoint is set.
func (c *InferenceClient) Configured() bool {
	return c.endpoint != ""
}

// Generate runs one system+user prompt and returns the model's text.
func (c *InferenceClient) Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: no inference endpoint configured", blog_errors.ErrInference)
	}

	body, err := json.Marshal(inferenceRequest{
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal inference request: %w", err)
	}

	url := c.endpoint + "/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", blog_errors.ErrInference, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", blog_errors.ErrInference, err)
	}
	logger.Debug("Inference call finished",
		zap.String("model", c.model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: endpoint returned status %d", blog_errors.ErrInference, resp.StatusCode)
	}

	var out inferenceResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", blog_errors.ErrInference, err)
	}
	if !out.Success {
		msg := "unsuccessful response"
		if len(out.Errors) > 0 {
			msg = out.Errors[0].Message
		}
		return "", fmt.Errorf("%w: %s", blog_errors.ErrInference, msg)
	}
	return strings.TrimSpace(out.Result.Response), nil
}
