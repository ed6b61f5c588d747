// internal/recommendation/llm/client.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	commonhttp "foresight-workers/internal/common/http"
	"foresight-workers/internal/common/logger"
	"foresight-workers/internal/models"
)

type Config struct {
	BaseURL       string
	APIKey        string
	Model         string
	Temperature   float64
	MaxTokens     int
	Timeout       time.Duration
	MinTechniques int
	MaxTechniques int
}

// Result is a validated AI recommendation together with the prompt that
// produced it.
type Result struct {
	Recommendations     []models.Recommendation
	AnalysisDescription string
	EstimatedDuration   string
	Prompt              string
	DroppedUnknown      int
}

// Client calls an OpenAI-compatible chat completions endpoint. It makes a
// single attempt per call.
type Client struct {
	config *Config
	http   *commonhttp.Client
	logger logger.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewClient(config *Config, log logger.Logger) *Client {
	cfg := *config
	if cfg.Temperature < 0 {
		cfg.Temperature = 0
	}
	if cfg.Temperature > 1 {
		cfg.Temperature = 1
	}
	if cfg.MaxTechniques <= 0 || cfg.MaxTechniques > models.MaxRecommendations {
		cfg.MaxTechniques = models.MaxRecommendations
	}
	if cfg.MinTechniques <= 0 {
		cfg.MinTechniques = 3
	}
	if cfg.MinTechniques > cfg.MaxTechniques {
		cfg.MinTechniques = cfg.MaxTechniques
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		config: &cfg,
		http:   commonhttp.NewClient(cfg.Timeout),
		logger: log.WithFields(map[string]interface{}{"component": "llm-client"}),
	}
}

// Recommend builds the prompt, calls the model and validates its answer.
func (c *Client) Recommend(ctx context.Context, profile *models.StudyProfile, catalog *models.Catalog) (*Result, error) {
	prompt := BuildPrompt(profile, catalog, c.config.MinTechniques, c.config.MaxTechniques)

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseContent(content, catalog, c.config.MaxTechniques)
	if err != nil {
		return nil, err
	}

	if parsed.DroppedUnknown > 0 {
		c.logger.Warn("model referenced unknown techniques", map[string]interface{}{
			"dropped": parsed.DroppedUnknown,
		})
	}

	return &Result{
		Recommendations:     parsed.Recommendations,
		AnalysisDescription: parsed.AnalysisDescription,
		EstimatedDuration:   parsed.EstimatedDuration,
		Prompt:              prompt,
		DroppedUnknown:      parsed.DroppedUnknown,
	}, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.config.APIKey}
	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"

	start := time.Now()
	resp, err := c.http.PostJSON(ctx, url, headers, reqBody)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
		}
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	c.logger.Debug("completion received", map[string]interface{}{
		"status":     resp.StatusCode,
		"durationMs": time.Since(start).Milliseconds(),
	})

	var parsed chatResponse
	decodeErr := json.Unmarshal(resp.Body, &parsed)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if decodeErr == nil && parsed.Error != nil {
			return "", fmt.Errorf("%w: http status %d: %s", ErrTransport, resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("%w: http status %d", ErrTransport, resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: decode completion envelope: %v", ErrTransport, decodeErr)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", ErrTransport)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion content", ErrParse)
	}
	return content, nil
}
