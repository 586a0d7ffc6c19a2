// Package vision detects visual labels in stored images using an
// OpenAI-compatible vision chat API.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/aperture-cloud/photodex/internal/domain"
	"github.com/aperture-cloud/photodex/internal/domain/label"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
	"github.com/aperture-cloud/photodex/internal/metrics"
)

// Labeler is a vision labeling provider using the OpenAI-compatible chat API.
type Labeler struct {
	client      *openai.Client
	model       string
	urlTemplate string
	provider    string
	logger      *zap.Logger
}

// Config holds the vision labeling provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	URLTemplate string // object URL template with {bucket} and {key}
	Provider    string
	Logger      *zap.Logger
}

// NewLabeler creates an OpenAI-compatible vision labeling provider.
func NewLabeler(cfg *Config) *Labeler {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Labeler{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		urlTemplate: cfg.URLTemplate,
		provider:    cfg.Provider,
		logger:      logger,
	}
}

// labelResponse is the JSON shape the model is prompted to answer with.
type labelResponse struct {
	Labels []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"labels"`
}

// DetectLabels asks the vision model for up to maxLabels labels with at least
// minConfidence percent confidence for the image at bucket/objectKey.
// Failures wrap domain.ErrLabelingFailed.
func (l *Labeler) DetectLabels(
	ctx context.Context, bucket, objectKey string, maxLabels int, minConfidence float64,
) ([]label.Label, error) {
	imageURL := domphoto.ObjectURL(l.urlTemplate, bucket, objectKey)
	if imageURL == "" {
		return nil, fmt.Errorf("no object URL template configured: %w", domain.ErrLabelingFailed)
	}

	req := openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: labelPrompt(maxLabels, minConfidence),
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()
	resp, err := l.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.LabelingRequestsTotal.WithLabelValues(l.provider, "error").Inc()
		return nil, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.LabelingRequestsTotal.WithLabelValues(l.provider, "error").Inc()
		return nil, fmt.Errorf("empty labeling response: %w", domain.ErrLabelingFailed)
	}

	labels, err := parseLabels(resp.Choices[0].Message.Content, maxLabels)
	if err != nil {
		metrics.LabelingRequestsTotal.WithLabelValues(l.provider, "error").Inc()
		return nil, err
	}

	metrics.LabelingRequestsTotal.WithLabelValues(l.provider, "success").Inc()
	metrics.LabelingRequestDuration.WithLabelValues(l.provider).Observe(duration.Seconds())

	l.logger.Debug("labels detected",
		zap.String("object_key", objectKey),
		zap.Int("count", len(labels)),
	)
	return labels, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (l *Labeler) HealthCheck(ctx context.Context) error {
	if _, err := l.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func labelPrompt(maxLabels int, minConfidence float64) string {
	return fmt.Sprintf(
		"Detect the visual entities in this image. Answer with a JSON object "+
			`{"labels":[{"name":"...","confidence":0-100}]} listing at most %d labels `+
			"whose confidence is at least %.0f percent. Use short singular nouns "+
			"capitalized like proper label names (e.g. Dog, Beach, Sunset).",
		maxLabels, minConfidence,
	)
}

// parseLabels decodes the model answer, tolerating a fenced code block around
// the JSON object.
func parseLabels(content string, maxLabels int) ([]label.Label, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")

	var parsed labelResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), &parsed); err != nil {
		return nil, fmt.Errorf("parse labels: %w: %w", domain.ErrLabelingFailed, err)
	}

	labels := make([]label.Label, 0, len(parsed.Labels))
	for _, l := range parsed.Labels {
		if maxLabels > 0 && len(labels) >= maxLabels {
			break
		}
		labels = append(labels, label.New(l.Name, l.Confidence))
	}
	return labels, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors wrap domain.ErrLabelingFailed so the ingest pipeline can skip
// the item without aborting the batch.
func parseAPIError(err error) error {
	wrap := domain.ErrLabelingFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("labeling API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("labeling API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("labeling request failed: %w", wrap)
}
