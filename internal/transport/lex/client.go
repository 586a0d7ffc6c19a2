// Package lex interprets user utterances via the Lex v2 runtime REST API.
package lex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aperture-cloud/photodex/internal/domain"
	"github.com/aperture-cloud/photodex/internal/domain/intent"
)

const defaultTimeout = 10 * time.Second

// Config holds the NLU service settings.
type Config struct {
	BaseURL    string
	BotID      string
	BotAliasID string
	LocaleID   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client calls the NLU service to recognize slots in utterance text.
type Client struct {
	httpClient *http.Client
	baseURL    string
	botID      string
	botAliasID string
	localeID   string
	logger     *zap.Logger
}

// NewClient creates an NLU client.
func NewClient(cfg *Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		botID:      cfg.BotID,
		botAliasID: cfg.BotAliasID,
		localeID:   cfg.LocaleID,
		logger:     logger,
	}
}

type recognizeTextRequest struct {
	Text string `json:"text"`
}

// Interpret sends the utterance to the NLU service and returns the recognized
// slots. Every call uses a freshly generated session id so that stale session
// state from unrelated queries cannot bias slot resolution. Failures wrap
// domain.ErrInterpretFailed; callers degrade to the raw-utterance fallback.
func (c *Client) Interpret(ctx context.Context, utterance string) (intent.Result, error) {
	sessionID := uuid.NewString()
	url := fmt.Sprintf("%s/bots/%s/botAliases/%s/botLocales/%s/sessions/%s/text",
		c.baseURL, c.botID, c.botAliasID, c.localeID, sessionID)

	body, err := json.Marshal(recognizeTextRequest{Text: utterance})
	if err != nil {
		return intent.Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return intent.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return intent.Result{}, fmt.Errorf("recognize text: %w: %w", domain.ErrInterpretFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return intent.Result{}, fmt.Errorf("recognize text status %d: %s: %w",
			resp.StatusCode, string(payload), domain.ErrInterpretFailed)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return intent.Result{}, fmt.Errorf("read response: %w: %w", domain.ErrInterpretFailed, err)
	}

	result, err := decodeSlots(raw)
	if err != nil {
		return intent.Result{}, fmt.Errorf("decode response: %w: %w", domain.ErrInterpretFailed, err)
	}

	c.logger.Debug("utterance interpreted",
		zap.String("session_id", sessionID),
		zap.Bool("slots_found", !result.IsEmpty()),
	)
	return result, nil
}
