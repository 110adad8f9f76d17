// Package expo sends push notifications through the Expo push service.
package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foyerapp/foyer-backend/internal/config"
)

// Message is a single Expo push message.
type Message struct {
	To    string         `json:"to"`
	Sound string         `json:"sound"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

// Client posts push messages to the Expo push API.
type Client struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.ExpoConfig, logger *slog.Logger) *Client {
	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "expo"),
	}
}

// maxBatchSize is the Expo push API's per-request message limit.
const maxBatchSize = 100

// Send delivers a notification to every valid Expo token in tokens,
// batching the POSTs at the API's message limit. Invalid tokens are
// skipped. A delivery failure is a degraded-mode condition, not a
// caller error: it is logged and the error returned so callers can
// decide whether to care.
func (c *Client) Send(ctx context.Context, tokens []string, title, body string, data map[string]any) error {
	messages := make([]Message, 0, len(tokens))
	for _, token := range tokens {
		if !ValidToken(token) {
			c.log.DebugContext(ctx, "skipping invalid push token")
			continue
		}
		messages = append(messages, Message{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
			Data:  data,
		})
	}
	if len(messages) == 0 {
		return nil
	}

	for start := 0; start < len(messages); start += maxBatchSize {
		end := min(start+maxBatchSize, len(messages))
		if err := c.postBatch(ctx, messages[start:end]); err != nil {
			return err
		}
	}

	c.log.DebugContext(ctx, "expo push sent", slog.Int("messages", len(messages)))
	return nil
}

// postBatch posts one batch of at most maxBatchSize messages.
func (c *Client) postBatch(ctx context.Context, batch []Message) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("expo: encode messages: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("expo: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req, payload)
	if err != nil {
		c.log.ErrorContext(ctx, "expo push failed",
			slog.Int("messages", len(batch)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("expo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.ErrorContext(ctx, "expo push rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)),
		)
		return fmt.Errorf("expo: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, payload []byte) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "expo retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retryReq := req.Clone(ctx)
	retryReq.Body = io.NopCloser(bytes.NewReader(payload))
	return c.httpClient.Do(retryReq)
}

// ValidToken reports whether s looks like an Expo push token.
func ValidToken(s string) bool {
	return strings.HasPrefix(s, "ExponentPushToken[") && strings.HasSuffix(s, "]")
}

// NopClient is a Notifier that does nothing. Used when push is disabled.
type NopClient struct{}

// Send discards the notification.
func (NopClient) Send(context.Context, []string, string, string, map[string]any) error {
	return nil
}
