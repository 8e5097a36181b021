// Package telegram delivers messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/guilherme-santos/calendarbot/internal"
)

const (
	DefaultBaseURL   = "https://api.telegram.org"
	DefaultParseMode = "Markdown"

	defaultTimeout = 15 * time.Second
)

// ErrDelivery is matched by every error returned by Send.
var ErrDelivery = errors.New("telegram: message not delivered")

// APIError is a request the Bot API answered with ok=false.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error: %s (code %d)", e.Description, e.Code)
}

func (e *APIError) Is(target error) bool {
	return target == ErrDelivery
}

type Client struct {
	token      string
	chatID     string
	httpClient *http.Client
	logger     *zap.Logger

	BaseURL string
	// ParseMode is sent as parse_mode; empty sends plain text.
	ParseMode string
	// DisablePreview suppresses link previews.
	DisablePreview bool
}

func NewClient(token, chatID string, logger *zap.Logger) (*Client, error) {
	if token == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	if chatID == "" {
		return nil, errors.New("telegram: chat id is required")
	}
	return &Client{
		token:  token,
		chatID: chatID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    internal.OrNop(logger).With(zap.String("chat_id", chatID)),
		BaseURL:   DefaultBaseURL,
		ParseMode: DefaultParseMode,
	}, nil
}

// WithHTTPClient replaces the client used to reach the API.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

type response struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Send posts text to the configured chat. It does not retry.
func (c Client) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                c.chatID,
		Text:                  text,
		ParseMode:             c.ParseMode,
		DisableWebPagePreview: c.DisablePreview,
	})
	if err != nil {
		return fmt.Errorf("%w: encoding request: %v", ErrDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending message", zap.Int("length", len(text)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL carries the bot token, keep it out of the error.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrDelivery, err)
	}

	var res response
	if err := json.Unmarshal(raw, &res); err != nil {
		return fmt.Errorf("%w: unexpected response (status %d): %v", ErrDelivery, resp.StatusCode, err)
	}
	c.logger.Debug("telegram response", zap.Bool("ok", res.OK), zap.ByteString("body", raw))

	if !res.OK {
		return &APIError{Code: res.ErrorCode, Description: res.Description}
	}
	return nil
}

func (c Client) endpoint(method string) string {
	return c.BaseURL + "/bot" + c.token + "/" + method
}
