// Package translate wraps the Google translate web endpoint used for
// language detection and English↔Uzbek translation.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://translate.googleapis.com/translate_a/single"
	requestTimeout = 10 * time.Second

	// FallbackLanguage is assumed whenever detection fails.
	FallbackLanguage = "en"
)

// Client calls the translation endpoint over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a translation client with the default endpoint
func NewClient(logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// Detect returns the detected language code of text. Detection never fails:
// on any error or an unsupported code it falls back to "en" with a log entry.
func (c *Client) Detect(ctx context.Context, text string) string {
	_, detected, err := c.request(ctx, text, "auto", FallbackLanguage)
	if err != nil {
		c.logger.Error("Language detection failed, assuming English", zap.Error(err))
		return FallbackLanguage
	}
	if detected == "" || detected == "und" || !IsSupported(detected) {
		c.logger.Warn("Detected language not supported, assuming English",
			zap.String("detected", detected),
		)
		return FallbackLanguage
	}
	return detected
}

// Translate translates text from src to dest. Unlike Detect, failures are
// surfaced to the caller.
func (c *Client) Translate(ctx context.Context, text, src, dest string) (string, error) {
	translated, _, err := c.request(ctx, text, src, dest)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	return translated, nil
}

// request performs one endpoint call and returns both the translated text
// and the source language the provider reports.
func (c *Client) request(ctx context.Context, text, src, dest string) (translated, detected string, err error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", src)
	params.Set("tl", dest)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("translation API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read translation response: %w", err)
	}

	return parseResponse(body)
}

// parseResponse unpacks the endpoint's nested-array payload:
// [[["<translated>","<original>",...],...],null,"<detected-lang>",...].
func parseResponse(body []byte) (translated, detected string, err error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", fmt.Errorf("malformed translation response: %w", err)
	}
	if len(payload) == 0 {
		return "", "", fmt.Errorf("empty translation response")
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", "", fmt.Errorf("unexpected translation segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		var parts []json.RawMessage
		if err := json.Unmarshal(seg, &parts); err != nil || len(parts) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(parts[0], &piece); err == nil {
			sb.WriteString(piece)
		}
	}

	if len(payload) > 2 {
		// A null detected-language slot is tolerated.
		_ = json.Unmarshal(payload[2], &detected)
	}

	return sb.String(), strings.ToLower(detected), nil
}
