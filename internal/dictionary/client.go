// Package dictionary normalizes dictionaryapi.dev responses into a bounded
// set of glosses, one phonetic transcription and an optional audio URL.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/domain"
)

const (
	defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	requestTimeout = 15 * time.Second

	// DefinitionMarker prefixes every retained definition.
	DefinitionMarker = "👉 "
)

// Failure classes. Each maps to a distinct user-facing message upstream.
var (
	ErrEmptyWord         = errors.New("empty word")
	ErrTimeout           = errors.New("dictionary request timed out")
	ErrNetwork           = errors.New("dictionary API unreachable")
	ErrMalformedResponse = errors.New("malformed dictionary response body")
	ErrUnexpectedFormat  = errors.New("unexpected dictionary response format")
)

// NotFoundError reports that the provider knows no such word.
type NotFoundError struct {
	Word string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no definitions found for %q", e.Word)
}

// StatusError reports a non-404 HTTP failure or a provider-side error object.
type StatusError struct {
	Code  int
	Title string
}

func (e *StatusError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("dictionary API error: %s", e.Title)
	}
	return fmt.Sprintf("dictionary API returned HTTP %d", e.Code)
}

// Client calls the dictionary API over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a dictionary client with the default endpoint and timeout
func NewClient(logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// API response shapes.
type entry struct {
	Word      string     `json:"word"`
	Phonetics []phonetic `json:"phonetics"`
	Meanings  []meaning  `json:"meanings"`
}

type phonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type meaning struct {
	PartOfSpeech string           `json:"partOfSpeech"`
	Definitions  []definitionItem `json:"definitions"`
}

type definitionItem struct {
	Definition string `json:"definition"`
}

type apiError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Lookup fetches up to maxDefinitions glosses for an English word. Blank
// input is rejected without a network call; the word is lowercased and
// trimmed before the request. Only the first returned entry is used.
func (c *Client) Lookup(ctx context.Context, word string, maxDefinitions int) (*domain.Lookup, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}
	word = strings.ToLower(word)

	reqURL := c.BaseURL + "/" + url.PathEscape(word)
	c.logger.Info("Requesting definition", zap.String("word", word), zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(word, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(word, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Warn("Word not found", zap.String("word", word))
		return nil, &NotFoundError{Word: word}
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("Dictionary API HTTP error",
			zap.String("word", word),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return c.parseBody(word, body, maxDefinitions)
}

func (c *Client) classifyTransportError(word string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.logger.Error("Dictionary request timed out", zap.String("word", word))
		return fmt.Errorf("%w: %s", ErrTimeout, word)
	}
	c.logger.Error("Dictionary request failed", zap.String("word", word), zap.Error(err))
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func (c *Client) parseBody(word string, body []byte, maxDefinitions int) (*domain.Lookup, error) {
	var entries []entry
	if err := json.Unmarshal(body, &entries); err == nil {
		if len(entries) == 0 {
			return nil, ErrUnexpectedFormat
		}
		return buildLookup(word, entries[0], maxDefinitions), nil
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Title != "" {
		c.logger.Warn("Dictionary API reported error",
			zap.String("word", word),
			zap.String("title", apiErr.Title),
			zap.String("message", apiErr.Message),
		)
		if apiErr.Title == "No Definitions Found" {
			return nil, &NotFoundError{Word: word}
		}
		return nil, &StatusError{Title: apiErr.Title}
	}

	if !json.Valid(body) {
		c.logger.Error("Dictionary API returned invalid JSON",
			zap.String("word", word),
			zap.ByteString("body", truncate(body, 200)),
		)
		return nil, ErrMalformedResponse
	}

	c.logger.Warn("Unexpected dictionary response shape",
		zap.String("word", word),
		zap.ByteString("body", truncate(body, 200)),
	)
	return nil, ErrUnexpectedFormat
}

// buildLookup extracts the phonetic, audio and definitions from one entry.
func buildLookup(word string, e entry, maxDefinitions int) *domain.Lookup {
	text, audio := selectPhonetic(e.Phonetics)
	if text == "" {
		text = domain.PhoneticUnavailable
	}

	defs := collectDefinitions(e.Meanings, maxDefinitions)
	if len(defs) == 0 {
		defs = []string{domain.NoDefinitionsPlaceholder}
	}

	return &domain.Lookup{
		Word:        word,
		Phonetic:    text,
		Audio:       audio,
		Definitions: defs,
	}
}

// selectPhonetic picks the best phonetic record: text counts 4, an .mp3
// audio 2, any audio 1. A record with both text and mp3 short-circuits the
// scan; ties keep the earliest record.
func selectPhonetic(records []phonetic) (text, audio string) {
	bestScore := -1
	for _, p := range records {
		hasText := p.Text != ""
		hasAudio := p.Audio != ""
		isMP3 := hasAudio && strings.HasSuffix(p.Audio, ".mp3")

		score := 0
		if hasText {
			score += 4
		}
		if isMP3 {
			score += 2
		}
		if hasAudio {
			score++
		}

		if score > bestScore {
			bestScore = score
			text, audio = p.Text, p.Audio
		}
		if hasText && isMP3 {
			break
		}
	}
	return text, audio
}

// collectDefinitions walks meanings in order, keeping non-empty definitions
// until the cap is reached. A cap of zero yields an empty slice.
func collectDefinitions(meanings []meaning, max int) []string {
	var defs []string
	for _, m := range meanings {
		for _, d := range m.Definitions {
			if len(defs) >= max {
				return defs
			}
			if d.Definition == "" {
				continue
			}
			defs = append(defs, DefinitionMarker+d.Definition)
		}
	}
	return defs
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
