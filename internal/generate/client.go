package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	bserrors "bigschedule/internal/errors"
	"bigschedule/internal/logging"
)

// Config carries the settings for the chat completions client.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    int // seconds
	MaxRetries int
	Referer    string // HTTP-Referer attribution header
	Title      string // X-Title attribution header
}

// Client speaks the OpenAI-compatible chat completions API.
type Client struct {
	model      string
	apiKey     string
	baseURL    string
	referer    string
	title      string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
	logger     logging.Logger
	now        func() time.Time
}

// NewClient constructs a completions client from config. BaseURL defaults to
// OpenRouter's OpenAI-compatible endpoint.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://openrouter.ai/api/v1"
	}

	timeout := 120 * time.Second
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}

	return &Client{
		model:      config.Model,
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		referer:    config.Referer,
		title:      config.Title,
		maxRetries: config.MaxRetries,
		backoff:    time.Second,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewComponentLogger("Generate"),
		now:        time.Now,
	}
}

// Draft asks the model to turn the user's free-text input into a structured
// agenda draft. On unparseable model output it returns a *ParseError whose
// Raw field holds the model's text; transport-level transient failures are
// retried up to the configured limit before giving up.
func (c *Client) Draft(ctx context.Context, input string) (*Draft, error) {
	prompt := buildPrompt(input, c.now())

	var content string
	var err error
	for attempt := 0; ; attempt++ {
		content, err = c.complete(ctx, prompt)
		if err == nil || attempt >= c.maxRetries || !bserrors.IsTransient(err) {
			break
		}
		c.logger.Warn("completion attempt %d failed, retrying: %v", attempt+1, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * c.backoff):
		}
	}
	if err != nil {
		return nil, err
	}

	draft, err := ExtractDraft(content)
	if err != nil {
		c.logger.Error("model output was not parseable JSON: %v", err)
		return nil, err
	}
	return draft, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	c.logger.Debug("POST %s model=%s", endpoint, c.model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", bserrors.NewTransientError(err, "completion request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("completion status %d, %d bytes", resp.StatusCode, len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", bserrors.FromHTTPStatus(resp.StatusCode, respBody)
	}

	var oaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &oaiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if oaiResp.Error != nil && oaiResp.Error.Message != "" {
		msg := oaiResp.Error.Message
		if oaiResp.Error.Type != "" {
			msg = fmt.Sprintf("%s: %s", oaiResp.Error.Type, oaiResp.Error.Message)
		}
		return "", bserrors.NewPermanentError(errors.New(msg), msg)
	}

	if len(oaiResp.Choices) == 0 || oaiResp.Choices[0].Message.Content == "" {
		return "", bserrors.NewTransientError(errors.New("no choices in response"), "no content received from LLM")
	}

	return oaiResp.Choices[0].Message.Content, nil
}
