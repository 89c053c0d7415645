package newsdesk

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/fantachat/fantachat-api/internal/platform/logging"
	"github.com/fantachat/fantachat-api/internal/platform/resilience"
	"github.com/fantachat/fantachat-api/internal/usecase"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4.1-mini"

	systemPrompt = "Sei un giornalista sportivo italiano che scrive per il giornale di una lega fantacalcio tra amici. " +
		"Rispondi esclusivamente con un oggetto JSON {\"title\": string, \"content\": string}, senza testo fuori dal JSON."
)

var errNewsdeskTransient = crerr.New("newsdesk transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the OpenAI chat completions API to turn a matchday
// brief into a newspaper piece.
type Client struct {
	httpClient     *http.Client
	completionsURL string
	apiKey         string
	model          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 60 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		completionsURL: baseURL + "/chat/completions",
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          model,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Compose sends the brief and parses the {title, content} answer.
func (c *Client) Compose(ctx context.Context, prompt string) (string, string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", "", fmt.Errorf("prompt is required")
	}
	if c.apiKey == "" {
		return "", "", fmt.Errorf("%w: newsdesk api key is not configured", usecase.ErrDependencyUnavailable)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return "", "", fmt.Errorf("%w: newsdesk circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	body, err := c.buildRequestBody(prompt)
	if err != nil {
		return "", "", err
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		title, content, err := c.complete(ctx, body)
		if err == nil {
			if c.circuitEnabled {
				c.breaker.RecordSuccess()
			}
			return title, content, nil
		}
		lastErr = err
		if !isTransient(err) {
			break
		}
		c.logger.WarnContext(ctx, "newsdesk completion failed", "attempt", attempt+1, "error", err)
	}

	if c.circuitEnabled && isTransient(lastErr) {
		c.breaker.RecordFailure()
	}
	if isTransient(lastErr) {
		return "", "", fmt.Errorf("%w: newsdesk unavailable", usecase.ErrDependencyUnavailable)
	}

	return "", "", lastErr
}

func (c *Client) buildRequestBody(prompt string) ([]byte, error) {
	payload := completionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}
	if _, err := buf.Write(encoded); err != nil {
		return nil, fmt.Errorf("buffer completion request: %w", err)
	}

	return append([]byte(nil), buf.B...), nil
}

func (c *Client) complete(ctx context.Context, body []byte) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL, bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", crerr.WithSecondaryError(errNewsdeskTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", "", fmt.Errorf("read completion response: %w", err)
	}
	if isRetryableStatus(resp.StatusCode) {
		return "", "", crerr.Wrapf(errNewsdeskTransient, "completion status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("completion failed with status %d", resp.StatusCode)
	}

	var decoded completionResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return "", "", fmt.Errorf("unmarshal completion response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", "", fmt.Errorf("completion returned no choices")
	}

	return parseDraft(decoded.Choices[0].Message.Content)
}

// parseDraft tolerates models that wrap the JSON in a code fence.
func parseDraft(content string) (string, string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var draft articleDraft
	if err := sonic.Unmarshal([]byte(content), &draft); err != nil {
		return "", "", fmt.Errorf("unmarshal article draft: %w", err)
	}
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		return "", "", fmt.Errorf("article draft is missing title or content")
	}

	return draft.Title, draft.Content, nil
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type articleDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func isTransient(err error) bool {
	return stderrors.Is(err, errNewsdeskTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
