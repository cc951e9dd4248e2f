package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1/"
	DefaultModel       = "meta-llama/llama-4-scout-17b-16e-instruct"
	DefaultTemperature = 0.3

	// ErrorPrefix starts every message produced for a non-200 upstream response.
	ErrorPrefix = "ERROR"
)

// StatusError is returned when the completion endpoint answers with anything
// other than HTTP 200. Body holds the raw response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d - %s", ErrorPrefix, e.StatusCode, e.Body)
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	// Timeout bounds a single request. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OpenAISummarizer calls an OpenAI-compatible Chat Completions API to produce
// summaries.
type OpenAISummarizer struct {
	client      openai.Client
	model       openai.ChatModel
	temperature float64
}

// NewOpenAISummarizer builds a new summarizer instance. SDK retries are
// disabled: every failure is terminal for the invocation.
func NewOpenAISummarizer(cfg OpenAIConfig) (*OpenAISummarizer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithMiddleware(statusMiddleware),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &OpenAISummarizer{
		client:      openai.NewClient(opts...),
		model:       openai.ChatModel(model),
		temperature: cfg.Temperature,
	}, nil
}

// Summarize sends the whole transcript in one request and returns the message
// content of the first choice.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	if strings.TrimSpace(input.Text) == "" {
		return "", errors.New("input is empty")
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(input.Text)),
		},
		Temperature: openai.Float(s.temperature),
	})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return "", statusErr
		}
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	summary := resp.Choices[0].Message.Content
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("message content is missing (finishReason = %s)", resp.Choices[0].FinishReason)
	}

	return summary, nil
}

// statusMiddleware turns every non-200 response into a StatusError carrying the
// raw body, before the SDK tries to decode it.
func statusMiddleware(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	resp, err := next(req)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body (status = %d): %w", resp.StatusCode, err)
	}

	return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
