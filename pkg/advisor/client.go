package advisor

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
)

// DefaultBaseURL is the OpenAI API root. Any server speaking the same
// chat-completions protocol can be used instead.
const DefaultBaseURL = "https://api.openai.com/v1"

// Errors returned by the chat client and the advisor.
var (
	ErrAuthentication    = errors.New("AI API authentication failed, check your API key")
	ErrRateLimited       = errors.New("AI API rate limit exceeded, try again later")
	ErrUpstream          = errors.New("AI API error")
	ErrMalformedResponse = errors.New("malformed AI response")
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks the model for a specific output shape.
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the body of a chat-completion call.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is the subset of the chat-completion response we read.
type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Completer runs a chat completion and returns the content of the first choice.
type Completer interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}

// Client is a chat-completions HTTP client. Calls are never retried.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL (DefaultBaseURL when
// empty) authenticating with apiKey as a bearer token.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   3 * time.Minute, // model latency on large prompts
			Transport: transport,
		},
	}
}

// ChatCompletion posts req to /chat/completions.
// HTTP 401 and 403 map to ErrAuthentication, 429 to ErrRateLimited and every
// other failure to ErrUpstream.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response body: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := apiErrorMessage(body)
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", fmt.Errorf("%w: %s", ErrAuthentication, msg)
		case http.StatusTooManyRequests:
			return "", fmt.Errorf("%w: %s", ErrRateLimited, msg)
		default:
			return "", fmt.Errorf("%w: request failed with status %d: %s", ErrUpstream, resp.StatusCode, msg)
		}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", ErrUpstream, err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrUpstream)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func apiErrorMessage(body []byte) string {
	var e apiErrorBody
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return excerpt(string(body), 200)
}

func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
