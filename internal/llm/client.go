package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hrakoto/tailor/internal/model"
)

// Sampling policy for every call. Fixed rather than caller-tunable so each
// stage has predictable latency and cost.
const (
	temperature = 0.7
	maxTokens   = 2000
)

// Defaults applied by NewClient when the config leaves them empty.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// Client calls an OpenAI-compatible /chat/completions endpoint. It performs
// no retries; a failed call is reported once and the caller decides what to do.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a completion client. Empty baseURL and modelName fall back
// to the OpenAI defaults.
func NewClient(baseURL, apiKey, modelName string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      modelName,
		httpClient: httpClient,
	}
}

// Configured reports whether an API key is attached.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// chatRequest mirrors the /chat/completions request body.
type chatRequest struct {
	Model       string          `json:"model"`
	Messages    []model.Message `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

// chatResponse mirrors the relevant fields of the provider response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// errorResponse mirrors the provider's structured error body.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the messages, with an optional leading system message, and
// returns the first choice's text verbatim.
//
// Failure modes: model.ErrMissingCredential before any I/O when no key is
// configured, *model.ProviderError on a non-2xx response, *model.NetworkError
// on transport failure or an undecodable response body.
func (c *Client) Complete(ctx context.Context, messages []model.Message, systemPrompt string) (string, error) {
	if !c.Configured() {
		return "", model.ErrMissingCredential
	}

	all := make([]model.Message, 0, len(messages)+1)
	if systemPrompt != "" {
		all = append(all, model.Message{Role: model.RoleSystem, Content: systemPrompt})
	}
	all = append(all, messages...)

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    all,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &model.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &model.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    providerMessage(respBytes),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", &model.NetworkError{Err: fmt.Errorf("parse response: %w", err)}
	}
	if len(chatResp.Choices) == 0 {
		return "", &model.NetworkError{Err: fmt.Errorf("response contained no choices")}
	}

	return chatResp.Choices[0].Message.Content, nil
}

// providerMessage extracts error.message from the provider's error body,
// falling back to a generic string when the body has some other shape.
func providerMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	return "completion request failed"
}
