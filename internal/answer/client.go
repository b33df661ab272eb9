package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// QueryResult is the structured reply from POST /nl-query: the generated SQL,
// the tabular data it produced, and a human-readable answer.
type QueryResult struct {
	SQL     string   `json:"sql"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Answer  string   `json:"answer"`
}

// HealthStatus is the reply from the endpoint's root health route.
type HealthStatus struct {
	Status string `json:"status"`
}

// Client is the typed wrapper around the Answer Endpoint. It performs no
// retries and no caching, and enforces no timeout beyond what the transport
// provides; cancellation is the caller's job via ctx.
type Client interface {
	// AskQuestion sends a natural-language question and returns the
	// structured result.
	AskQuestion(ctx context.Context, question string) (*QueryResult, error)
	// ChatReply is the narrower query/response exchange: the prompt travels
	// as a query parameter on a GET rather than a JSON body on a POST.
	ChatReply(ctx context.Context, prompt string) (string, error)
	// Health probes the endpoint's root route.
	Health(ctx context.Context) (*HealthStatus, error)
}

type httpClient struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a Client for the given base URL. The URL is read once at
// construction and treated as immutable for the process lifetime.
func NewClient(baseURL string) Client {
	return &httpClient{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *httpClient) AskQuestion(ctx context.Context, question string) (*QueryResult, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, fmt.Errorf("could not marshal question: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/nl-query", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, requestError(resp)
	}

	var result QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &MalformedError{Cause: err}
	}
	return &result, nil
}

func (c *httpClient) ChatReply(ctx context.Context, prompt string) (string, error) {
	endpoint := c.baseURL + "/chat-rep?prompt=" + url.QueryEscape(prompt)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("could not create http request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode)
	}

	var reply struct {
		Statement string `json:"statement"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", &MalformedError{Cause: err}
	}
	return reply.Statement, nil
}

func (c *httpClient) Health(ctx context.Context) (*HealthStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, &MalformedError{Cause: err}
	}
	return &status, nil
}

// requestError extracts the human-readable `detail` field from a structured
// error body. When the body itself cannot be parsed, the fixed fallback
// phrase is used instead.
func requestError(resp *http.Response) error {
	detail := FallbackDetail
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		detail = body.Detail
	}
	return &RequestError{StatusCode: resp.StatusCode, Detail: detail}
}

// statusError builds the status-code-derived error used by the routes that
// have no structured error body contract.
func statusError(statusCode int) error {
	return &RequestError{
		StatusCode: statusCode,
		Detail:     fmt.Sprintf("unexpected status %d from answer endpoint", statusCode),
	}
}
