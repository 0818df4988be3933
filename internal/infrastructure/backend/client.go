package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"walletadmin/internal/domain/transaction"
)

const (
	defaultTimeout = 15 * time.Second

	// IdempotencyHeader carries TransitionRequest.IdempotencyKey
	IdempotencyHeader = "Idempotency-Key"
)

// Client submits status transitions to the wallet backend's admin API.
// It implements transaction.Submitter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

var _ transaction.Submitter = (*Client)(nil)

// NewClient creates a backend client. Outgoing requests are traced.
func NewClient(baseURL, apiToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiToken: apiToken,
	}
}

// ErrorResponse is the backend's error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

type statusBody struct {
	Status string `json:"status"`
	Actor  string `json:"actor,omitempty"`
}

// statusPath maps a record kind to the backend route that changes its status
func statusPath(req transaction.TransitionRequest) (string, error) {
	id := strconv.FormatInt(req.RecordID, 10)
	switch req.Kind {
	case transaction.KindRequest:
		return "/admin/bank-requests/" + id + "/status", nil
	case transaction.KindHistory:
		return "/admin/transaction-histories/" + id + "/status", nil
	}
	return "", transaction.ErrInvalidKind
}

func (c *Client) Submit(ctx context.Context, tr transaction.TransitionRequest) error {
	path, err := statusPath(tr)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(statusBody{Status: tr.To, Actor: tr.Actor})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(IdempotencyHeader, tr.IdempotencyKey)
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errResp ErrorResponse
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &errResp); err == nil && (errResp.Message != "" || errResp.Error != "") {
		msg = strings.TrimSpace(errResp.Error + " " + errResp.Message)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}
