// internal/upstream/client.go
package upstream

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

	"github.com/sirupsen/logrus"

	"github.com/AbdulAhad210904/Pro-connect/internal/logger"
)

// Base paths of the remote API.
const (
	usersPath    = "/proconnect/api/users"
	paymentsPath = "/proconnect/api"
	projectsPath = "/api/projects"
	sessionsPath = "/api/sessions"
)

// DefaultTimeout bounds a single call to the remote API.
const DefaultTimeout = 30 * time.Second

var (
	// ErrUnavailable wraps transport failures (DNS, refused, timeout).
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrContactLimitReached is returned when the craftsman's plan allows no
	// further contacts.
	ErrContactLimitReached = errors.New("contact limit reached")
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed upstream response")

	customLog = logger.NewLogger()
)

// APIError is a non-2xx answer from the remote API. Message is the
// server-provided text, or a generic fallback when the body had none.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// FallbackMessage is used when an error body carries no message.
func FallbackMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "Authentication failed. Please log in again."
	case status == http.StatusForbidden:
		return "You are not allowed to perform this action."
	case status == http.StatusNotFound:
		return "The requested resource was not found."
	case status >= 500:
		return "The server encountered an error. Please try again later."
	default:
		return "An error occurred. Please try again."
	}
}

// Client talks to the remote ProConnect REST API. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL (scheme and host, no trailing slash).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	return req, nil
}

// doJSON sends in (when non-nil) as a JSON body and decodes the answer into
// out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, token, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	fields := logrus.Fields{"method": req.Method, "path": req.URL.Path}

	resp, err := c.httpClient.Do(req)
	fields["duration"] = time.Since(start).String()
	if err != nil {
		customLog.WithFields(fields).Warnf("upstream request failed: %v", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	fields["status"] = resp.StatusCode
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		customLog.WithFields(fields).Warnf("reading upstream body failed: %v", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		customLog.WithFields(fields).Warn("upstream returned an error status")
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
	}
	customLog.WithFields(fields).Debug("upstream call")

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// errorMessage pulls "message" (or "error") out of an error body.
func errorMessage(data []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return FallbackMessage(status)
}

// statusText is the plain-status answer of the verification and account
// endpoints: {"status": "..."} or {"message": "..."} or a bare JSON string.
type statusText string

func (s *statusText) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*s = statusText(plain)
		return nil
	}
	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	if body.Status != "" {
		*s = statusText(body.Status)
	} else {
		*s = statusText(body.Message)
	}
	return nil
}
