// Package client is the typed Go client for the student directory API. It is
// the single chokepoint through which callers observe server failures: every
// non-2xx response becomes an *APIError and every transport failure wraps
// ErrUnreachable, so no raw network or decode error ever escapes unconverted.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnreachable marks transport-level failures: the server never produced a
// response at all. Distinguish it from *APIError, which carries a real HTTP
// status.
var ErrUnreachable = errors.New("student directory API unreachable")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the error is a 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Student mirrors the record shape served by the API.
type Student struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Program        string `json:"program,omitempty"`
	Year           int    `json:"year,omitempty"`
	Status         string `json:"status,omitempty"`
	EnrollmentDate string `json:"enrollmentDate,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
	Timestamp      int64  `json:"_ts,omitempty"`
}

// StudentForm is the create payload. firstName, lastName and email are
// required by the server.
type StudentForm struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Program        string `json:"program,omitempty"`
	Year           int    `json:"year,omitempty"`
	Status         string `json:"status,omitempty"`
	EnrollmentDate string `json:"enrollmentDate,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

// StudentPatch is the partial update payload. Nil fields are left out of the
// request entirely, so the server keeps their stored values.
type StudentPatch struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Program        *string `json:"program,omitempty"`
	Year           *int    `json:"year,omitempty"`
	Status         *string `json:"status,omitempty"`
	EnrollmentDate *string `json:"enrollmentDate,omitempty"`
	Avatar         *string `json:"avatar,omitempty"`
}

// DeleteResult acknowledges a delete.
type DeleteResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Health is the health endpoint body.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client talks to one student directory API instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:4000".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client,
// which also carries any custom timeout policy.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetAll returns the directory, optionally narrowed by the server-side
// free-text search. Pass "" for the full set.
func (c *Client) GetAll(ctx context.Context, search string) ([]Student, error) {
	endpoint := "/api/students"
	if search != "" {
		endpoint += "?search=" + url.QueryEscape(search)
	}

	var students []Student
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetByID returns a single record.
func (c *Client) GetByID(ctx context.Context, id string) (*Student, error) {
	var student Student
	if err := c.do(ctx, http.MethodGet, "/api/students/"+url.PathEscape(id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create adds a new record and returns it with its server-assigned fields.
func (c *Client) Create(ctx context.Context, form StudentForm) (*Student, error) {
	var student Student
	if err := c.do(ctx, http.MethodPost, "/api/students", form, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Update merges the patch over an existing record and returns the result.
func (c *Client) Update(ctx context.Context, id string, patch StudentPatch) (*Student, error) {
	var student Student
	if err := c.do(ctx, http.MethodPut, "/api/students/"+url.PathEscape(id), patch, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	var result DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/api/students/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckHealth queries the liveness endpoint.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// do performs one JSON round-trip and normalizes every failure mode.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage pulls the message out of an {"error": ...} body, falling back
// to the HTTP status text when the body is not parseable JSON.
func errorMessage(raw []byte, statusCode int) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(statusCode)
}
