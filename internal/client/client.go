// Package client is an HTTP client for a running taskd server.
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

	"github.com/dyluth/taskd/pkg/taskstore"
)

// APIError is a non-success response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is a 409 from the server.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client calls the task routes of one server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL (e.g. http://localhost:8080).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Create stores a new task. Returns an APIError with status 409 if the id is taken.
func (c *Client) Create(ctx context.Context, task *taskstore.Task) error {
	_, err := c.do(ctx, http.MethodPost, "/create_task", task, http.StatusCreated)
	return err
}

// Get fetches a task by id.
func (c *Client) Get(ctx context.Context, id string) (*taskstore.Task, error) {
	body, err := c.do(ctx, http.MethodGet, "/read_task/"+url.PathEscape(id), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var task taskstore.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return &task, nil
}

// Update overwrites the non-empty fields of task on the record for id.
func (c *Client) Update(ctx context.Context, id string, task *taskstore.Task) error {
	_, err := c.do(ctx, http.MethodPut, "/update_task/"+url.PathEscape(id), task, http.StatusOK)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any, want int) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return nil, apiErr
	}
	return body, nil
}
