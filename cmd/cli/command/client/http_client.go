package client

// http_client.go talks to a running editorial API server.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"editorial/internal/http-api/dto"
	"editorial/internal/http-api/service"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken sets the session token sent as a Bearer header.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Health() (*HealthResponse, error) {
	var result HealthResponse
	if err := c.do(http.MethodGet, "/health", nil, http.StatusOK, &result); err != nil {
		// a 503 still carries a useful body
		if result.Status != "" {
			return &result, err
		}
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Login(request *dto.LoginRequest) (*dto.LoginResponse, error) {
	var result dto.LoginResponse
	if err := c.do(http.MethodPost, "/login", request, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) Logout() error {
	return c.do(http.MethodPost, "/logout", nil, http.StatusOK, nil)
}

// Stats fetches the admin report counters.
func (c *HTTPClient) Stats() (*service.Stats, error) {
	var result struct {
		Stats service.Stats `json:"stats"`
	}
	if err := c.do(http.MethodGet, "/admin/reports", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result.Stats, nil
}

// APIError is a non-success response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d", e.StatusCode)
	}
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

func (c *HTTPClient) do(method, path string, body any, want int, out any) error {
	payload := bytes.NewReader(nil)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode != want {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &apiErr)
		if out != nil {
			_ = json.Unmarshal(data, out)
		}
		return &APIError{StatusCode: response.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
