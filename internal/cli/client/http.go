// Package client implements the askdb command-line client.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:5000"

// APIClient is an HTTP client for the askdb API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClientWithCmd creates an APIClient, resolving the server URL through
// the cascade: --api-url flag, ASKDB_API_URL env var, global config file,
// built-in default.
func NewAPIClientWithCmd(cmd *cobra.Command) (*APIClient, error) {
	var flagURL string
	if cmd != nil {
		flagURL, _ = cmd.Flags().GetString("api-url")
	}

	_, baseURL := GetServerSource(flagURL)

	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Pipeline requests chain several model calls plus a
			// database query, so allow generous headroom.
			Timeout: 120 * time.Second,
		},
	}, nil
}

// NewAPIClient creates an APIClient using .env and the config cascade.
func NewAPIClient() (*APIClient, error) {
	_ = godotenv.Load()
	return NewAPIClientWithCmd(nil)
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	ErrorText  string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (%d): %s: %s", e.StatusCode, e.ErrorText, e.Message)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.ErrorText)
}

// Get performs a GET request and returns the raw response body.
func (c *APIClient) Get(path string) (json.RawMessage, error) {
	return c.do("GET", path, nil)
}

// Post performs a POST request with a JSON body and returns the raw
// response body.
func (c *APIClient) Post(path string, body interface{}) (json.RawMessage, error) {
	return c.do("POST", path, body)
}

func (c *APIClient) do(method, path string, body interface{}) (json.RawMessage, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error        string `json:"error"`
			Message      string `json:"message"`
			ErrorMessage string `json:"error_message"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			message := errResp.Message
			if message == "" {
				message = errResp.ErrorMessage
			}
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				ErrorText:  errResp.Error,
				Message:    message,
			}
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorText:  string(respBody),
		}
	}

	return respBody, nil
}
