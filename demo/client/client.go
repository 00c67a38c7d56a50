package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voiceguard/types"
)

// Client talks to a running voiceguard server
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// DetectResponse is the body returned by both detection endpoints
type DetectResponse struct {
	Success   bool                  `json:"success"`
	Filename  string                `json:"filename,omitempty"`
	Detection types.DetectionResult `json:"detection"`
	Error     string                `json:"error,omitempty"`
	ErrorKind string                `json:"error_kind,omitempty"`
}

// NewClient creates a client. A non-empty apiKey routes uploads through
// /api/detect instead of the browser endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		// detection polls the provider, so requests can take minutes
		httpClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

// UsesAPI reports whether uploads go through /api/detect
func (c *Client) UsesAPI() bool { return c.apiKey != "" }

// Health checks that the server is up
func (c *Client) Health() (*HealthResponse, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/health")
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &health, nil
}

// Detect uploads the file at path using whichever endpoint the client is
// configured for.
func (c *Client) Detect(path string) (*DetectResponse, error) {
	if c.UsesAPI() {
		return c.DetectBase64(path)
	}
	return c.DetectFile(path)
}

// DetectFile uploads path as multipart form data to /detect
func (c *Client) DetectFile(path string) (*DetectResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/detect", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

// DetectBase64 sends path as a base64 JSON payload to /api/detect
func (c *Client) DetectBase64(path string) (*DetectResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	payload, err := json.Marshal(map[string]string{
		"audio_base64_format": base64.StdEncoding.EncodeToString(data),
		"audio_format":        strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/detect", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*DetectResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var out DetectResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	if !out.Success {
		return &out, fmt.Errorf("server returned %d: %s", resp.StatusCode, out.Error)
	}
	return &out, nil
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
