// Package realitydefender is a minimal client for the Reality Defender
// media analysis API.
package realitydefender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voiceguard/types"

	"github.com/gabriel-vasile/mimetype"
)

const maxErrorBody = 512

// ErrMissingAPIKey is returned by New when no API key is configured
var ErrMissingAPIKey = errors.New("reality defender API key is empty")

// Config configures a Client
type Config struct {
	APIKey       string
	BaseURL      string
	PollInterval time.Duration
	HTTPClient   *http.Client // optional
}

// Client uploads media to Reality Defender and waits for the verdict
type Client struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	httpClient   *http.Client
}

// New creates a client. Each call returns an independent client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = newHTTPClient()
	}
	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		pollInterval: cfg.PollInterval,
		httpClient:   httpc,
	}, nil
}

func newHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
	}
	// No client timeout: large uploads are bounded by the caller's context.
	return &http.Client{Transport: tr}
}

type presignedResponse struct {
	Response struct {
		SignedURL string `json:"signedUrl"`
	} `json:"response"`
	RequestID string `json:"requestId"`
	MediaID   string `json:"mediaId"`
}

type mediaModel struct {
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	PredictionNumber *float64 `json:"predictionNumber"`
	FinalScore       *float64 `json:"finalScore"`
}

type mediaResult struct {
	RequestID      string `json:"requestId"`
	OverallStatus  string `json:"overallStatus"`
	ResultsSummary *struct {
		Status   string `json:"status"`
		Metadata struct {
			FinalScore *float64 `json:"finalScore"`
		} `json:"metadata"`
	} `json:"resultsSummary"`
	Models []mediaModel `json:"models"`
}

// DetectFile uploads the file at path and polls until the analysis
// finishes or ctx ends. The returned map has the keys status, score,
// request_id and models.
func (c *Client) DetectFile(ctx context.Context, path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read media file: %w", err)
	}

	presigned, err := c.presign(ctx, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if err := c.upload(ctx, presigned.Response.SignedURL, data); err != nil {
		return nil, err
	}
	log.Printf("📤 Uploaded %s to provider (request %s)", filepath.Base(path), presigned.RequestID)

	res, err := c.waitForResult(ctx, presigned.RequestID)
	if err != nil {
		return nil, err
	}
	return formatResult(presigned.RequestID, res), nil
}

func (c *Client) presign(ctx context.Context, fileName string) (*presignedResponse, error) {
	var out presignedResponse
	payload := map[string]string{"fileName": fileName}
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/files/aws-presigned", payload, &out); err != nil {
		return nil, fmt.Errorf("request upload url: %w", err)
	}
	if out.Response.SignedURL == "" {
		return nil, errors.New("request upload url: response has no signed url")
	}
	if out.RequestID == "" {
		return nil, errors.New("request upload url: response has no request id")
	}
	return &out, nil
}

func (c *Client) upload(ctx context.Context, signedURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mimetype.Detect(data).String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("upload returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) waitForResult(ctx context.Context, requestID string) (*mediaResult, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var res mediaResult
		if err := c.doJSONRequest(ctx, http.MethodGet, "/api/media/users/"+requestID, nil, &res); err != nil {
			return nil, fmt.Errorf("fetch result: %w", err)
		}
		if status := summaryStatus(&res); status != "" && status != types.StatusAnalyzing {
			return &res, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for result %s: %w", requestID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// doJSONRequest performs a JSON request against the API and decodes the
// response into result.
func (c *Client) doJSONRequest(ctx context.Context, method, path string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("API returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func summaryStatus(res *mediaResult) string {
	if res.ResultsSummary != nil && res.ResultsSummary.Status != "" {
		return normalizeStatus(res.ResultsSummary.Status)
	}
	return normalizeStatus(res.OverallStatus)
}

// normalizeStatus maps the API's FAKE verdict onto MANIPULATED.
func normalizeStatus(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "FAKE" {
		return types.StatusManipulated
	}
	return s
}

func formatResult(requestID string, res *mediaResult) types.RawResponse {
	var score any
	if res.ResultsSummary != nil && res.ResultsSummary.Metadata.FinalScore != nil {
		score = unitScore(*res.ResultsSummary.Metadata.FinalScore)
	}

	models := make([]any, 0, len(res.Models))
	for _, m := range res.Models {
		if strings.EqualFold(m.Status, "NOT_APPLICABLE") {
			continue
		}
		models = append(models, map[string]any{
			"name":   m.Name,
			"status": normalizeStatus(m.Status),
			"score":  modelScore(m),
		})
	}

	if res.RequestID != "" {
		requestID = res.RequestID
	}
	return types.RawResponse{
		"status":     summaryStatus(res),
		"score":      score,
		"request_id": requestID,
		"models":     models,
	}
}

func modelScore(m mediaModel) float64 {
	switch {
	case m.FinalScore != nil:
		return unitScore(*m.FinalScore)
	case m.PredictionNumber != nil:
		return unitScore(*m.PredictionNumber)
	}
	return 0
}

// unitScore returns v in [0,1]. Values above 1 are percentages.
func unitScore(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}
