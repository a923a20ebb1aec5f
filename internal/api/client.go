package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://liquidity-ai-backend.onrender.com"

// healthTimeout bounds the availability probe. The probe decides between live
// analysis and the demo dataset, so it must answer quickly.
const healthTimeout = 3 * time.Second

// Client talks to the analysis backend. Methods make a single attempt; retry
// policy belongs to the caller.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     log,
	}
}

// CheckHealth probes the backend root. It reports availability and never
// returns an error: unreachable, slow, and non-2xx all mean unavailable.
func (c *Client) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("health probe failed")
		return false
	}
	defer resp.Body.Close()
	return is2xx(resp.StatusCode)
}

// UploadDocuments sends the files as one multipart request, each under the
// repeated "files" field, and opens an analysis session.
func (c *Client) UploadDocuments(ctx context.Context, paths []string) (*UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, path := range paths {
		if err := appendFilePart(w, path); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &UploadError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UploadError{Message: err.Error()}
	}
	if !is2xx(resp.StatusCode) {
		return nil, &UploadError{Message: backendDetail(body, "Upload failed")}
	}

	var out UploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &UploadError{Message: err.Error()}
	}
	return &out, nil
}

func appendFilePart(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("form file %s: %w", path, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy %s: %w", path, err)
	}
	return nil
}

// AnalyzeDocuments runs the analysis for an uploaded session.
func (c *Client) AnalyzeDocuments(ctx context.Context, sessionID string) (*AnalysisResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze/"+sessionID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &AnalysisError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AnalysisError{Message: err.Error()}
	}
	if !is2xx(resp.StatusCode) {
		return nil, &AnalysisError{Message: backendDetail(body, "Analysis failed")}
	}

	var out AnalysisResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &AnalysisError{Message: err.Error()}
	}
	return &out, nil
}

// GetResults fetches a previously computed analysis.
func (c *Client) GetResults(ctx context.Context, sessionID string) (*AnalysisResult, error) {
	var out AnalysisResult
	if err := c.getJSON(ctx, "/api/results/"+sessionID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSubsidies fetches the full subsidy catalog.
func (c *Client) GetSubsidies(ctx context.Context) (*SubsidyList, error) {
	var out SubsidyList
	if err := c.getJSON(ctx, "/api/subsidies", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSubsidyDetails fetches one catalog entry by id.
func (c *Client) GetSubsidyDetails(ctx context.Context, subsidyID string) (*SubsidyOpportunity, error) {
	var out SubsidyOpportunity
	if err := c.getJSON(ctx, "/api/subsidy/"+subsidyID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBenchmark fetches the industry claim-rate comparison.
func (c *Client) GetBenchmark(ctx context.Context) (*Benchmark, error) {
	var out Benchmark
	if err := c.getJSON(ctx, "/api/benchmark", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type alertRequest struct {
	Email      string   `json:"email"`
	SessionID  string   `json:"sessionId"`
	AlertTypes []string `json:"alertTypes"`
}

// SetupEmailAlert subscribes an address to alerts for a session.
func (c *Client) SetupEmailAlert(ctx context.Context, email, sessionID string, alertTypes []string) (*AlertResponse, error) {
	payload, err := json.Marshal(alertRequest{Email: email, SessionID: sessionID, AlertTypes: alertTypes})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/alerts/email", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &AlertError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AlertError{Message: err.Error()}
	}
	if !is2xx(resp.StatusCode) {
		return nil, &AlertError{Message: backendDetail(body, "Failed to set up alerts")}
	}

	var out AlertResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &AlertError{Message: err.Error()}
	}
	return &out, nil
}

// CancelEmailAlert removes an alert subscription by id.
func (c *Client) CancelEmailAlert(ctx context.Context, alertID string) (*CancelResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/alerts/"+alertID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &AlertError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AlertError{Message: err.Error()}
	}
	if !is2xx(resp.StatusCode) {
		return nil, &AlertError{Message: backendDetail(body, "Failed to cancel alert")}
	}

	var out CancelResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &AlertError{Message: err.Error()}
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Message: err.Error()}
	}
	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Message: backendDetail(body, "Not found")}
	}
	if !is2xx(resp.StatusCode) {
		return &FetchError{Message: backendDetail(body, "Request failed")}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{Message: err.Error()}
	}
	return nil
}

func is2xx(code int) bool {
	return code >= 200 && code < 300
}
