// Package assistant calls the Gemini generateContent endpoint to turn a
// free-form problem description into step-by-step troubleshooting advice.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"console/internal/api"
	"console/internal/logging"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"

	requestTimeout = 60 * time.Second
)

// ErrNotConfigured is returned when no API key is set. Callers show a hint
// instead of an error banner.
var ErrNotConfigured = fmt.Errorf("assistant: no API key configured")

const promptTemplate = `As an expert IT support technician, provide clear, step-by-step troubleshooting advice for the following problem.
Format the response in Markdown. Use headings, bold text, and numbered lists to make it easy to follow.
Do not include any preamble or sign-off, just the troubleshooting steps.

Problem: %q`

type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	log     logging.Logger
}

func New(apiKey, model string, log logging.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: requestTimeout},
		log:     log.With(logging.F("component", "assistant")),
	}
}

// SetBaseURL overrides the endpoint, for tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

func (c *Client) Configured() bool { return c.apiKey != "" }

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TroubleshootingSteps asks the model for Markdown troubleshooting steps
// for the given problem description.
func (c *Client) TroubleshootingSteps(ctx context.Context, problem string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return "", fmt.Errorf("assistant: empty problem description")
	}

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, problem)}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &api.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &api.NetworkError{URL: url, Err: err}
	}
	c.log.Debug("generateContent",
		logging.F("model", c.model),
		logging.F("status", resp.StatusCode),
		logging.F("duration", time.Since(start).Round(time.Millisecond)))

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("assistant: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		message := http.StatusText(resp.StatusCode)
		if decoded.Error != nil && decoded.Error.Message != "" {
			message = decoded.Error.Message
		}
		return "", fmt.Errorf("assistant: %s (%d)", message, resp.StatusCode)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assistant: empty response")
	}

	var out strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return out.String(), nil
}
