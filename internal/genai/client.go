package genai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ProjectMate/go-project-backend/internal/errs"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the Generative Language REST API. The API key is
// checked per call, not at construction, so the rest of the service can
// run without a key configured.
type Client struct {
	cfg    Config
	http   *http.Client
	stream *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		// No overall timeout while streaming; cancellation comes from ctx.
		stream: &http.Client{Timeout: 0},
	}
}

// Ready reports whether the client has a credential to work with.
func (c *Client) Ready() error {
	if c.cfg.APIKey == "" {
		return errs.ErrMissingAPIKey
	}
	return nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
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

func (r *generateResponse) text() string {
	var b strings.Builder
	if len(r.Candidates) > 0 {
		for _, p := range r.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// Generate performs a single blocking completion call and returns the
// model's textual answer.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.Ready(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	resp, err := c.post(ctx, c.http, url, prompt)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", errs.ErrUpstream, err)
	}

	var out generateResponse
	if resp.StatusCode >= 400 {
		msg := resp.Status
		if json.Unmarshal(body, &out) == nil && out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("%w: %s", errs.ErrUpstream, msg)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", errs.ErrUpstream, err)
	}

	text := out.text()
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", errs.ErrUpstream)
	}
	return text, nil
}

// GenerateStream performs a streaming completion call, invoking onDelta
// for each text fragment as it arrives. The sequence is finite; a nil
// return means the upstream stream ended. Returning an error from
// onDelta stops consumption early.
func (c *Client) GenerateStream(ctx context.Context, prompt string, onDelta func(text string) error) error {
	if err := c.Ready(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse", c.cfg.BaseURL, c.cfg.Model)
	resp, err := c.post(ctx, c.stream, url, prompt)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", errs.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := sc.Bytes()
		if !bytes.HasPrefix(line, []byte("data: ")) {
			continue
		}
		var chunk generateResponse
		if err := json.Unmarshal(bytes.TrimPrefix(line, []byte("data: ")), &chunk); err != nil {
			continue
		}
		if text := chunk.text(); text != "" {
			if err := onDelta(text); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: read stream: %v", errs.ErrUpstream, err)
	}
	return nil
}

// Status makes a minimal models-list call to verify credentials and
// connectivity. It never fails hard: problems come back as (false, msg).
func (c *Client) Status(ctx context.Context) (bool, string) {
	if err := c.Ready(); err != nil {
		return false, err.Error()
	}

	url := fmt.Sprintf("%s/v1beta/models?pageSize=1", c.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return false, fmt.Sprintf("models list returned status %d", resp.StatusCode)
	}
	return true, ""
}

func (c *Client) post(ctx context.Context, hc *http.Client, url, prompt string) (*http.Response, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	return resp, nil
}
