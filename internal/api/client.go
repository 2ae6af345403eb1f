// Package api is a thin HTTP client for the ThinkThread REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/thinkthread/internal/core/logging"
	"github.com/colonyops/thinkthread/internal/core/media"
	"github.com/colonyops/thinkthread/pkg/randid"
)

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

// Client handles bearer authentication, JSON and multipart encoding, the
// {success, message} response envelope, and retry with backoff on HTTP 429.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	maxRetries int
	logger     zerolog.Logger
}

// NewClient creates a client for the API rooted at baseURL. tokens may be nil
// for unauthenticated use.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: 3,
		logger:     logging.Component("api"),
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

type field struct {
	name  string
	value string
}

type filePart struct {
	field string
	image *media.Image
}

func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", result)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}
	return c.do(ctx, method, path, data, "application/json", result)
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, fields []field, files []filePart, result any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("writing field %s: %w", f.name, err)
		}
	}

	for _, f := range files {
		if f.image == nil {
			continue
		}
		if err := writeFilePart(w, f.field, f.image); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	return c.do(ctx, method, path, buf.Bytes(), w.FormDataContentType(), result)
}

func writeFilePart(w *multipart.Writer, fieldName string, img *media.Image) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, img.Name))
	h.Set("Content-Type", img.ContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", fieldName, err)
	}

	f, err := os.Open(img.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", img.Path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copying %s: %w", img.Path, err)
	}
	return nil
}

// do builds the request, retries on 429, decodes the envelope and unmarshals
// the body into result.
func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string, result any) error {
	ctx = logging.WithRequestID(ctx, randid.Generate(8))
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if c.tokens != nil {
			if token := c.tokens.Token(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request %s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		c.logger.Debug().Ctx(ctx).
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Int("attempt", attempt).
			Msg("api request")

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = &APIError{Status: resp.StatusCode, Message: "rate limited"}
			if attempt == c.maxRetries {
				break
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfterDuration(resp, attempt)):
			}
			continue
		}

		return decodeResponse(resp.StatusCode, respBody, result)
	}

	return fmt.Errorf("%s %s: retries exhausted: %w", method, path, lastErr)
}

func decodeResponse(status int, body []byte, result any) error {
	var env envelope
	if len(bytes.TrimSpace(body)) > 0 {
		// Non-JSON bodies (proxies, HTML error pages) leave env empty.
		_ = json.Unmarshal(body, &env)
	}

	if status < 200 || status >= 300 {
		return &APIError{Status: status, Message: env.Message}
	}

	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return &APIError{Status: status, Message: msg}
	}

	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// retryAfterDuration honors a Retry-After header in seconds and otherwise
// backs off exponentially from one second.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<attempt) * time.Second
}
