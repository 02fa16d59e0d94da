package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vendeya/pkg/errors"
)

// TokenSource yields the current bearer token, or "" when no session is
// active. The session store is the only writer of the token.
type TokenSource func() string

// Client is the single HTTP gateway to the VendeYa backend. Success
// responses are decoded directly into the caller's value; non-2xx
// responses carry {"error": string} and are mapped to an AppError with
// the HTTP status. There are no retries and no timeouts beyond the
// client-wide one; the context is the only cancellation mechanism.
type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		client: &http.Client{
			Transport: &bearerTransport{
				Tokens: tokens,
				Base:   http.DefaultTransport,
			},
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// bearerTransport injects the session token on every request.
type bearerTransport struct {
	Tokens TokenSource
	Base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Tokens != nil {
		if token := t.Tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("Accept", "application/json")
	return t.Base.RoundTrip(req)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Internal("Failed to build request", err)
	}
	return c.do(req, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return errors.Internal("Failed to build request", err)
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return errors.Internal("Failed to encode request body", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Internal("Failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// PostMultipart sends form fields plus an optional file part, used by the
// product endpoints that accept an image upload.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file []byte, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return errors.Internal("Failed to encode form field", err)
		}
	}
	if len(file) > 0 {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return errors.Internal("Failed to encode file part", err)
		}
		if _, err := part.Write(file); err != nil {
			return errors.Internal("Failed to encode file part", err)
		}
	}
	if err := writer.Close(); err != nil {
		return errors.Internal("Failed to finalize form body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return errors.Internal("Failed to build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.New("NETWORK_ERROR", "No se pudo conectar con el servidor", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Internal("Failed to decode response", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return errors.FromStatus(resp.StatusCode, payload.Error)
	}
	return errors.FromStatus(resp.StatusCode, fmt.Sprintf("Error del servidor (%d)", resp.StatusCode))
}
