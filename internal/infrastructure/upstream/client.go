// Package upstream implements the REST contract of the remote VMS backend.
// Every payload-shape quirk of that backend (field casing, success flags,
// date formats) is normalized here so nothing above this package has to know
// about them.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/you/visitorsvc/domain"
)

// Client is the HTTP client for the VMS backend. It implements
// domain.UpstreamGateway.
type Client struct {
	http            *http.Client
	baseURL         string
	selfRegisterURL string
}

// NewClient creates a new upstream client
func NewClient(baseURL, selfRegisterURL string, timeout time.Duration) *Client {
	return &Client{
		http:            &http.Client{Timeout: timeout},
		baseURL:         strings.TrimRight(baseURL, "/"),
		selfRegisterURL: strings.TrimRight(selfRegisterURL, "/"),
	}
}

// buildURL joins a base path with query parameters.
func buildURL(base, path string, params map[string]string) string {
	u := base + path
	if len(params) == 0 {
		return u
	}
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return u + "?" + q.Encode()
}

func (c *Client) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, rawURL string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request and decodes the response body into out. Non-2xx
// responses become an UpstreamError carrying the body's Message when one is
// present.
func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("upstream %s %s: read body: %w", req.Method, req.URL.Path, err)
	}

	log.WithFields(log.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": res.StatusCode,
	}).Debug("upstream call")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &domain.UpstreamError{
			StatusCode: res.StatusCode,
			Message:    extractMessage(data),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("upstream %s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// extractMessage pulls a human-readable message out of an error body.
func extractMessage(data []byte) string {
	var body struct {
		Message string `json:"Message"`
		Msg     string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Msg
}

// statusOK interprets the backend's loosely-typed success flags. Depending
// on the endpoint the flag arrives as a bool, a number, or a string.
func statusOK(v interface{}) bool {
	switch s := v.(type) {
	case bool:
		return s
	case float64:
		return s == 200 || s == 1
	case string:
		return strings.EqualFold(s, "success") || strings.EqualFold(s, "true") || s == "200"
	default:
		return false
	}
}
