// Package clients wraps the HTTP plumbing shared by all CMS adapters.
// Adapters only decide URLs, headers and payloads; status handling and body
// capture live here so every platform reports failures the same way.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// HttpError is a non-2xx response from a CMS API. The body is kept for
// diagnostics and surfaced to the user in the generic case.
type HttpError struct {
	StatusCode int
	Body       string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

type HttpClient struct {
	client *http.Client
}

func NewDefaultHttpClient() *HttpClient {
	return &HttpClient{client: &http.Client{Timeout: defaultTimeout}}
}

// PostJSON sends a JSON payload and returns the response body. Non-2xx
// responses return *HttpError.
func (c *HttpClient) PostJSON(ctx context.Context, uri string, headers map[string]string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "POST", uri, headers, "application/json", bytes.NewReader(body))
}

// PostBinary uploads raw bytes, used for media endpoints.
func (c *HttpClient) PostBinary(ctx context.Context, uri string, headers map[string]string, contentType string, data []byte) ([]byte, error) {
	return c.do(ctx, "POST", uri, headers, contentType, bytes.NewReader(data))
}

// Get fetches a resource and returns its body.
func (c *HttpClient) Get(ctx context.Context, uri string, headers map[string]string) ([]byte, error) {
	return c.do(ctx, "GET", uri, headers, "", nil)
}

// Head checks a resource without downloading it, used to validate image URLs
// before passing them by reference.
func (c *HttpClient) Head(ctx context.Context, uri string) error {
	req, err := http.NewRequestWithContext(ctx, "HEAD", uri, nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode >= 300 {
		return &HttpError{StatusCode: res.StatusCode}
	}
	return nil
}

// Download fetches a resource returning its bytes and content type, used to
// re-upload featured images to platforms that don't take external URLs.
func (c *HttpClient) Download(ctx context.Context, uri string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", uri, nil)
	if err != nil {
		return nil, "", err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, "", &HttpError{StatusCode: res.StatusCode}
	}
	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, "", err
	}
	return data, res.Header.Get("Content-Type"), nil
}

func (c *HttpClient) do(ctx context.Context, method string, uri string, headers map[string]string, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 300 {
		return nil, &HttpError{StatusCode: res.StatusCode, Body: string(resBody)}
	}
	return resBody, nil
}
