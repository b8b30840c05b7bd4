// Package remote is the client for the hosted serverless functions this
// service collaborates with: proxy-extract, fetch-seo-data and
// encrypt-credentials. Functions are invoked by name over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// every function call is bounded, the transport default alone is not enough
	defaultInvokeTimeout = 30 * time.Second
)

// Invoker invokes a named remote function with a JSON body and returns the
// raw JSON response.
type Invoker interface {
	Invoke(ctx context.Context, function string, body interface{}, headers map[string]string) (json.RawMessage, error)
}

// InvokeError is a non-2xx response from a remote function. The response
// body is carried for diagnostics.
type InvokeError struct {
	Function   string
	StatusCode int
	Body       string
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("remote function %s returned %d: %s", e.Function, e.StatusCode, e.Body)
}

// FunctionClient invokes remote functions rooted at FUNCTIONS_BASE_URL,
// authorizing with the service key.
type FunctionClient struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewFunctionClient() *FunctionClient {
	return &FunctionClient{
		baseURL:    strings.TrimSuffix(os.Getenv("FUNCTIONS_BASE_URL"), "/"),
		serviceKey: os.Getenv("FUNCTIONS_SERVICE_KEY"),
		client:     &http.Client{Timeout: defaultInvokeTimeout},
	}
}

// NewFunctionClientWithBaseURL is used by tests to point the client at a
// local server.
func NewFunctionClientWithBaseURL(baseURL string, serviceKey string) *FunctionClient {
	return &FunctionClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: defaultInvokeTimeout},
	}
}

func (c *FunctionClient) Invoke(ctx context.Context, function string, body interface{}, headers map[string]string) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "fail to serialize function payload")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/"+function, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "fail to build function request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
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
		return nil, errors.Wrap(err, "fail to read function response")
	}
	if res.StatusCode >= 300 {
		return nil, &InvokeError{Function: function, StatusCode: res.StatusCode, Body: string(resBody)}
	}
	return resBody, nil
}

// IsNetworkError reports whether the invocation failed before reaching the
// function: DNS, connect, TLS or timeout failures all surface as *url.Error
// from the transport.
func IsNetworkError(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// IsAuthError reports whether the function rejected the caller's session.
func IsAuthError(err error) bool {
	var invokeErr *InvokeError
	if !errors.As(err, &invokeErr) {
		return false
	}
	if invokeErr.StatusCode == http.StatusUnauthorized || invokeErr.StatusCode == http.StatusForbidden {
		return true
	}
	return strings.Contains(strings.ToLower(invokeErr.Body), "jwt")
}
