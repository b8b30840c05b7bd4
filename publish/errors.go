package publish

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish/clients"
)

// ErrAlreadyPublishing means another dispatch won the pending→publishing
// transition for this post.
var ErrAlreadyPublishing = errors.New("post is already being published")

// ConfigurationError is fatal and never retried: the site is missing a
// platform, credentials, or a platform-specific required field. The post is
// not transitioned to publishing.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "publish configuration error: " + e.Reason
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err is a configuration problem the
// user has to fix in their site settings.
func IsConfigurationError(err error) bool {
	var confErr *ConfigurationError
	return errors.As(err, &confErr)
}

// AdapterError is a failed CMS API call, classified by status code so the
// caller can show an actionable message.
type AdapterError struct {
	Platform   model.Platform
	StatusCode int
	Body       string
}

func (e *AdapterError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Sprintf("%s rejected the credentials (401), reconnect the site", e.Platform)
	case http.StatusForbidden:
		return fmt.Sprintf("%s denied permission (403), the connected account lacks publishing rights", e.Platform)
	case http.StatusNotFound:
		return fmt.Sprintf("%s endpoint not found (404), check the site URL", e.Platform)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Platform, e.StatusCode, e.Body)
}

// IsAuthError reports a 401 from the CMS.
func (e *AdapterError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// WrapAdapterError converts a transport-level error from a platform call
// into an AdapterError, preserving status and body when available.
func WrapAdapterError(platform model.Platform, err error) error {
	if err == nil {
		return nil
	}
	var httpErr *clients.HttpError
	if errors.As(err, &httpErr) {
		return &AdapterError{Platform: platform, StatusCode: httpErr.StatusCode, Body: httpErr.Body}
	}
	return errors.Wrapf(err, "%s request failed", platform)
}
