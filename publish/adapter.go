package publish

import (
	"context"
	"fmt"

	"github.com/seoforge/seoforge/model"
)

// Adapter publishes one post to one CMS platform and returns the external id
// the platform assigned. Each adapter owns its auth scheme, field mapping
// and optional media handling.
type Adapter interface {
	Publish(ctx context.Context, post *model.Post, site *model.Site, creds Credentials) (externalID string, err error)
}

// Credentials is the decrypted credential object for a site. Field names
// drifted over time across platforms, so lookups go through alias lists.
type Credentials map[string]interface{}

// First returns the first non-empty string value among the given keys.
func (c Credentials) First(keys ...string) string {
	for _, key := range keys {
		if v, ok := c[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
			// numbers arrive as float64 from JSON
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.0f", f)
			}
		}
	}
	return ""
}

// CredentialSource turns a stored credential blob (encrypted or plaintext
// JSON) into a usable credential object.
type CredentialSource interface {
	Open(ctx context.Context, blob string) (map[string]interface{}, error)
}

// Registry maps a platform to its adapter. Unknown platforms are a fatal
// configuration error at dispatch time.
type Registry map[model.Platform]Adapter

func (r Registry) Lookup(platform model.Platform) (Adapter, bool) {
	adapter, ok := r[platform]
	return adapter, ok
}
