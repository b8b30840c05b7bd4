// Package credential encrypts CMS credentials before they hit the row store.
// Encryption is delegated to a remote function; when that function is down,
// onboarding must not block, so the gateway degrades to plaintext storage
// with a loud warning. The "enc:v1:" marker makes every operation idempotent:
// an already-encrypted blob is never wrapped twice.
package credential

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/remote"
	"github.com/seoforge/seoforge/store"
	Logger "github.com/seoforge/seoforge/utils/log"
)

const (
	EncryptCredentialsFunction = "encrypt-credentials"
	DecryptCredentialsFunction = "decrypt-credentials"

	encryptedMarker = "enc:v1:"
)

// IsEncrypted reports whether a stored credential blob already carries the
// encryption marker.
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, encryptedMarker)
}

type encryptRequest struct {
	Credentials map[string]interface{} `json:"credentials"`
}

type encryptResponse struct {
	Encrypted string `json:"encrypted"`
}

type Gateway struct {
	invoker remote.Invoker
	sites   store.SiteStore
}

func NewGateway(invoker remote.Invoker, sites store.SiteStore) *Gateway {
	return &Gateway{invoker: invoker, sites: sites}
}

// Encrypt turns a credential object into the blob to persist. On remote
// failure it returns the plaintext JSON representation and degraded=true;
// callers store it anyway and the warning below is the only trace. This is
// distinct from a hard failure on purpose.
func (g *Gateway) Encrypt(ctx context.Context, creds map[string]interface{}) (blob string, degraded bool) {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		Logger.Log.Error("credential object is not serializable: ", err)
		return "", true
	}

	raw, err := g.invoker.Invoke(ctx, EncryptCredentialsFunction, encryptRequest{Credentials: creds}, nil)
	if err != nil {
		Logger.Log.Warn("encryption service unavailable, storing credentials in plaintext (degraded mode): ", err)
		return string(plaintext), true
	}
	var res encryptResponse
	if err := json.Unmarshal(raw, &res); err != nil || res.Encrypted == "" {
		Logger.Log.Warn("unexpected encryption response, storing credentials in plaintext (degraded mode): ", err)
		return string(plaintext), true
	}

	ciphertext := res.Encrypted
	if !IsEncrypted(ciphertext) {
		ciphertext = encryptedMarker + ciphertext
	}
	return ciphertext, false
}

type decryptRequest struct {
	Encrypted string `json:"encrypted"`
}

type decryptResponse struct {
	Credentials map[string]interface{} `json:"credentials"`
}

// Open turns a stored credential blob into a usable credential object.
// Plaintext blobs (degraded-mode writes, pre-migration rows) parse directly;
// encrypted blobs round-trip through the remote decryption function.
func (g *Gateway) Open(ctx context.Context, blob string) (map[string]interface{}, error) {
	if !IsEncrypted(blob) {
		creds := map[string]interface{}{}
		if err := json.Unmarshal([]byte(blob), &creds); err != nil {
			return nil, errors.Wrap(err, "credential blob is neither encrypted nor valid JSON")
		}
		return creds, nil
	}

	raw, err := g.invoker.Invoke(ctx, DecryptCredentialsFunction,
		decryptRequest{Encrypted: strings.TrimPrefix(blob, encryptedMarker)}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fail to decrypt credentials")
	}
	var res decryptResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, errors.Wrap(err, "unexpected decryption response")
	}
	if res.Credentials == nil {
		return nil, errors.New("decryption returned no credentials")
	}
	return res.Credentials, nil
}

// MigrationReport summarizes one backfill run.
type MigrationReport struct {
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// MigrateAll encrypts every stored plaintext credential blob. Sites already
// carrying the marker are skipped, so the backfill can be re-run safely. A
// site whose encryption degrades is left untouched and counted as failed.
func (g *Gateway) MigrateAll(ctx context.Context) (*MigrationReport, error) {
	sites, err := g.sites.ListSitesWithCredentials(ctx)
	if err != nil {
		return nil, err
	}

	report := &MigrationReport{}
	for _, site := range sites {
		if IsEncrypted(site.Credentials) {
			report.Skipped++
			continue
		}

		creds := map[string]interface{}{}
		if err := json.Unmarshal([]byte(site.Credentials), &creds); err != nil {
			// legacy rows sometimes hold a bare token instead of JSON
			creds = map[string]interface{}{"value": site.Credentials}
		}

		blob, degraded := g.Encrypt(ctx, creds)
		if degraded {
			report.Failed++
			continue
		}
		if err := g.sites.UpdateCredentials(ctx, site.Id, blob); err != nil {
			Logger.Log.Error("fail to write encrypted credentials for site ", site.Id, ": ", err)
			report.Failed++
			continue
		}
		report.Migrated++
	}

	Logger.Log.Infof("credential migration done: %d migrated, %d skipped, %d failed",
		report.Migrated, report.Skipped, report.Failed)
	return report, nil
}
