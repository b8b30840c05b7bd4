package platforms

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
	Logger "github.com/seoforge/seoforge/utils/log"
)

// GhostAdapter publishes through the Ghost Admin API. Ghost authenticates
// with a short-lived JWT minted from the "id:secret" admin key.
type GhostAdapter struct {
	Client *clients.HttpClient
}

type ghostPostsResponse struct {
	Posts []struct {
		ID string `json:"id"`
	} `json:"posts"`
}

func (a *GhostAdapter) Publish(ctx context.Context, post *model.Post, site *model.Site, creds publish.Credentials) (string, error) {
	adminKey := creds.First("adminApiKey", "admin_api_key", "apiKey", "key")
	if adminKey == "" {
		return "", publish.NewConfigurationError("ghost site is missing an admin API key")
	}
	token, err := ghostToken(adminKey)
	if err != nil {
		return "", publish.NewConfigurationError("ghost admin API key is malformed: %v", err)
	}
	headers := map[string]string{"Authorization": "Ghost " + token}

	ghostPost := map[string]interface{}{
		"title":            post.Title,
		"html":             renderBody(post),
		"custom_excerpt":   post.Excerpt,
		"slug":             post.Slug,
		"status":           "published",
		"meta_title":       metaTitle(post),
		"meta_description": metaDescription(post),
	}
	// the image is passed by URL, validate it still resolves first
	if post.FeaturedImage != "" {
		if err := a.Client.Head(ctx, post.FeaturedImage); err == nil {
			ghostPost["feature_image"] = post.FeaturedImage
		} else {
			Logger.Log.Warn("featured image URL no longer resolves, publishing without it: ", err)
		}
	}

	body, err := a.Client.PostJSON(ctx, site.SiteURL+"/ghost/api/admin/posts/?source=html", headers,
		map[string]interface{}{"posts": []map[string]interface{}{ghostPost}})
	if err != nil {
		return "", publish.WrapAdapterError(model.PlatformGhost, err)
	}
	var res ghostPostsResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", publish.WrapAdapterError(model.PlatformGhost, err)
	}
	if len(res.Posts) == 0 || res.Posts[0].ID == "" {
		return "", &publish.AdapterError{Platform: model.PlatformGhost, Body: "post created but no id returned"}
	}
	return res.Posts[0].ID, nil
}

// ghostToken mints the 5-minute HS256 JWT the Admin API expects, keyed by
// the id half of the admin key and signed with its hex-decoded secret half.
func ghostToken(adminKey string) (string, error) {
	parts := strings.SplitN(adminKey, ":", 2)
	if len(parts) != 2 {
		return "", &publish.AdapterError{Platform: model.PlatformGhost, Body: "admin key must be id:secret"}
	}
	secret, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", err
	}

	now := time.Now().Unix()
	header := map[string]interface{}{"alg": "HS256", "typ": "JWT", "kid": parts[0]}
	claims := map[string]interface{}{"iat": now, "exp": now + 300, "aud": "/admin/"}

	headerJSON, _ := json.Marshal(header)
	claimsJSON, _ := json.Marshal(claims)
	unsigned := base64.RawURLEncoding.EncodeToString(headerJSON) + "." + base64.RawURLEncoding.EncodeToString(claimsJSON)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	return unsigned + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}
