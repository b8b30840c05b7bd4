package platforms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
	Logger "github.com/seoforge/seoforge/utils/log"
)

// WordPressAdapter publishes over the WP REST API with an application
// password. SEO meta is written defensively for all three common plugins
// (Yoast, AIOSEO, RankMath) since we can't know which one is installed.
type WordPressAdapter struct {
	Client *clients.HttpClient
}

type wordPressPostResponse struct {
	ID interface{} `json:"id"`
}

func (a *WordPressAdapter) Publish(ctx context.Context, post *model.Post, site *model.Site, creds publish.Credentials) (string, error) {
	username := creds.First("username", "user", "login")
	password := creds.First("applicationPassword", "appPassword", "application_password", "password")
	if username == "" || password == "" {
		return "", publish.NewConfigurationError("wordpress site is missing username or application password")
	}
	headers := map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password)),
	}

	payload := map[string]interface{}{
		"title":   post.Title,
		"content": renderBody(post),
		"excerpt": post.Excerpt,
		"slug":    post.Slug,
		"status":  "publish",
		"meta": map[string]interface{}{
			"_yoast_wpseo_title":    metaTitle(post),
			"_yoast_wpseo_metadesc": metaDescription(post),
			"_aioseo_title":         metaTitle(post),
			"_aioseo_description":   metaDescription(post),
			"rank_math_title":       metaTitle(post),
			"rank_math_description": metaDescription(post),
		},
	}
	if mediaID := a.maybeUploadFeaturedImage(ctx, post, site, headers); mediaID != 0 {
		payload["featured_media"] = mediaID
	}

	body, err := a.Client.PostJSON(ctx, site.SiteURL+"/wp-json/wp/v2/posts", headers, payload)
	if err != nil {
		return "", publish.WrapAdapterError(model.PlatformWordPress, err)
	}
	var res wordPressPostResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", publish.WrapAdapterError(model.PlatformWordPress, err)
	}
	id := externalID(res.ID)
	if id == "" {
		return "", &publish.AdapterError{Platform: model.PlatformWordPress, Body: "post created but no id returned"}
	}

	a.maybeWriteYoastMeta(ctx, site, headers, id, post)
	return id, nil
}

// maybeUploadFeaturedImage downloads the featured image and re-uploads it as
// a WP media item. Any failure leaves the post without an image, never aborts
// the publish.
func (a *WordPressAdapter) maybeUploadFeaturedImage(ctx context.Context, post *model.Post, site *model.Site, headers map[string]string) int {
	if post.FeaturedImage == "" {
		return 0
	}
	data, contentType, err := a.Client.Download(ctx, post.FeaturedImage)
	if err != nil {
		Logger.Log.Warn("fail to download featured image, publishing without it: ", err)
		return 0
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	filename := path.Base(post.FeaturedImage)
	if filename == "." || filename == "/" {
		filename = "featured-image.jpg"
	}
	uploadHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, filename),
	}
	for k, v := range headers {
		uploadHeaders[k] = v
	}

	body, err := a.Client.PostBinary(ctx, site.SiteURL+"/wp-json/wp/v2/media", uploadHeaders, contentType, data)
	if err != nil {
		Logger.Log.Warn("fail to upload featured image, publishing without it: ", err)
		return 0
	}
	var res struct {
		ID interface{} `json:"id"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return 0
	}
	mediaID, err := strconv.Atoi(strings.TrimSpace(externalID(res.ID)))
	if err != nil {
		return 0
	}
	return mediaID
}

// maybeWriteYoastMeta also hits Yoast's dedicated endpoint where available.
// Most installs reject it, so its failure is swallowed.
func (a *WordPressAdapter) maybeWriteYoastMeta(ctx context.Context, site *model.Site, headers map[string]string, postID string, post *model.Post) {
	payload := map[string]interface{}{
		"title":       metaTitle(post),
		"description": metaDescription(post),
	}
	if _, err := a.Client.PostJSON(ctx, site.SiteURL+"/wp-json/yoast/v1/meta/posts/"+postID, headers, payload); err != nil {
		Logger.Log.Info("yoast meta endpoint not available, relying on meta fields: ", err)
	}
}
