package platforms

import (
	"context"
	"encoding/json"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
)

const webflowAPIBase = "https://api.webflow.com"

// WebflowAdapter creates a live CMS collection item per post.
type WebflowAdapter struct {
	Client *clients.HttpClient
	// BaseURL overrides the API host in tests
	BaseURL string
}

type webflowItemResponse struct {
	ID string `json:"_id"`
}

func (a *WebflowAdapter) Publish(ctx context.Context, post *model.Post, site *model.Site, creds publish.Credentials) (string, error) {
	token := creds.First("apiToken", "api_token", "token", "apiKey")
	if token == "" {
		return "", publish.NewConfigurationError("webflow site is missing an API token")
	}
	collectionID := creds.First("collectionId", "collection_id")
	if collectionID == "" {
		return "", publish.NewConfigurationError("webflow site is missing a collection id")
	}
	headers := map[string]string{
		"Authorization":  "Bearer " + token,
		"accept-version": "1.0.0",
	}

	fields := map[string]interface{}{
		"name":         post.Title,
		"slug":         post.Slug,
		"post-body":    renderBody(post),
		"post-summary": post.Excerpt,
		"_archived":    false,
		"_draft":       false,
	}
	if post.FeaturedImage != "" {
		fields["main-image"] = post.FeaturedImage
	}

	base := a.BaseURL
	if base == "" {
		base = webflowAPIBase
	}
	body, err := a.Client.PostJSON(ctx, base+"/collections/"+collectionID+"/items?live=true", headers,
		map[string]interface{}{"fields": fields})
	if err != nil {
		return "", publish.WrapAdapterError(model.PlatformWebflow, err)
	}
	var res webflowItemResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", publish.WrapAdapterError(model.PlatformWebflow, err)
	}
	if res.ID == "" {
		return "", &publish.AdapterError{Platform: model.PlatformWebflow, Body: "item created but no id returned"}
	}
	return res.ID, nil
}
