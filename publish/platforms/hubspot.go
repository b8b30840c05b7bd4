package platforms

import (
	"context"
	"encoding/json"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
)

const hubSpotAPIBase = "https://api.hubapi.com"

// HubSpotAdapter publishes into a HubSpot CMS blog (content group).
type HubSpotAdapter struct {
	Client *clients.HttpClient
	// BaseURL overrides the API host in tests
	BaseURL string
}

type hubSpotPostResponse struct {
	ID interface{} `json:"id"`
}

func (a *HubSpotAdapter) Publish(ctx context.Context, post *model.Post, site *model.Site, creds publish.Credentials) (string, error) {
	token := creds.First("accessToken", "access_token", "apiKey", "token")
	if token == "" {
		return "", publish.NewConfigurationError("hubspot site is missing an access token")
	}
	contentGroupID := creds.First("contentGroupId", "content_group_id", "blogId")
	if contentGroupID == "" {
		return "", publish.NewConfigurationError("hubspot site is missing a content group id")
	}
	headers := map[string]string{"Authorization": "Bearer " + token}

	payload := map[string]interface{}{
		"name":            post.Title,
		"slug":            post.Slug,
		"postBody":        renderBody(post),
		"metaDescription": metaDescription(post),
		"htmlTitle":       metaTitle(post),
		"contentGroupId":  contentGroupID,
		"state":           "PUBLISHED",
	}
	if post.FeaturedImage != "" {
		payload["featuredImage"] = post.FeaturedImage
	}

	base := a.BaseURL
	if base == "" {
		base = hubSpotAPIBase
	}
	body, err := a.Client.PostJSON(ctx, base+"/cms/v3/blogs/posts", headers, payload)
	if err != nil {
		return "", publish.WrapAdapterError(model.PlatformHubSpot, err)
	}
	var res hubSpotPostResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", publish.WrapAdapterError(model.PlatformHubSpot, err)
	}
	id := externalID(res.ID)
	if id == "" {
		return "", &publish.AdapterError{Platform: model.PlatformHubSpot, Body: "post created but no id returned"}
	}
	return id, nil
}
