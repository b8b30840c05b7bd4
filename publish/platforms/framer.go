package platforms

import (
	"context"
	"encoding/json"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
)

const framerAPIBase = "https://api.framer.com"

// FramerAdapter creates an item in a Framer CMS collection. Field data is a
// flat key-value object; draft:false publishes immediately.
type FramerAdapter struct {
	Client *clients.HttpClient
	// BaseURL overrides the API host in tests
	BaseURL string
}

type framerItemsResponse struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
}

func (a *FramerAdapter) Publish(ctx context.Context, post *model.Post, site *model.Site, creds publish.Credentials) (string, error) {
	token := creds.First("accessToken", "access_token", "apiToken", "token")
	if token == "" {
		return "", publish.NewConfigurationError("framer site is missing an access token")
	}
	collectionID := creds.First("collectionId", "collection_id")
	if collectionID == "" {
		return "", publish.NewConfigurationError("framer site is missing a collection id")
	}
	headers := map[string]string{"Authorization": "Bearer " + token}

	fieldData := map[string]interface{}{
		"title":           post.Title,
		"slug":            post.Slug,
		"content":         renderBody(post),
		"excerpt":         post.Excerpt,
		"metaTitle":       metaTitle(post),
		"metaDescription": metaDescription(post),
	}
	if post.FeaturedImage != "" {
		fieldData["featuredImage"] = post.FeaturedImage
	}

	base := a.BaseURL
	if base == "" {
		base = framerAPIBase
	}
	body, err := a.Client.PostJSON(ctx, base+"/v1/collections/"+collectionID+"/items", headers,
		map[string]interface{}{
			"items": []map[string]interface{}{
				{"fieldData": fieldData, "draft": false},
			},
		})
	if err != nil {
		return "", publish.WrapAdapterError(model.PlatformFramer, err)
	}
	var res framerItemsResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", publish.WrapAdapterError(model.PlatformFramer, err)
	}
	if len(res.Items) == 0 || res.Items[0].ID == "" {
		return "", &publish.AdapterError{Platform: model.PlatformFramer, Body: "item created but no id returned"}
	}
	return res.Items[0].ID, nil
}
