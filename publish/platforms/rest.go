package platforms

import (
	"context"
	"encoding/json"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
)

// RestAdapter posts a fixed field mapping to a user-provided endpoint, for
// self-hosted or niche CMSes. Auth is either a bearer token or a custom
// header pair from the credentials.
type RestAdapter struct {
	Client *clients.HttpClient
}

type restPostResponse struct {
	ID interface{} `json:"id"`
}

func (a *RestAdapter) Publish(ctx context.Context, post *model.Post, site *model.Site, creds publish.Credentials) (string, error) {
	endpoint := creds.First("endpoint", "url")
	if endpoint == "" {
		endpoint = site.SiteURL
	}
	if endpoint == "" {
		return "", publish.NewConfigurationError("rest site is missing an endpoint URL")
	}

	headers := map[string]string{}
	if token := creds.First("token", "apiKey", "accessToken"); token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	if name := creds.First("headerName"); name != "" {
		headers[name] = creds.First("headerValue")
	}

	payload := map[string]interface{}{
		"title":            post.Title,
		"content":          renderBody(post),
		"excerpt":          post.Excerpt,
		"slug":             post.Slug,
		"meta_title":       metaTitle(post),
		"meta_description": metaDescription(post),
	}
	if post.FeaturedImage != "" {
		payload["featured_image"] = post.FeaturedImage
	}

	body, err := a.Client.PostJSON(ctx, endpoint, headers, payload)
	if err != nil {
		return "", publish.WrapAdapterError(model.PlatformRest, err)
	}
	var res restPostResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", publish.WrapAdapterError(model.PlatformRest, err)
	}
	id := externalID(res.ID)
	if id == "" {
		return "", &publish.AdapterError{Platform: model.PlatformRest, Body: "endpoint accepted the post but returned no id"}
	}
	return id, nil
}
