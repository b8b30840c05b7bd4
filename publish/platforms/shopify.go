package platforms

import (
	"context"
	"encoding/json"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
)

const shopifyAPIVersion = "2023-10"

// ShopifyAdapter publishes blog articles through the Shopify Admin API.
// Images are passed by external URL, Shopify fetches them itself.
type ShopifyAdapter struct {
	Client *clients.HttpClient
}

type shopifyBlogsResponse struct {
	Blogs []struct {
		ID interface{} `json:"id"`
	} `json:"blogs"`
}

type shopifyArticleResponse struct {
	Article struct {
		ID interface{} `json:"id"`
	} `json:"article"`
}

func (a *ShopifyAdapter) Publish(ctx context.Context, post *model.Post, site *model.Site, creds publish.Credentials) (string, error) {
	token := creds.First("accessToken", "access_token", "apiKey", "token", "password")
	if token == "" {
		return "", publish.NewConfigurationError("shopify site is missing an access token")
	}
	headers := map[string]string{"X-Shopify-Access-Token": token}
	apiBase := site.SiteURL + "/admin/api/" + shopifyAPIVersion

	// pre-flight: verify the token can reach the shop at all before creating
	// anything
	if _, err := a.Client.Get(ctx, apiBase+"/shop.json", headers); err != nil {
		return "", publish.WrapAdapterError(model.PlatformShopify, err)
	}

	blogID := creds.First("blogId", "blog_id")
	if blogID == "" {
		var err error
		blogID, err = a.discoverBlog(ctx, apiBase, headers)
		if err != nil {
			return "", err
		}
	}

	article := map[string]interface{}{
		"title":        post.Title,
		"body_html":    renderBody(post),
		"summary_html": post.Excerpt,
		"handle":       post.Slug,
		"published":    true,
		"metafields": []map[string]interface{}{
			{"key": "title_tag", "namespace": "global", "value": metaTitle(post), "type": "single_line_text_field"},
			{"key": "description_tag", "namespace": "global", "value": metaDescription(post), "type": "single_line_text_field"},
		},
	}
	if post.FeaturedImage != "" {
		article["image"] = map[string]string{"src": post.FeaturedImage}
	}

	body, err := a.Client.PostJSON(ctx, apiBase+"/blogs/"+blogID+"/articles.json", headers,
		map[string]interface{}{"article": article})
	if err != nil {
		return "", publish.WrapAdapterError(model.PlatformShopify, err)
	}
	var res shopifyArticleResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", publish.WrapAdapterError(model.PlatformShopify, err)
	}
	id := externalID(res.Article.ID)
	if id == "" {
		return "", &publish.AdapterError{Platform: model.PlatformShopify, Body: "article created but no id returned"}
	}
	return id, nil
}

// discoverBlog uses the shop's first blog when the site has none configured.
func (a *ShopifyAdapter) discoverBlog(ctx context.Context, apiBase string, headers map[string]string) (string, error) {
	body, err := a.Client.Get(ctx, apiBase+"/blogs.json", headers)
	if err != nil {
		return "", publish.WrapAdapterError(model.PlatformShopify, err)
	}
	var res shopifyBlogsResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", publish.WrapAdapterError(model.PlatformShopify, err)
	}
	if len(res.Blogs) == 0 {
		return "", publish.NewConfigurationError("shopify store has no blog to publish into")
	}
	return externalID(res.Blogs[0].ID), nil
}
