// Package platforms holds one adapter per supported CMS. Every adapter is a
// variant of the same capability: map a post onto the platform's API schema,
// authenticate from the credential object, and return the external id the
// platform assigned. Wire formats here match each platform's real REST API.
package platforms

import (
	"encoding/json"
	"strconv"

	"github.com/seoforge/seoforge/content"
	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
)

// DefaultRegistry wires every supported platform to its adapter.
func DefaultRegistry(client *clients.HttpClient) publish.Registry {
	return publish.Registry{
		model.PlatformWordPress: &WordPressAdapter{Client: client},
		model.PlatformShopify:   &ShopifyAdapter{Client: client},
		model.PlatformGhost:     &GhostAdapter{Client: client},
		model.PlatformWebflow:   &WebflowAdapter{Client: client},
		model.PlatformHubSpot:   &HubSpotAdapter{Client: client},
		model.PlatformFramer:    &FramerAdapter{Client: client},
		model.PlatformRest:      &RestAdapter{Client: client},
	}
}

// externalID stringifies the id field platforms return, which is sometimes a
// number and sometimes a string.
func externalID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	}
	return ""
}

// renderBody converts the stored markdown (possibly JSON-wrapped) into the
// HTML every platform receives.
func renderBody(post *model.Post) string {
	return content.MarkdownToHTML(content.ExtractContent(post.Content))
}

func metaTitle(post *model.Post) string {
	if post.MetaTitle != "" {
		return post.MetaTitle
	}
	return post.Title
}

func metaDescription(post *model.Post) string {
	if post.MetaDescription != "" {
		return post.MetaDescription
	}
	return post.Excerpt
}
