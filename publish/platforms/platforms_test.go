package platforms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/publish/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPost() *model.Post {
	return &model.Post{
		Id:              "post_1",
		Title:           "Ten Trail Running Tips",
		Content:         "## Warm Up\n\nRun more hills.",
		Excerpt:         "Hill advice.",
		MetaTitle:       "Trail Tips",
		MetaDescription: "Advice for trail runners.",
		Slug:            "ten-trail-running-tips",
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	raw, err := ioutil.ReadAll(r.Body)
	require.NoError(t, err)
	payload := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}

func TestWordPressPublishPayloadAndAuth(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotPayload = decodeBody(t, r)
		w.Write([]byte(`{"id": 42}`))
	}))
	defer server.Close()

	adapter := &WordPressAdapter{Client: clients.NewDefaultHttpClient()}
	site := &model.Site{Id: "site_1", Platform: model.PlatformWordPress, SiteURL: server.URL}
	creds := publish.Credentials{"username": "admin", "applicationPassword": "secret"}

	id, err := adapter.Publish(context.Background(), testPost(), site, creds)
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret"))
	assert.Equal(t, expectedAuth, gotAuth)

	assert.Equal(t, "Ten Trail Running Tips", gotPayload["title"])
	assert.Equal(t, "publish", gotPayload["status"])
	assert.Contains(t, gotPayload["content"], "<h2>Warm Up</h2>")
	meta := gotPayload["meta"].(map[string]interface{})
	assert.Equal(t, "Trail Tips", meta["_yoast_wpseo_title"])
	assert.Equal(t, "Advice for trail runners.", meta["rank_math_description"])
}

func TestWordPressRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := &WordPressAdapter{Client: clients.NewDefaultHttpClient()}
	site := &model.Site{SiteURL: server.URL}
	creds := publish.Credentials{"username": "admin", "password": "wrong"}

	_, err := adapter.Publish(context.Background(), testPost(), site, creds)
	require.Error(t, err)
	var adapterErr *publish.AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.True(t, adapterErr.IsAuthError())
	assert.Contains(t, err.Error(), "reconnect the site")
}

func TestWordPressMissingCredentials(t *testing.T) {
	adapter := &WordPressAdapter{Client: clients.NewDefaultHttpClient()}
	_, err := adapter.Publish(context.Background(), testPost(), &model.Site{}, publish.Credentials{})
	assert.True(t, publish.IsConfigurationError(err))
}

func TestWordPressFeaturedImageFailureDoesNotAbort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/image.jpg":
			w.WriteHeader(http.StatusNotFound)
		case "/wp-json/wp/v2/posts":
			payload := decodeBody(t, r)
			// no media upload means no featured_media field
			_, hasMedia := payload["featured_media"]
			assert.False(t, hasMedia)
			w.Write([]byte(`{"id": 7}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	adapter := &WordPressAdapter{Client: clients.NewDefaultHttpClient()}
	site := &model.Site{SiteURL: server.URL}
	post := testPost()
	post.FeaturedImage = server.URL + "/image.jpg"
	creds := publish.Credentials{"username": "admin", "password": "secret"}

	id, err := adapter.Publish(context.Background(), post, site, creds)
	require.NoError(t, err)
	assert.Equal(t, "7", id)
}

func TestShopifyPublishDiscoversBlog(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		switch {
		case strings.HasSuffix(r.URL.Path, "/shop.json"):
			w.Write([]byte(`{"shop":{"id":1}}`))
		case strings.HasSuffix(r.URL.Path, "/blogs.json"):
			w.Write([]byte(`{"blogs":[{"id": 99}, {"id": 100}]}`))
		case strings.HasSuffix(r.URL.Path, "/blogs/99/articles.json"):
			payload := decodeBody(t, r)
			article := payload["article"].(map[string]interface{})
			assert.Equal(t, "Ten Trail Running Tips", article["title"])
			assert.Equal(t, true, article["published"])
			w.Write([]byte(`{"article":{"id": 123456}}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	adapter := &ShopifyAdapter{Client: clients.NewDefaultHttpClient()}
	site := &model.Site{SiteURL: server.URL}
	creds := publish.Credentials{"accessToken": "shpat_token"}

	id, err := adapter.Publish(context.Background(), testPost(), site, creds)
	require.NoError(t, err)
	assert.Equal(t, "123456", id)
	assert.Equal(t, "shpat_token", gotToken)
}

func TestShopifyNoBlogIsConfigurationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/shop.json"):
			w.Write([]byte(`{"shop":{"id":1}}`))
		case strings.HasSuffix(r.URL.Path, "/blogs.json"):
			w.Write([]byte(`{"blogs":[]}`))
		}
	}))
	defer server.Close()

	adapter := &ShopifyAdapter{Client: clients.NewDefaultHttpClient()}
	site := &model.Site{SiteURL: server.URL}
	creds := publish.Credentials{"accessToken": "shpat_token"}

	_, err := adapter.Publish(context.Background(), testPost(), site, creds)
	assert.True(t, publish.IsConfigurationError(err))
}

func TestGhostPublishMintsToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ghost/api/admin/posts/", r.URL.Path)
		require.Equal(t, "html", r.URL.Query().Get("source"))
		gotAuth = r.Header.Get("Authorization")
		payload := decodeBody(t, r)
		posts := payload["posts"].([]interface{})
		first := posts[0].(map[string]interface{})
		assert.Equal(t, "published", first["status"])
		assert.Equal(t, "Trail Tips", first["meta_title"])
		w.Write([]byte(`{"posts":[{"id":"ghost_abc"}]}`))
	}))
	defer server.Close()

	adapter := &GhostAdapter{Client: clients.NewDefaultHttpClient()}
	site := &model.Site{SiteURL: server.URL}
	creds := publish.Credentials{"adminApiKey": "keyid:0123456789abcdef"}

	id, err := adapter.Publish(context.Background(), testPost(), site, creds)
	require.NoError(t, err)
	assert.Equal(t, "ghost_abc", id)

	require.True(t, strings.HasPrefix(gotAuth, "Ghost "))
	token := strings.TrimPrefix(gotAuth, "Ghost ")
	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)

	headerJSON, err := base64.RawURLEncoding.DecodeString(segments[0])
	require.NoError(t, err)
	header := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(headerJSON, &header))
	assert.Equal(t, "HS256", header["alg"])
	assert.Equal(t, "keyid", header["kid"])
}

func TestGhostMalformedAdminKey(t *testing.T) {
	adapter := &GhostAdapter{Client: clients.NewDefaultHttpClient()}
	creds := publish.Credentials{"adminApiKey": "keyid:not-hex!"}
	_, err := adapter.Publish(context.Background(), testPost(), &model.Site{}, creds)
	assert.True(t, publish.IsConfigurationError(err))
}

func TestWebflowPublishCreatesLiveItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/col_1/items", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("live"))
		require.Equal(t, "Bearer wf_token", r.Header.Get("Authorization"))
		payload := decodeBody(t, r)
		fields := payload["fields"].(map[string]interface{})
		assert.Equal(t, "Ten Trail Running Tips", fields["name"])
		assert.Equal(t, false, fields["_draft"])
		w.Write([]byte(`{"_id":"wf_item_1"}`))
	}))
	defer server.Close()

	adapter := &WebflowAdapter{Client: clients.NewDefaultHttpClient(), BaseURL: server.URL}
	creds := publish.Credentials{"apiToken": "wf_token", "collectionId": "col_1"}

	id, err := adapter.Publish(context.Background(), testPost(), &model.Site{}, creds)
	require.NoError(t, err)
	assert.Equal(t, "wf_item_1", id)
}

func TestHubSpotPublishSetsPublishedState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cms/v3/blogs/posts", r.URL.Path)
		payload := decodeBody(t, r)
		assert.Equal(t, "PUBLISHED", payload["state"])
		assert.Equal(t, "group_1", payload["contentGroupId"])
		w.Write([]byte(`{"id": 555}`))
	}))
	defer server.Close()

	adapter := &HubSpotAdapter{Client: clients.NewDefaultHttpClient(), BaseURL: server.URL}
	creds := publish.Credentials{"accessToken": "hs_token", "contentGroupId": "group_1"}

	id, err := adapter.Publish(context.Background(), testPost(), &model.Site{}, creds)
	require.NoError(t, err)
	assert.Equal(t, "555", id)
}

func TestFramerPublishCreatesItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/collections/col_9/items", r.URL.Path)
		payload := decodeBody(t, r)
		items := payload["items"].([]interface{})
		first := items[0].(map[string]interface{})
		assert.Equal(t, false, first["draft"])
		w.Write([]byte(`{"items":[{"id":"fr_item_1"}]}`))
	}))
	defer server.Close()

	adapter := &FramerAdapter{Client: clients.NewDefaultHttpClient(), BaseURL: server.URL}
	creds := publish.Credentials{"accessToken": "fr_token", "collectionId": "col_9"}

	id, err := adapter.Publish(context.Background(), testPost(), &model.Site{}, creds)
	require.NoError(t, err)
	assert.Equal(t, "fr_item_1", id)
}

func TestRestPublishUsesCustomHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret-value", r.Header.Get("X-Api-Key"))
		payload := decodeBody(t, r)
		assert.Equal(t, "Ten Trail Running Tips", payload["title"])
		assert.Equal(t, "Trail Tips", payload["meta_title"])
		w.Write([]byte(`{"id":"rest_1"}`))
	}))
	defer server.Close()

	adapter := &RestAdapter{Client: clients.NewDefaultHttpClient()}
	creds := publish.Credentials{
		"endpoint":    server.URL + "/posts",
		"headerName":  "X-Api-Key",
		"headerValue": "secret-value",
	}

	id, err := adapter.Publish(context.Background(), testPost(), &model.Site{}, creds)
	require.NoError(t, err)
	assert.Equal(t, "rest_1", id)
}

func TestDefaultRegistryCoversAllPlatforms(t *testing.T) {
	registry := DefaultRegistry(clients.NewDefaultHttpClient())
	for _, platform := range []model.Platform{
		model.PlatformWordPress, model.PlatformShopify, model.PlatformGhost,
		model.PlatformWebflow, model.PlatformHubSpot, model.PlatformFramer, model.PlatformRest,
	} {
		_, ok := registry.Lookup(platform)
		assert.True(t, ok, string(platform))
	}
}
