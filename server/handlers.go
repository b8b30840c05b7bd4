// Package server is the thin gin glue over the core pipelines. Handlers only
// translate HTTP to core calls and typed results back to status codes; no
// business logic lives here.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/credential"
	"github.com/seoforge/seoforge/extraction"
	"github.com/seoforge/seoforge/model"
	"github.com/seoforge/seoforge/publish"
	"github.com/seoforge/seoforge/server/middlewares"
	"github.com/seoforge/seoforge/store"
	"github.com/seoforge/seoforge/utils"
)

type Handler struct {
	Dispatcher   *publish.Dispatcher
	Orchestrator *extraction.Orchestrator
	Gateway      *credential.Gateway
	Posts        store.PostStore
	Sites        store.SiteStore
}

// RegisterRoutes mounts all API routes. Everything except the healthcheck
// sits behind the service-key middleware.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api", middlewares.ServiceKeyAuth())
	api.POST("/posts/:id/publish", h.PublishPost)
	api.POST("/posts/:id/keywords", h.ExtractKeywords)
	api.PUT("/sites/:id/credentials", h.UpdateCredentials)
	api.POST("/admin/credentials/migrate", h.MigrateCredentials)
}

// PublishPost dispatches one post to its site's CMS.
func (h *Handler) PublishPost(c *gin.Context) {
	receipt, err := h.Dispatcher.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, publish.ErrAlreadyPublishing):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case publish.IsConfigurationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// adapter/CMS failures: the post is marked failed, the caller
			// gets the classified message
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, receipt)
}

type keywordsResponse struct {
	Mode            extraction.Mode          `json:"mode"`
	RepollAfterSecs int                      `json:"repoll_after_secs,omitempty"`
	Keywords        []model.KeywordCandidate `json:"keywords,omitempty"`
	Topics          []model.TopicCandidate   `json:"topics,omitempty"`
}

// ExtractKeywords runs the remote-first extraction pipeline for one post.
func (h *Handler) ExtractKeywords(c *gin.Context) {
	post, err := h.Posts.GetPostWithSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.Orchestrator.Run(c.Request.Context(), post)
	if err != nil {
		switch {
		case errors.Is(err, extraction.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, extraction.ErrNetwork):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, keywordsResponse{
		Mode:            outcome.Mode,
		RepollAfterSecs: int(outcome.RepollAfter.Seconds()),
		Keywords:        outcome.Keywords,
		Topics:          outcome.Topics,
	})
}

type updateCredentialsRequest struct {
	Credentials map[string]interface{} `json:"credentials" binding:"required"`

	// SiteURL optionally re-points the site; normalized before storage
	SiteURL string `json:"siteUrl"`
}

// UpdateCredentials encrypts and stores a site's credential object. A
// degraded write (encryption service down, plaintext stored) still succeeds
// and is flagged in the response.
func (h *Handler) UpdateCredentials(c *gin.Context) {
	var req updateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blob, degraded := h.Gateway.Encrypt(c.Request.Context(), req.Credentials)
	if blob == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "credentials are not serializable"})
		return
	}
	if err := h.Sites.UpdateCredentials(c.Request.Context(), c.Param("id"), blob); err != nil {
		if errors.Is(err, store.ErrSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if req.SiteURL != "" {
		if err := h.Sites.UpdateSiteURL(c.Request.Context(), c.Param("id"), utils.NormalizeSiteURL(req.SiteURL)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"encrypted": !degraded, "degraded": degraded})
}

// MigrateCredentials backfills encryption over all stored plaintext blobs.
func (h *Handler) MigrateCredentials(c *gin.Context) {
	report, err := h.Gateway.MigrateAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
