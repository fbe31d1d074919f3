package http

import (
	"net/http"

	"wp-lite/pkg/logger"
	"wp-lite/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogUseCase usecase.BlogUseCase
	logger      *logger.Logger
}

func NewBlogHandler(blogUseCase usecase.BlogUseCase, logger *logger.Logger) *BlogHandler {
	return &BlogHandler{
		blogUseCase: blogUseCase,
		logger:      logger,
	}
}

// ListPosts godoc
// @Summary      Public blog listing
// @Description  Published posts, newest first, split into featured and regular, with the category list
// @Tags         blog
// @Produce      json
// @Param        category query string false "Category filter; All or empty for every post"
// @Success      200  {object}  usecase.BlogListing
// @Failure      500  {object}  map[string]string
// @Router       /blog/posts [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	listing, err := h.blogUseCase.ListPublished(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetPost godoc
// @Summary      Public post
// @Description  A published post by slug with read time and SEO metadata
// @Tags         blog
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  usecase.BlogPostDetail
// @Failure      404  {object}  map[string]string
// @Router       /blog/posts/{slug} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	detail, err := h.blogUseCase.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PageSEO godoc
// @Summary      Page SEO
// @Description  Metadata for a client route; unknown routes get the home page metadata
// @Tags         blog
// @Produce      json
// @Param        path query string false "Route path" default(/)
// @Success      200  {object}  content.SEO
// @Router       /seo [get]
func (h *BlogHandler) PageSEO(c *gin.Context) {
	c.JSON(http.StatusOK, h.blogUseCase.PageSEO(c.DefaultQuery("path", "/")))
}
