package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"wp-lite/pkg/logger"
	"wp-lite/pkg/session"
	"wp-lite/services/post/internal/entity"
	"wp-lite/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// SavePostRequest is the editor payload. Omitted fields keep their current
// value on update; featured_image "" removes the image and its alt text.
type SavePostRequest struct {
	Title             *string    `json:"title"`
	Slug              *string    `json:"slug"`
	Excerpt           *string    `json:"excerpt"`
	Content           *string    `json:"content"`
	Category          *string    `json:"category"`
	Status            *string    `json:"status"`
	Featured          *bool      `json:"featured"`
	FeaturedImage     *string    `json:"featured_image"`
	FeaturedImageAlt  *string    `json:"featured_image_alt"`
	ExpectedUpdatedAt *time.Time `json:"updated_at"`
}

func (r SavePostRequest) toInput() usecase.SaveInput {
	input := usecase.SaveInput{
		Title:             r.Title,
		Slug:              r.Slug,
		Excerpt:           r.Excerpt,
		Content:           r.Content,
		Category:          r.Category,
		Featured:          r.Featured,
		FeaturedImage:     r.FeaturedImage,
		FeaturedImageAlt:  r.FeaturedImageAlt,
		ExpectedUpdatedAt: r.ExpectedUpdatedAt,
	}
	if r.Status != nil {
		status := entity.PostStatus(*r.Status)
		input.Status = &status
	}
	return input
}

type PostResponse struct {
	Message string       `json:"message"`
	Post    *entity.Post `json:"post"`
}

type PostListResponse struct {
	Posts  []*entity.Post      `json:"posts"`
	Counts entity.StatusCounts `json:"counts"`
}

// ListPosts godoc
// @Summary      List posts
// @Description  All posts, most recently updated first, optionally filtered by status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status filter" Enums(all, published, draft)
// @Success      200  {object}  PostListResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /admin/posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	filter, err := entity.ParseStatusFilter(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, err := h.postUseCase.ListPosts(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PostListResponse{Posts: nonNil(posts), Counts: entity.CountByStatus(posts)})
}

// GetPost godoc
// @Summary      Get post
// @Description  Load a post into the editor
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /admin/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary      Create post
// @Description  Create a post authored by the signed-in user; the slug is derived from the title when empty
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SavePostRequest true "Post fields"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), session.FromContext(c), req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PostResponse{Message: "Post created successfully!", Post: post})
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Save editor changes; updated_at makes the write conditional
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body SavePostRequest true "Changed fields"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PostResponse{Message: "Post updated successfully!", Post: post})
}

// ToggleStatus godoc
// @Summary      Toggle post status
// @Description  Flip a post between draft and published and return the refreshed list
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  PostListResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/posts/{id}/status [patch]
func (h *PostHandler) ToggleStatus(c *gin.Context) {
	posts, err := h.postUseCase.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PostListResponse{Posts: nonNil(posts), Counts: entity.CountByStatus(posts)})
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Permanently delete a post; requires confirm=true
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        confirm query bool true "Confirm the deletion"
// @Success      200  {object}  PostListResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	posts, err := h.postUseCase.DeletePost(c.Request.Context(), c.Param("id"), confirmed)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PostListResponse{Posts: nonNil(posts), Counts: entity.CountByStatus(posts)})
}

// Dashboard godoc
// @Summary      Admin dashboard
// @Description  Profile of the signed-in user, post counts and recent posts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usecase.Dashboard
// @Failure      401  {object}  map[string]string
// @Router       /admin/dashboard [get]
func (h *PostHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.postUseCase.GetDashboard(c.Request.Context(), session.FromContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	dashboard.Posts = nonNil(dashboard.Posts)
	c.JSON(http.StatusOK, dashboard)
}

// CreateSamplePost godoc
// @Summary      Create sample post
// @Description  Insert the published, featured welcome post
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  PostResponse
// @Failure      409  {object}  map[string]string
// @Router       /admin/posts/sample [post]
func (h *PostHandler) CreateSamplePost(c *gin.Context) {
	post, err := h.postUseCase.CreateSamplePost(c.Request.Context(), session.FromContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, PostResponse{Message: "Sample post created successfully!", Post: post})
}

func (h *PostHandler) respondError(c *gin.Context, err error) {
	respondError(c, h.logger, err)
}

func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, entity.ErrTitleRequired),
		errors.Is(err, entity.ErrUnknownFilter),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrConfirmationRequired),
		errors.Is(err, usecase.ErrNotAnImage),
		errors.Is(err, usecase.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": session.SignInPath})
	case errors.Is(err, usecase.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, usecase.ErrSlugTaken),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrGenerationInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUploadFailed),
		errors.Is(err, usecase.ErrGenerationFailed):
		// already logged by the editor use case
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Error("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func nonNil(posts []*entity.Post) []*entity.Post {
	if posts == nil {
		return []*entity.Post{}
	}
	return posts
}
