package http

import (
	"fmt"
	"net/http"

	"wp-lite/pkg/logger"
	"wp-lite/pkg/session"
	"wp-lite/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EditorHandler struct {
	editorUseCase usecase.EditorUseCase
	logger        *logger.Logger
}

func NewEditorHandler(editorUseCase usecase.EditorUseCase, logger *logger.Logger) *EditorHandler {
	return &EditorHandler{
		editorUseCase: editorUseCase,
		logger:        logger,
	}
}

type GenerateRequest struct {
	Title string `json:"title"`
}

// UploadImage godoc
// @Summary      Upload featured image
// @Description  Upload an image (max 5MB) to the blog-images bucket and return its public URL
// @Tags         editor
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Image file"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /admin/uploads [post]
func (h *EditorHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	url, err := h.editorUseCase.UploadImage(c.Request.Context(), usecase.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Image uploaded successfully!", "url": url})
}

// GenerateContent godoc
// @Summary      Generate post content
// @Description  Draft an article body for the title with the AI generator
// @Tags         editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body GenerateRequest true "Post title"
// @Success      200  {object}  entity.GeneratedContent
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /admin/generate/content [post]
func (h *EditorHandler) GenerateContent(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	generated, err := h.editorUseCase.GenerateContent(c.Request.Context(), userID(c), req.Title)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content":   generated.Content,
		"wordCount": generated.WordCount,
		"message":   fmt.Sprintf("Generated %d words of content!", generated.WordCount),
	})
}

// GenerateImage godoc
// @Summary      Generate featured image
// @Description  Create a header image for the title and return its public URL and alt text
// @Tags         editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body GenerateRequest true "Post title"
// @Success      200  {object}  entity.GeneratedImage
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /admin/generate/image [post]
func (h *EditorHandler) GenerateImage(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	generated, err := h.editorUseCase.GenerateImage(c.Request.Context(), userID(c), req.Title)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imageUrl": generated.ImageURL,
		"altText":  generated.AltText,
		"message":  "AI image generated and uploaded successfully!",
	})
}

func userID(c *gin.Context) string {
	if s := session.FromContext(c); s != nil {
		return s.UserID
	}
	return c.ClientIP()
}
