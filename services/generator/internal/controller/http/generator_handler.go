package http

import (
	"net/http"

	"wp-lite/pkg/logger"
	"wp-lite/services/generator/internal/entity"
	"wp-lite/services/generator/internal/usecase"

	"github.com/gin-gonic/gin"
)

type GeneratorHandler struct {
	generatorUseCase usecase.GeneratorUseCase
	logger           *logger.Logger
}

func NewGeneratorHandler(generatorUseCase usecase.GeneratorUseCase, logger *logger.Logger) *GeneratorHandler {
	return &GeneratorHandler{
		generatorUseCase: generatorUseCase,
		logger:           logger,
	}
}

// GenerateBlogContent godoc
// @Summary      Generate blog content
// @Description  Write an 800-word accounting blog post in markdown for the title
// @Tags         generator
// @Accept       json
// @Produce      json
// @Param        request body entity.GenerateRequest true "Post title"
// @Success      200  {object}  entity.GeneratedContent
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /generate-blog-content [post]
func (h *GeneratorHandler) GenerateBlogContent(c *gin.Context) {
	var req entity.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	generated, err := h.generatorUseCase.GenerateContent(c.Request.Context(), req.Title)
	if err != nil {
		h.logger.Error("Error in generate-blog-content: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, generated)
}

// GenerateBlogImage godoc
// @Summary      Generate blog header image
// @Description  Create a header image for the title, store it in the blog-images bucket and return its public URL
// @Tags         generator
// @Accept       json
// @Produce      json
// @Param        request body entity.GenerateRequest true "Post title"
// @Success      200  {object}  entity.GeneratedImage
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /generate-blog-image [post]
func (h *GeneratorHandler) GenerateBlogImage(c *gin.Context) {
	var req entity.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	generated, err := h.generatorUseCase.GenerateImage(c.Request.Context(), req.Title)
	if err != nil {
		h.logger.Error("Error in generate-blog-image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, generated)
}
