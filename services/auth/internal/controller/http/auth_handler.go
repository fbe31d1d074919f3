package http

import (
	"errors"
	"net/http"
	"time"

	"wp-lite/pkg/logger"
	"wp-lite/pkg/session"
	"wp-lite/services/auth/internal/entity"
	"wp-lite/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string          `json:"token"`
	User    *entity.User    `json:"user"`
	Profile *entity.Profile `json:"profile,omitempty"`
}

type SessionResponse struct {
	User      *entity.User    `json:"user"`
	Profile   *entity.Profile `json:"profile"`
	ExpiresAt string          `json:"expires_at"`
}

// SignUp godoc
// @Summary      Create an account
// @Description  Create a user and its profile in one step and return a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignUpRequest true "Sign-up data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, profile, token, err := h.authUseCase.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to sign up: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token:   token,
		User:    user,
		Profile: profile,
	})
}

// SignIn godoc
// @Summary      Sign in
// @Description  Authenticate with email and password and return a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignInRequest true "Credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authUseCase.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to sign in: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  user,
	})
}

// Session godoc
// @Summary      Current session
// @Description  Return the signed-in user and profile; profile is null when missing
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	s := session.FromContext(c)
	if s == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": session.SignInPath})
		return
	}

	user, profile, err := h.authUseCase.GetSession(c.Request.Context(), s)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "redirect": session.SignInPath})
			return
		}
		h.logger.Error("Failed to load session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		User:      user,
		Profile:   profile,
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// SignOut godoc
// @Summary      Sign out
// @Description  Revoke the current session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	s := session.FromContext(c)
	if s == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": session.SignInPath})
		return
	}

	if err := h.authUseCase.SignOut(c.Request.Context(), s); err != nil {
		h.logger.Error("Failed to sign out: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
