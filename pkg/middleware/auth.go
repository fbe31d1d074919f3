package middleware

import (
	"context"
	"net/http"
	"strings"

	"wp-lite/pkg/jwt"
	"wp-lite/pkg/session"

	"github.com/gin-gonic/gin"
)

// RevocationChecker reports whether a signed-out token id is still denied.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware rejects the request unless it carries a valid, unrevoked bearer token.
// revocations may be nil when the service does not track sign-outs.
func AuthMiddleware(jwtService *jwt.Service, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, errMsg := resolveSession(c, jwtService, revocations)
		if s == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg, "redirect": session.SignInPath})
			c.Abort()
			return
		}

		session.Set(c, s)
		c.Next()
	}
}

// ResolveSession attaches the session when a valid token is present and lets
// anonymous requests through untouched. Pair it with RequireSession.
func ResolveSession(jwtService *jwt.Service, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, _ := resolveSession(c, jwtService, revocations); s != nil {
			session.Set(c, s)
		}
		c.Next()
	}
}

// RequireSession applies session.Guard to whatever ResolveSession found.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := session.State{Resolved: true, Session: session.FromContext(c)}

		switch session.Guard(state) {
		case session.DecisionAllow:
			c.Next()
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": session.SignInPath})
			c.Abort()
		}
	}
}

func resolveSession(c *gin.Context, jwtService *jwt.Service, revocations RevocationChecker) (*session.Session, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "Authorization header required"
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, "Invalid authorization header format"
	}

	claims, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, "Invalid or expired token"
	}

	if revocations != nil {
		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			return nil, "Session check failed"
		}
		if revoked {
			return nil, "Session has been signed out"
		}
	}

	s := &session.Session{
		UserID:  claims.UserID,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, ""
}
