// Package session holds the authenticated-user context that admin handlers
// consult. The session is an explicit value resolved once per request and
// passed along; nothing here reads global state.
package session

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SignInPath is where unauthenticated visitors of admin pages are sent.
const SignInPath = "/auth"

const contextKey = "session"

type Session struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// State is what a guard sees: whether resolution has finished and, if so, the
// session it produced (nil when the visitor is anonymous).
type State struct {
	Resolved bool
	Session  *Session
}

type Decision int

const (
	DecisionLoading Decision = iota
	DecisionRedirect
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRedirect:
		return "redirect"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// Guard decides what an admin-only page should do for the given state.
func Guard(state State) Decision {
	if !state.Resolved {
		return DecisionLoading
	}
	if state.Session == nil || state.Session.UserID == "" {
		return DecisionRedirect
	}
	return DecisionAllow
}

func Set(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
	c.Set("user_id", s.UserID)
	c.Set("user_role", s.Role)
}

// FromContext returns the session stored by the auth middleware, or nil.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
