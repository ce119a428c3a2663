// Package guard gates the admin pages on a signed-in session.
package guard

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/domain"
)

// Policy decides what happens to a request without a session.
type Policy string

const (
	// PolicyBypass lets the request through anyway. This is the current
	// behaviour until sign-in exists.
	PolicyBypass Policy = "bypass"
	// PolicyRedirect sends the visitor back to the landing page.
	PolicyRedirect Policy = "redirect"
)

// ParsePolicy maps a setting to a Policy, defaulting to PolicyBypass.
func ParsePolicy(s string) Policy {
	if Policy(s) == PolicyRedirect {
		return PolicyRedirect
	}
	return PolicyBypass
}

// CookieName holds the access token issued by the hosted auth service.
const CookieName = "sb-access-token"

// UserKey is the gin context key carrying the signed-in user id.
const UserKey = "admin_user"

// Decision is the result of a session check.
type Decision struct {
	Authenticated bool
	UserID        string
	// Bypassed is set when access was granted without a session.
	Bypassed bool
}

// Check resolves token and applies policy when there is no session.
func Check(ctx context.Context, sessions domain.SessionResolver, token string, policy Policy) (Decision, error) {
	if sessions != nil {
		userID, ok, err := sessions.Session(ctx, token)
		if err != nil {
			return Decision{}, err
		}
		if ok {
			return Decision{Authenticated: true, UserID: userID}, nil
		}
	}

	if policy == PolicyBypass {
		return Decision{Authenticated: true, Bypassed: true}, nil
	}
	return Decision{}, nil
}

// Middleware checks the session on every admin request. sessions returns
// the resolver to use; a nil resolver means no session can exist.
func Middleware(sessions func() (domain.SessionResolver, error), policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolver, err := sessions()
		if err != nil {
			log.Printf("Auth check error: %v", err)
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		token, _ := c.Cookie(CookieName)
		decision, err := Check(c.Request.Context(), resolver, token, policy)
		if err != nil {
			log.Printf("Auth check error: %v", err)
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		if !decision.Authenticated {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		if decision.Bypassed {
			log.Printf("WARNING: admin access granted without a session (%s %s)", c.Request.Method, c.Request.URL.Path)
		}
		c.Set(UserKey, decision.UserID)
		c.Next()
	}
}
