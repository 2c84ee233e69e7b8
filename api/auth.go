package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking-admin/internal/auth"
	"github.com/Domenick1991/airbooking-admin/internal/domain"
	"github.com/gin-gonic/gin"
)

const sessionContextKey = "admin_session"

// AuthGate adapts the gate's decision to gin: pass through or redirect,
// never a JSON error body.
func AuthGate(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := gate.Check(c.Request.Context(), c.Request)
		if !decision.Allow {
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
			return
		}
		if decision.Session != nil {
			c.Set(sessionContextKey, decision.Session)
		}
		c.Next()
	}
}

// SessionFromContext returns the session the gate resolved, if any. Bypass
// and mock modes render without one.
func SessionFromContext(c *gin.Context) *domain.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*domain.Session)
	if !ok {
		return nil
	}
	return sess
}
