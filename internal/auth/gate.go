package auth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Domenick1991/airbooking-admin/config"
	"github.com/Domenick1991/airbooking-admin/internal/domain"
)

type SessionProvider interface {
	Get(ctx context.Context, token string) (*domain.Session, error)
}

type AdminLookup interface {
	GetByUserID(ctx context.Context, userID string) (*domain.AdminUser, error)
}

// Gate decides per request whether an admin page may render. The mode is
// fixed at construction; the gate never reads the environment itself.
type Gate struct {
	mode          config.AuthMode
	sessions      SessionProvider
	admins        AdminLookup
	signInPath    string
	sessionCookie string
	mockCookie    string
	public        map[string]struct{}
}

// Decision is either allow (render) or a redirect target. Session is set
// only when a real session was resolved.
type Decision struct {
	Allow      bool
	RedirectTo string
	Session    *domain.Session
}

func NewGate(cfg config.AuthConfig, sessions SessionProvider, admins AdminLookup) *Gate {
	// exact-match allowlist; the sign-in path is always admitted so a
	// redirect can never loop
	public := make(map[string]struct{}, len(cfg.PublicPaths)+1)
	for _, p := range cfg.PublicPaths {
		public[p] = struct{}{}
	}
	public[cfg.SignInPath] = struct{}{}

	return &Gate{
		mode:          cfg.Mode,
		sessions:      sessions,
		admins:        admins,
		signInPath:    cfg.SignInPath,
		sessionCookie: cfg.SessionCookieName,
		mockCookie:    cfg.MockCookieName,
		public:        public,
	}
}

// Check runs the gate's state machine. The checks are strictly ordered,
// first match wins: auth pages, bypass mode, mock mode, real session.
func (g *Gate) Check(ctx context.Context, r *http.Request) Decision {
	path := r.URL.Path

	if _, ok := g.public[path]; ok {
		return Decision{Allow: true}
	}

	if g.mode == config.AuthModeBypass {
		return Decision{Allow: true}
	}

	if g.mode == config.AuthModeMock {
		if truthyCookie(r, g.mockCookie) {
			return Decision{Allow: true}
		}
		return g.redirectWithReturn(path)
	}

	token := cookieValue(r, g.sessionCookie)
	if token == "" {
		return g.redirectWithReturn(path)
	}
	sess, err := g.sessions.Get(ctx, token)
	if err != nil || sess == nil {
		return g.redirectWithReturn(path)
	}

	admin, err := g.admins.GetByUserID(ctx, sess.UserID)
	if err == nil && admin != nil {
		return Decision{Allow: true, Session: sess}
	}
	// no admin record: legacy accounts carry is_admin in session metadata
	if sess.IsAdminMetadata() {
		return Decision{Allow: true, Session: sess}
	}
	return Decision{RedirectTo: g.signInPath + "?error=unauthorized"}
}

func (g *Gate) redirectWithReturn(path string) Decision {
	return Decision{RedirectTo: g.signInPath + "?redirect=" + url.QueryEscape(path)}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func truthyCookie(r *http.Request, name string) bool {
	v := cookieValue(r, name)
	return v == "true" || v == "1"
}
