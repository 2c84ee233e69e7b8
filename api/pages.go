package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Domenick1991/airbooking-admin/config"
	"github.com/Domenick1991/airbooking-admin/internal/web"
	"github.com/gin-gonic/gin"
)

// SessionRemover is the slice of the session store the pages need; the
// full store stays behind the gate.
type SessionRemover interface {
	Delete(ctx context.Context, token string) error
}

type PageHandler struct {
	authCfg  config.AuthConfig
	sessions SessionRemover
}

func NewPageHandler(authCfg config.AuthConfig, sessions SessionRemover) *PageHandler {
	return &PageHandler{authCfg: authCfg, sessions: sessions}
}

func (h *PageHandler) Register(router *gin.Engine) {
	router.GET("/sign-in", h.signInPage)
	router.POST("/sign-in", h.signIn)
	router.POST("/sign-out", h.signOut)
	router.GET("/admin/home", h.home)
	router.POST("/admin/bookings/confirm-delete", h.confirmDelete)
}

func (h *PageHandler) signInPage(c *gin.Context) {
	data := web.SignInData{Redirect: c.Query("redirect")}
	if c.Query("error") == "unauthorized" {
		data.Error = "Your account does not have admin access"
	}
	c.HTML(http.StatusOK, "sign_in", data)
}

// signIn completes only the mock flow; real credentials are verified by the
// external identity provider, which issues the session cookie itself.
func (h *PageHandler) signIn(c *gin.Context) {
	target := c.PostForm("redirect")
	if target == "" {
		target = "/admin/home"
	}

	if h.authCfg.Mode == config.AuthModeMock {
		c.SetCookie(h.authCfg.MockCookieName, "true", h.authCfg.SessionTTLMinutes*60, "/", "", false, true)
		c.Redirect(http.StatusFound, target)
		return
	}

	c.HTML(http.StatusOK, "sign_in", web.SignInData{
		Error:    "Sign-in is handled by the identity provider",
		Redirect: target,
	})
}

func (h *PageHandler) signOut(c *gin.Context) {
	if token, err := c.Cookie(h.authCfg.SessionCookieName); err == nil && token != "" && h.sessions != nil {
		_ = h.sessions.Delete(c.Request.Context(), token)
	}
	c.SetCookie(h.authCfg.SessionCookieName, "", -1, "/", "", false, true)
	c.SetCookie(h.authCfg.MockCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, h.authCfg.SignInPath)
}

func (h *PageHandler) home(c *gin.Context) {
	data := web.HomeData{Modal: web.ModalData{}}
	if sess := SessionFromContext(c); sess != nil {
		data.Email = sess.Email
	}
	c.HTML(http.StatusOK, "admin_home", data)
}

// confirmDelete re-renders the home page with the modal open; the deletion
// itself is only submitted from the modal's confirm button. The count shown
// is taken from the parsed selection, full validation stays with the delete
// action.
func (h *PageHandler) confirmDelete(c *gin.Context) {
	raw := c.PostForm("booking_ids")

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil || len(ids) == 0 {
		c.Redirect(http.StatusFound, "/admin/home")
		return
	}

	data := web.HomeData{
		BookingIDs: raw,
		Modal:      web.ModalData{Open: true, Count: len(ids)},
	}
	if sess := SessionFromContext(c); sess != nil {
		data.Email = sess.Email
	}
	c.HTML(http.StatusOK, "admin_home", data)
}
