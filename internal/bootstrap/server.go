package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airbooking-admin/api"
	"github.com/Domenick1991/airbooking-admin/config"
	"github.com/Domenick1991/airbooking-admin/internal/auth"
	"github.com/Domenick1991/airbooking-admin/internal/service/admin"
	"github.com/Domenick1991/airbooking-admin/internal/web"
	"github.com/gin-gonic/gin"
)

// NewEngine assembles the admin web surface: pages and action endpoints,
// all behind the auth gate. The gate itself admits the sign-in pages.
func NewEngine(cfg *config.Config, gate *auth.Gate, adminSvc admin.AdminUseCase, sessions api.SessionRemover) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.SetHTMLTemplate(web.Templates())
	engine.Use(api.AuthGate(gate))

	pages := api.NewPageHandler(cfg.Auth, sessions)
	pages.Register(engine)

	adminHandler := api.NewAdminHandler(adminSvc)
	adminHandler.Register(engine.Group("/admin"))

	return engine
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
