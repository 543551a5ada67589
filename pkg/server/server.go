// Package server wires the Box and Forge clients into the HTTP surface:
// the translation orchestration endpoints, the Box OAuth/tree endpoints
// and the static viewer UI.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forgebox/pkg/box"
	"forgebox/pkg/config"
	"forgebox/pkg/forge"
	"forgebox/pkg/log"
	"forgebox/pkg/session"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server hosts the integration endpoints.
type Server struct {
	echo       *echo.Echo
	cfg        *config.Config
	sessions   *session.Store
	tokens     *session.Tokens
	box        *box.Client
	oss        *forge.OSSClient
	derivative *forge.DerivativeClient
}

// New creates a server around the given collaborators.
func New(cfg *config.Config, sessions *session.Store, tokens *session.Tokens, boxClient *box.Client, ossClient *forge.OSSClient, derivativeClient *forge.DerivativeClient) *Server {
	return &Server{
		echo:       echo.New(),
		cfg:        cfg,
		sessions:   sessions,
		tokens:     tokens,
		box:        boxClient,
		oss:        ossClient,
		derivative: derivativeClient,
	}
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(addr string) error {
	s.setupRoutes()

	go func() {
		log.Info().
			Str("addr", addr).
			Str("web_dir", s.cfg.WebDir).
			Msg("Starting forgebox server")

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return s.Shutdown()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (s *Server) setupRoutes() {
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	s.echo.Use(middleware.Recover())

	s.echo.POST("/integration/sendToTranslation", s.sendToTranslation)
	s.echo.POST("/integration/isReadyToShow", s.isReadyToShow)

	s.echo.GET("/box/authenticate", s.boxAuthenticate)
	s.echo.GET("/box/isAuthorized", s.boxIsAuthorized)
	s.echo.GET("/box/callback", s.boxCallback)
	s.echo.GET("/box/getTreeNode", s.boxTreeNode)

	s.echo.GET("/md/viewerFormats", s.viewerFormats)

	s.echo.Static("/", s.cfg.WebDir)
}

// currentSession returns the session addressed by the request cookie,
// creating a fresh one (and setting the cookie) when none exists.
func (s *Server) currentSession(ctx echo.Context) *session.Session {
	cookie, err := ctx.Cookie(s.cfg.SessionCookieName)
	if err == nil {
		if sess, ok := s.sessions.Get(cookie.Value); ok {
			return sess
		}
	}

	sess := s.sessions.Create()
	ctx.SetCookie(&http.Cookie{
		Name:     s.cfg.SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SessionCookieSecure,
		MaxAge:   s.cfg.SessionTTLMinutes * 60,
	})
	return sess
}
