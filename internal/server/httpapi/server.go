// Package httpapi exposes UserService over JSON/HTTP with gin. The session
// token travels in the "token" cookie.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// UserService is the business logic behind the handlers.
type UserService interface {
	Register(ctx context.Context, email, password, username string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Verify(ctx context.Context, token string) services.VerifyResult
}

type Server struct {
	address         string
	users           UserService
	logger          logging.Logger
	cookie          cookieOptions
	shutdownTimeout time.Duration
	engine          *gin.Engine
}

// netListen is a seam for tests.
var netListen = net.Listen

// NewServer builds the router from cfg. The cookie lifetime follows
// cfg.TokenValidityDuration.
func NewServer(cfg *config.Config, l logging.Logger, us UserService) (*Server, error) {
	sameSite, err := cfg.Cookie.SameSiteMode()
	if err != nil {
		return nil, err
	}

	s := &Server{
		address: cfg.EndpointAddrHTTP,
		users:   us,
		logger:  l.With("module", "http_server"),
		cookie: cookieOptions{
			httpOnly: cfg.Cookie.HTTPOnly,
			secure:   cfg.Cookie.Secure || sameSite == http.SameSiteNoneMode,
			sameSite: sameSite,
			maxAge:   cfg.TokenValidityDuration,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	engine, err := s.newRouter(cfg.CORSAllowedOrigins)
	if err != nil {
		return nil, err
	}
	s.engine = engine

	return s, nil
}

func (s *Server) newRouter(origins []string) (*gin.Engine, error) {
	router := gin.New()
	router.Use(s.recovery(), s.requestLogger())

	if len(origins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		if err := corsConfig.Validate(); err != nil {
			return nil, err
		}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/health", s.handleHealth)
	router.POST("/", s.handleVerify)
	router.POST("/signup", s.handleSignup)
	router.POST("/login", s.handleLogin)
	router.POST("/logout", s.handleLogout)

	return router, nil
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	listen, err := netListen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	err = srv.Serve(listen)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// in-flight requests are drained once Shutdown returns
	<-stopped

	return nil
}
