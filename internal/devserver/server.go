package devserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bizfindr/bizfindr/internal/core/charts"
	"github.com/bizfindr/bizfindr/internal/core/logging"
	"github.com/bizfindr/bizfindr/internal/core/page"
)

// Server exposes a Fixture over HTTP.
type Server struct {
	fixture *Fixture
	engine  *gin.Engine
}

// New builds the gin engine for fixture.
func New(fixture *Fixture) *Server {
	s := &Server{fixture: fixture, engine: NewEngine()}
	s.RegisterRoutes(s.engine)
	return s
}

// NewEngine returns a release-mode gin engine with panic recovery and
// request logging.
func NewEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	return engine
}

// RegisterRoutes registers the dev server routes on router.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/stats", s.handleStats)
	router.POST("/api/refresh", s.handleRefresh)
	router.GET("/charts", s.handleCharts)
	router.GET("/health", s.handleHealth)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	return Serve(ctx, addr, s.engine)
}

// Serve runs handler on addr and shuts it down gracefully when ctx is
// cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Component("devserver").Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleStats(c *gin.Context) {
	p, ok := s.fixture.stats()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleRefresh(c *gin.Context) {
	p := s.fixture.refresh()
	if !p.Success {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": p.Error})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleCharts(c *gin.Context) {
	doc := page.NewDashboard()
	if err := charts.Attach(doc, page.IDBusinessTypes, s.fixture.BusinessTypes()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := charts.Attach(doc, page.IDRegistrationTrd, s.fixture.RegistrationTrends()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if _, err := charts.RenderPage(&buf, doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"total_registrations": s.fixture.Total(),
	})
}

func requestLogger() gin.HandlerFunc {
	logger := logging.Component("devserver")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
