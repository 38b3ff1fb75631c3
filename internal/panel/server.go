package panel

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fragmede/hnpanel/internal/render"
)

const shutdownTimeout = 5 * time.Second

// Server is a browser panel: it serves the most recent document over HTTP.
type Server struct {
	addr   string
	log    logrus.FieldLogger
	router *gin.Engine

	mu      sync.RWMutex
	title   string
	page    string
	updated time.Time
}

// NewServer creates a panel that will listen on addr.
func NewServer(addr string, log logrus.FieldLogger) *Server {
	s := &Server{
		addr: addr,
		log:  log,
		page: render.RenderNotice("Run the command to load the top stories.", StylesheetPath, false),
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/", s.handlePage)
	router.GET(StylesheetPath, s.handleStylesheet)
	router.GET("/health", s.handleHealth)
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("panel request")
	}
}

// Handler exposes the panel routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// URL is the address a browser should open.
func (s *Server) URL() string {
	host, port, err := net.SplitHostPort(s.addr)
	if err != nil {
		return "http://" + s.addr + "/"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// Show replaces the served document.
func (s *Server) Show(title, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.page = html
	s.updated = time.Now()
	return nil
}

// ShowError replaces the served document with an error notice.
func (s *Server) ShowError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = render.RenderNotice(msg, StylesheetPath, true)
	s.updated = time.Now()
}

func (s *Server) StylesheetURI() string { return StylesheetPath }

func (s *Server) handlePage(c *gin.Context) {
	s.mu.RLock()
	title, page, updated := s.title, s.page, s.updated
	s.mu.RUnlock()

	c.Header("Cache-Control", "no-store")
	if title != "" {
		c.Header("X-Panel-Title", title)
	}
	if !updated.IsZero() {
		c.Header("Last-Modified", updated.UTC().Format(http.TimeFormat))
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (s *Server) handleStylesheet(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", stylesheet)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves the panel until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the panel on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.WithField("url", s.URL()).Info("panel listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving panel")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down panel")
	}
	return nil
}
