package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes /metrics and /healthz for operators.
type Server struct {
	srv       *http.Server
	startTime time.Time
}

func NewServer(addr string, m *Metrics, db Pinger, version string) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{startTime: time.Now()}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})))
	r.GET("/healthz", s.health(db, version))

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) health(db Pinger, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "healthy", http.StatusOK
		if err := db.Ping(ctx); err != nil {
			status, code = "unhealthy: "+err.Error(), http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"database": status,
			"version":  version,
			"uptime":   time.Since(s.startTime).Round(time.Second).String(),
		})
	}
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		slog.Info("Ops server listening", slog.String("type", "sys"), slog.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Ops server stopped", slog.String("type", "error"), slog.Any("error", err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
