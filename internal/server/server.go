package server

import (
	"context"
	stderrors "errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/services"
)

// Server exposes the task API over HTTP and renders the task board page
type Server struct {
	api    api.TaskAPI
	tasks  services.TaskService
	cfg    config.ServerConfig
	logger *slog.Logger
	router *gin.Engine
}

// New creates a new server. The task routes are mounted at /tasks and, when
// cfg.BasePath is set, again under <base path>/tasks.
func New(taskAPI api.TaskAPI, tasks services.TaskService, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	s := &Server{
		api:    taskAPI,
		tasks:  tasks,
		cfg:    cfg,
		logger: logger,
		router: router,
	}

	router.GET("/", s.handleBoard)
	router.GET("/healthz", s.handleHealth)

	s.mountTasks(router.Group("/tasks"))
	if cfg.BasePath != "" {
		s.mountTasks(router.Group(cfg.BasePath + "/tasks"))
	}

	return s
}

func (s *Server) mountTasks(group *gin.RouterGroup) {
	group.GET("", s.handleList)
	group.POST("", s.handleCreate)
	group.PUT("", s.handleUpdate)
	group.DELETE("", s.handleDelete)
}

// Handler returns the router for use with httptest or a custom http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", l.Addr().String())
		errCh <- httpServer.Serve(l)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}
