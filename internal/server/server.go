package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/api"
	apperrors "taskboard/internal/errors"
)

// Server provides HTTP handlers for the task board backend.
type Server struct {
	engine   *gin.Engine
	api      api.BusinessAPI
	logger   *slog.Logger
	sessions *sessionStore
}

// New constructs the HTTP server with routes and middleware configured.
func New(businessAPI api.BusinessAPI, logger *slog.Logger, sessionTTL time.Duration) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	srv := &Server{
		engine:   router,
		api:      businessAPI,
		logger:   logger,
		sessions: newSessionStore(sessionTTL),
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires public and authenticated handlers together.
func (s *Server) registerRoutes() {
	root := s.engine.Group("/api")
	{
		root.GET("/healthz", s.handleHealth)

		root.POST("/signup", s.handleSignup)
		root.POST("/login", s.handleLogin)
		root.POST("/password/forgot", s.handleForgotPassword)
		root.POST("/password/reset", s.handleResetPassword)

		authed := root.Group("", s.requireSession())
		{
			authed.POST("/logout", s.handleLogout)
			authed.GET("/me", s.handleCurrentUser)

			authed.GET("/tasks", s.handleGetBoard)
			authed.POST("/tasks", s.handleAddTask)
			authed.PUT("/tasks/:id", s.handleRenameTask)
			authed.POST("/tasks/:id/move", s.handleMoveTask)
			authed.DELETE("/tasks/:id", s.handleDeleteTask)

			authed.POST("/tasks/:id/timer/start", s.handleStartTimer)
			authed.POST("/tasks/:id/timer/stop", s.handleStopTimer)

			authed.GET("/timesheet", s.handleTimesheet)
			authed.GET("/report", s.handleWeeklyReport)
		}
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError maps application errors to HTTP statuses, logging the
// ones worth operator attention.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			status = http.StatusBadRequest
		case apperrors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrorTypeUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.ErrorTypeConflict:
			status = http.StatusConflict
		}
	}

	if apperrors.ShouldLogError(err) {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": apperrors.GetUserMessage(err)})
}

// badRequest wraps a body parsing failure as a validation error.
func badRequest(err error) error {
	return apperrors.NewValidationError("malformed request body", err)
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
