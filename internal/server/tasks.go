package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/domain"
	"taskboard/internal/services"
)

type createTaskRequest struct {
	Title          string   `json:"title"`
	Day            string   `json:"day"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	EstimatedHours *float64 `json:"estimated_hours"`
}

type renameTaskRequest struct {
	Title string `json:"title"`
}

type moveTaskRequest struct {
	Status string `json:"status"`
}

// handleGetBoard returns the caller's tasks grouped into columns.
func (s *Server) handleGetBoard(c *gin.Context) {
	board, err := s.api.GetBoard(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, board)
}

// handleAddTask creates a task in the caller's todo column.
func (s *Server) handleAddTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err))
		return
	}

	task, err := s.api.AddTask(c.Request.Context(), services.CreateTaskInput{
		Title:          req.Title,
		Day:            req.Day,
		UserID:         currentUserID(c),
		Description:    req.Description,
		Priority:       domain.Priority(req.Priority),
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleRenameTask retitles a task the caller owns.
func (s *Server) handleRenameTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req renameTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err))
		return
	}

	if err := s.api.RenameTask(c.Request.Context(), taskID, currentUserID(c), req.Title); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "renamed"})
}

// handleMoveTask moves a task to another board column.
func (s *Server) handleMoveTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err))
		return
	}

	if err := s.api.MoveTask(c.Request.Context(), taskID, currentUserID(c), domain.Status(req.Status)); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "moved"})
}

// handleDeleteTask removes a task the caller owns.
func (s *Server) handleDeleteTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.api.DeleteTask(c.Request.Context(), taskID, currentUserID(c)); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleStartTimer opens a timer on a task for the caller.
func (s *Server) handleStartTimer(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := s.api.StartTimer(c.Request.Context(), taskID, currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"entry": entry})
}

// handleStopTimer closes the caller's open timer on a task.
func (s *Server) handleStopTimer(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := s.api.StopTimer(c.Request.Context(), taskID, currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entry": entry})
}
