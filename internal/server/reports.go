package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/repository/sqlite"
)

// refDate resolves the optional ?date=YYYY-MM-DD query parameter,
// defaulting to today.
func refDate(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	ref, err := time.Parse(sqlite.DateFormat, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date, expected YYYY-MM-DD", err)
	}
	return ref, nil
}

// handleTimesheet returns the dashboard timesheet for the week
// containing the requested date.
func (s *Server) handleTimesheet(c *gin.Context) {
	ref, err := refDate(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	dashboard, err := s.api.GetDashboard(c.Request.Context(), ref)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dashboard)
}

// handleWeeklyReport returns the caller's productivity summary for the
// week containing the requested date.
func (s *Server) handleWeeklyReport(c *gin.Context) {
	ref, err := refDate(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	report, err := s.api.GetWeeklyReport(c.Request.Context(), currentUserID(c), ref)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, report)
}
