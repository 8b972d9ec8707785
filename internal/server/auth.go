package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/services"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// handleSignup registers a new account and opens a session for it.
func (s *Server) handleSignup(c *gin.Context) {
	var req services.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err))
		return
	}

	user, err := s.api.SignUp(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"user": user, "token": token})
}

// handleLogin checks credentials and opens a session.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err))
		return
	}

	user, err := s.api.LogIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"user": user, "token": token})
}

// handleLogout drops the caller's session token.
func (s *Server) handleLogout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		s.sessions.Delete(token)
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "logged out"})
}

// handleCurrentUser returns the authenticated account.
func (s *Server) handleCurrentUser(c *gin.Context) {
	user, err := s.api.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}

// handleForgotPassword issues a one-time reset code for the email.
func (s *Server) handleForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err))
		return
	}

	if err := s.api.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "code sent"})
}

// handleResetPassword verifies a code and replaces the account password.
func (s *Server) handleResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err))
		return
	}

	err := s.api.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "password updated"})
}
