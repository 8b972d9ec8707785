package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	sessionHeader     = "Authorization"
	sessionScheme     = "Bearer "
	contextUserIDKey  = "session_user_id"
	defaultSessionTTL = 24 * time.Hour
)

type session struct {
	userID    int64
	expiresAt time.Time
}

// sessionStore keeps bearer tokens in memory. Tokens expire after the
// configured TTL and are dropped lazily on lookup.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
	ttl      time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
	}
}

// Create mints a new token for the user.
func (s *sessionStore) Create(userID int64) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.sessions[token] = session{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Lookup resolves a token to a user ID, evicting it when expired.
func (s *sessionStore) Lookup(token string) (int64, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	if time.Now().After(sess.expiresAt) {
		s.Delete(token)
		return 0, false
	}
	return sess.userID, true
}

// Delete removes a token.
func (s *sessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// requireSession rejects requests without a valid bearer token and
// stashes the resolved user ID on the context.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		userID, ok := s.sessions.Lookup(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or invalid"})
			return
		}
		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the authenticated user's ID from the context.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(contextUserIDKey)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(sessionHeader)
	if len(header) > len(sessionScheme) && header[:len(sessionScheme)] == sessionScheme {
		return header[len(sessionScheme):]
	}
	return ""
}
