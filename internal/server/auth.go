package server

import (
	"errors"
	"log"
	"strings"

	"trivia/internal/auth"
	"trivia/internal/engine"

	"github.com/gin-gonic/gin"
)

const userKey = "trivia.user"

// requireUser admits requests carrying a valid bearer token for an active
// user.
func (s *Server) requireUser(c *gin.Context) {
	user, err := s.authenticate(c, c.GetHeader("Authorization"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(userKey, user)
	c.Next()
}

func (s *Server) authenticate(c *gin.Context, token string) (engine.User, error) {
	if strings.TrimSpace(token) == "" {
		return engine.User{}, engine.NewError(engine.KindForbiddenAccess, "authentication required")
	}
	identity, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return engine.User{}, engine.NewError(engine.KindForbiddenAccess, "token expired")
		}
		log.Printf("token rejected remote=%s error=%v", c.ClientIP(), err)
		return engine.User{}, engine.NewError(engine.KindForbiddenAccess, "invalid token")
	}
	user, err := s.findUser(c.Request.Context(), identity.UserID)
	if err != nil {
		if engine.KindOf(err) == engine.KindNotFound {
			return engine.User{}, engine.NewError(engine.KindForbiddenAccess, "unknown user")
		}
		return engine.User{}, err
	}
	if !user.Active {
		return engine.User{}, engine.NewError(engine.KindForbiddenAccess, "user is not active")
	}
	return user, nil
}

func currentUser(c *gin.Context) engine.User {
	value, _ := c.Get(userKey)
	user, _ := value.(engine.User)
	return user
}
