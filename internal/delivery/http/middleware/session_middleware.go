package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/response"
	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/internal/session"
	"github.com/Ravularamesh74/Job-Portal/pkg/logger"
)

// sessionContextKey is where handlers find the bound *session.Session.
const sessionContextKey = "Session"

// SessionMiddleware binds the request to its session via the X-Session-Id
// header, issuing a fresh id when absent. The id is always echoed back so
// the client can persist it.
func SessionMiddleware(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Session-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header("X-Session-Id", id)

		sess, err := reg.GetOrCreate(c.Request.Context(), id)
		if err != nil {
			logger.Log.Error("session bootstrap failed", "session_id", id, "error", err)
			response.Error(c, 500, "Could not initialize session", nil)
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Set(string(domain.KeySessionID), id)
		if ident := sess.Identity(); ident != nil {
			c.Set(string(domain.KeyUserID), ident.UserID)
			c.Set(string(domain.KeyUserEmail), ident.Email)
		}

		c.Next()
	}
}

// SessionFrom extracts the bound session. Only valid behind
// SessionMiddleware.
func SessionFrom(c *gin.Context) *session.Session {
	sess, _ := c.MustGet(sessionContextKey).(*session.Session)
	return sess
}
