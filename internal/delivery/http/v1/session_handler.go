package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Ravularamesh74/Job-Portal/config"
	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/middleware"
	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/response"
	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/pkg/apperror"
)

type SessionHandler struct {
	cfg *config.Config
}

// NewSessionHandler registers the session transition routes. Identity
// issuance itself (login/registration) lives with the identity provider;
// this service only verifies the bearer it hands over.
func NewSessionHandler(r *gin.RouterGroup, cfg *config.Config) {
	handler := &SessionHandler{cfg: cfg}

	sess := r.Group("/session")
	{
		sess.GET("", handler.Current)
		sess.POST("/login", handler.Login)
		sess.POST("/logout", handler.Logout)
	}
}

// Current reports the session id and identity, if any.
func (h *SessionHandler) Current(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	response.Success(c, http.StatusOK, "Session retrieved", gin.H{
		"session_id": sess.ID,
		"identity":   sess.Identity(),
		"saved_mode": sess.Saved.Mode(),
	})
}

// Login verifies the bearer credential, attaches the identity and runs the
// one-time saved-jobs merge. A recoverable merge failure still signs the
// session in; the response then carries the identity plus a sync-pending
// flag so the client knows login succeeded and only the merge is owed.
func (h *SessionHandler) Login(c *gin.Context) {
	identity, err := h.identityFromBearer(c)
	if err != nil {
		c.Error(err)
		return
	}

	sess := middleware.SessionFrom(c)
	if mergeErr := sess.Login(c.Request.Context(), identity); mergeErr != nil {
		var appErr *apperror.AppError
		if errors.As(mergeErr, &appErr) && appErr.Recoverable {
			response.Success(c, http.StatusOK, appErr.Message, gin.H{
				"identity":     identity,
				"saved_mode":   sess.Saved.Mode(),
				"sync_pending": true,
			})
			return
		}
		c.Error(mergeErr)
		return
	}

	response.Success(c, http.StatusOK, "Signed in", gin.H{
		"identity":   identity,
		"saved_mode": sess.Saved.Mode(),
	})
}

// Logout drops the identity; saved jobs revert to the local snapshot.
func (h *SessionHandler) Logout(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if err := sess.Logout(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Signed out", gin.H{
		"saved_mode": sess.Saved.Mode(),
	})
}

func (h *SessionHandler) identityFromBearer(c *gin.Context) (*domain.Identity, error) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" || tokenString == authHeader {
		return nil, apperror.Unauthorized("Authorization bearer token required")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if h.cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is not configured")
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.Unauthorized("Invalid claims")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, apperror.Unauthorized("Token is missing the subject claim")
	}

	return &domain.Identity{UserID: sub, Email: email, Token: tokenString}, nil
}
