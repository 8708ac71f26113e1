package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ravularamesh74/Job-Portal/config"
	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/middleware"
	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/response"
	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/internal/session"
	"github.com/Ravularamesh74/Job-Portal/internal/usecase"
)

type RouterDeps struct {
	Sessions       *session.Registry
	SubmissionSink domain.SubmissionSink
	AssistUC       *usecase.AssistUsecase
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Session-scoped routes (anonymous or authenticated)
	scoped := v1.Group("")
	scoped.Use(middleware.SessionMiddleware(deps.Sessions))
	{
		uploadLimit := middleware.RateLimitMiddleware(
			middleware.UploadRateLimitConfig(deps.Config.RateLimitUploadThreshold, window))

		NewSessionHandler(scoped, deps.Config)
		NewApplicationHandler(scoped, uploadLimit, deps.SubmissionSink)
		NewSavedJobsHandler(scoped)
		NewAssistHandler(scoped, deps.AssistUC)
	}

	return r
}
