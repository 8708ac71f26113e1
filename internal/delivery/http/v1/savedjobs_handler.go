package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/middleware"
	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/response"
)

type SavedJobsHandler struct{}

// NewSavedJobsHandler registers the saved-jobs routes
func NewSavedJobsHandler(r *gin.RouterGroup) {
	handler := &SavedJobsHandler{}

	saved := r.Group("/saved")
	{
		saved.GET("", handler.List)
		saved.GET("/:jobId", handler.IsSaved)
		saved.POST("/:jobId/toggle", handler.Toggle)
	}
}

// List returns the active saved-job set and which store backs it.
func (h *SavedJobsHandler) List(c *gin.Context) {
	saved := middleware.SessionFrom(c).Saved
	response.Success(c, http.StatusOK, "Saved jobs retrieved", gin.H{
		"mode":    saved.Mode(),
		"job_ids": saved.MemberIDs(),
	})
}

// IsSaved returns the membership bit for one job.
func (h *SavedJobsHandler) IsSaved(c *gin.Context) {
	saved := middleware.SessionFrom(c).Saved
	response.Success(c, http.StatusOK, "Saved state retrieved", gin.H{
		"job_id": c.Param("jobId"),
		"saved":  saved.IsSaved(c.Param("jobId")),
	})
}

// Toggle flips membership for one job and returns the new state.
func (h *SavedJobsHandler) Toggle(c *gin.Context) {
	saved := middleware.SessionFrom(c).Saved

	nowSaved, err := saved.Toggle(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}

	msg := "Job removed from saved"
	if nowSaved {
		msg = "Job saved"
	}
	response.Success(c, http.StatusOK, msg, gin.H{
		"job_id": c.Param("jobId"),
		"saved":  nowSaved,
	})
}
