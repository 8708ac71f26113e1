package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/middleware"
	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/response"
	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/internal/usecase"
	"github.com/Ravularamesh74/Job-Portal/pkg/apperror"
	"github.com/Ravularamesh74/Job-Portal/pkg/security"
)

type ApplicationHandler struct {
	submissionSink domain.SubmissionSink
}

// NewApplicationHandler registers the application draft routes
func NewApplicationHandler(r *gin.RouterGroup, uploadLimit gin.HandlerFunc, submissionSink domain.SubmissionSink) {
	handler := &ApplicationHandler{submissionSink: submissionSink}

	jobs := r.Group("/jobs/:jobId/application")
	{
		jobs.GET("", handler.GetDraft)
		jobs.PUT("", handler.UpdateDraft)
		jobs.DELETE("", handler.CancelDraft)
		jobs.POST("/resume", uploadLimit, handler.AttachResume)
		jobs.DELETE("/resume", handler.RemoveResume)
		jobs.POST("/submit", handler.Submit)
	}
}

func (h *ApplicationHandler) machine(c *gin.Context) *usecase.SubmissionMachine {
	sess := middleware.SessionFrom(c)
	return sess.MachineFor(c.Param("jobId"), h.submissionSink)
}

// draftView is the draft snapshot returned to the UI; resume bytes stay
// server-side, only the attachment metadata is echoed.
type draftView struct {
	State domain.SubmissionState  `json:"state"`
	Draft domain.ApplicationDraft `json:"draft"`
}

// GetDraft returns the current draft and lifecycle state for UI resync.
func (h *ApplicationHandler) GetDraft(c *gin.Context) {
	draft, state := h.machine(c).Snapshot()
	response.Success(c, http.StatusOK, "Draft retrieved", draftView{State: state, Draft: draft})
}

// UpdateDraft merges field mutations into the draft.
func (h *ApplicationHandler) UpdateDraft(c *gin.Context) {
	var patch domain.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.machine(c).UpdateFields(patch); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Draft updated", nil)
}

// CancelDraft resets the draft to empty (explicit cancel, or "apply to
// another" after success).
func (h *ApplicationHandler) CancelDraft(c *gin.Context) {
	h.machine(c).Reset()
	response.Success(c, http.StatusOK, "Draft cleared", nil)
}

// AttachResume validates and attaches the uploaded file. The gate runs
// immediately and its rejection is surfaced inline without waiting for
// submission.
func (h *ApplicationHandler) AttachResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		c.Error(apperror.BadRequest("Resume file is required"))
		return
	}
	defer file.Close()

	// Never buffer more than the gate could accept.
	raw, err := io.ReadAll(io.LimitReader(file, security.MaxResumeBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	ref := domain.AttachmentRef{
		Filename:  header.Filename,
		ByteSize:  header.Size,
		MediaType: header.Header.Get("Content-Type"),
		Raw:       raw,
	}

	if err := h.machine(c).AttachResume(ref); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			// Field-scoped rejection, shown inline under the resume field
			response.Error(c, http.StatusUnprocessableEntity, "Resume rejected", gin.H{"resume": appErr.Message})
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume attached", gin.H{
		"filename":  ref.Filename,
		"byte_size": ref.ByteSize,
	})
}

// RemoveResume detaches the current resume.
func (h *ApplicationHandler) RemoveResume(c *gin.Context) {
	if err := h.machine(c).RemoveResume(); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume removed", nil)
}

// Submit is the submit intent for the draft.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	result, err := h.machine(c).Submit(c.Request.Context(), sess.Identity())
	if err != nil {
		c.Error(err)
		return
	}

	switch {
	case len(result.FieldErrors) > 0:
		response.Error(c, http.StatusUnprocessableEntity, "Please fix the highlighted fields", result.FieldErrors)
	case result.State == domain.SubmissionStateSubmitting:
		// A prior attempt is still in flight; the duplicate intent is a no-op.
		response.Success(c, http.StatusAccepted, "Submission already in progress", result)
	default:
		response.Success(c, http.StatusCreated, "Application submitted successfully", result)
	}
}
