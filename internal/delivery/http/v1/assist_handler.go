package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/response"
	"github.com/Ravularamesh74/Job-Portal/internal/usecase"
	"github.com/Ravularamesh74/Job-Portal/pkg/apperror"
)

type AssistHandler struct {
	assistUC *usecase.AssistUsecase
}

// NewAssistHandler registers the assistant chat route
func NewAssistHandler(r *gin.RouterGroup, assistUC *usecase.AssistUsecase) {
	handler := &AssistHandler{assistUC: assistUC}
	r.POST("/assist/chat", handler.Chat)
}

type assistChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat forwards the message to the assistant collaborator. Failures never
// surface as errors; the reply degrades to the neutral unavailable
// message instead.
func (h *AssistHandler) Chat(c *gin.Context) {
	var req assistChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	reply, available := h.assistUC.Chat(c.Request.Context(), strings.TrimSpace(req.Message))
	response.Success(c, http.StatusOK, "Assistant reply", gin.H{
		"reply":     reply,
		"available": available,
	})
}
