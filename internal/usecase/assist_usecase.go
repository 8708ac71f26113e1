package usecase

import (
	"context"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/pkg/logger"
)

// AssistUnavailableMessage is the neutral reply returned whenever the
// assistant collaborator fails for any reason.
const AssistUnavailableMessage = "The assistant is unavailable right now. Please try again later."

// AssistUsecase wraps the generative-AI collaborator so that callers never
// see its failures; every error collapses into the neutral unavailable
// signal.
type AssistUsecase struct {
	assistant domain.Assistant
}

func NewAssistUsecase(assistant domain.Assistant) *AssistUsecase {
	return &AssistUsecase{assistant: assistant}
}

// Chat returns the assistant's reply, or the unavailable message with
// available=false when the collaborator is missing or failing.
func (uc *AssistUsecase) Chat(ctx context.Context, prompt string) (reply string, available bool) {
	if uc.assistant == nil {
		return AssistUnavailableMessage, false
	}

	reply, err := uc.assistant.Chat(ctx, prompt)
	if err != nil {
		logger.Log.Warn("assistant call failed", "error", err)
		return AssistUnavailableMessage, false
	}

	return reply, true
}
