package domain

import "context"

// Assistant is the generative-AI collaborator consumed by the chat
// endpoint. Implementations live outside this core; failures are converted
// into a neutral "unavailable" signal by the wrapping usecase.
type Assistant interface {
	Chat(ctx context.Context, prompt string) (string, error)
}
