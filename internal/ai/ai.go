package ai

import "context"

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// Assistant turns an analytics prompt into prose commentary. The network
// call is the only slow boundary in the system; callers pass a cancellable
// context and treat each request as independent.
type Assistant interface {
	Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error)
}
