package llm

import (
	"context"
	"fmt"
)

// Message is a single chat message sent to the text-generation service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Client abstracts the text-generation service behind the decision pipeline.
// Implementations must be safe for concurrent use.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ServiceError wraps any failure talking to the text-generation service:
// transport errors, auth failures, rate limiting, empty responses.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("llm: %s failed", e.Op)
	}
	return fmt.Sprintf("llm: %s failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
