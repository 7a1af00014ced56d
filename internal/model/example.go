package model

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSystemMessage opens every generated training conversation
const DefaultSystemMessage = "You are a helpful writing assistant."

// ErrInvalidExample is returned when a training example breaks the chat format contract
var ErrInvalidExample = errors.New("invalid training example")

// Role is a chat message role
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the chat roles
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is a single chat turn
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TrainingExample is one chat-format fine-tuning record
type TrainingExample struct {
	Messages []Message `json:"messages"`
}

// NewTrainingExample validates messages and wraps them in a TrainingExample
func NewTrainingExample(messages ...Message) (TrainingExample, error) {
	ex := TrainingExample{Messages: messages}
	if err := ex.Validate(); err != nil {
		return TrainingExample{}, err
	}
	return ex, nil
}

// NewConversation builds the standard system/user/assistant example
func NewConversation(system, prompt, response string) (TrainingExample, error) {
	return NewTrainingExample(
		Message{Role: RoleSystem, Content: system},
		Message{Role: RoleUser, Content: prompt},
		Message{Role: RoleAssistant, Content: response},
	)
}

// Validate checks message count, roles and content
func (e TrainingExample) Validate() error {
	if len(e.Messages) < 2 {
		return fmt.Errorf("%w: must have at least 2 messages, got %d", ErrInvalidExample, len(e.Messages))
	}
	for i, m := range e.Messages {
		if !m.Role.Valid() {
			return fmt.Errorf("%w: message %d has role %q (want system, user or assistant)", ErrInvalidExample, i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("%w: message %d has empty content", ErrInvalidExample, i)
		}
	}
	return nil
}

// Prompt returns the first user message, or ""
func (e TrainingExample) Prompt() string {
	return e.first(RoleUser)
}

// Response returns the first assistant message, or ""
func (e TrainingExample) Response() string {
	return e.first(RoleAssistant)
}

func (e TrainingExample) first(role Role) string {
	for _, m := range e.Messages {
		if m.Role == role {
			return m.Content
		}
	}
	return ""
}
