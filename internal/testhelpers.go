package internal

import (
	"time"
)

// CreateTestSession creates a test session with sample data
func CreateTestSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Name:      "Test Conversation",
		CreatedAt: now,
		UpdatedAt: now,
		Messages: []Message{
			{
				Role:    RoleUser,
				Content: "Hello, how are you?",
			},
			{
				Role:    RoleAssistant,
				Content: "I'm doing well, thank you!",
			},
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Name:      "Test Conversation",
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  messages,
	}
}
